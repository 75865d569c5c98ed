package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Sellers() SellerRepository
	Withdrawals() WithdrawalRepository
	Conversations() ConversationRepository
	Messages() MessageRepository
	Coupons() CouponRepository
}
