package usecase

import (
	"go.uber.org/fx"

	"github.com/marketbase/marketplace/internal/config"
	"github.com/marketbase/marketplace/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newWithdrawalUseCase,
	NewConversationUseCase,
	NewMessageUseCase,
	NewCouponUseCase,
)

type withdrawalParams struct {
	fx.In

	Withdrawals repository.WithdrawalRepository
	Sellers     repository.SellerRepository
	Notifier    Notifier
	Config      *config.Config
}

func newWithdrawalUseCase(p withdrawalParams) *WithdrawalUseCase {
	return NewWithdrawalUseCase(p.Withdrawals, p.Sellers, p.Notifier, p.Config.MailerTimeout)
}
