package dto

// ProcessPaymentRequest describes the payment intent payload. Amount is in
// the currency's smallest unit.
type ProcessPaymentRequest struct {
	Amount   int64  `json:"amount" validate:"required,gt=0"`
	Currency string `json:"currency"`
}

// ProcessPaymentResponse carries the client secret for confirmation.
type ProcessPaymentResponse struct {
	Success      bool   `json:"success"`
	ClientSecret string `json:"client_secret"`
}

// APIKeyResponse exposes the publishable gateway key to the storefront.
type APIKeyResponse struct {
	StripeAPIKey string `json:"stripeApikey"`
}
