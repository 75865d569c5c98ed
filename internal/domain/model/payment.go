package model

// PaymentIntent is a charge prepared at the payment gateway. ClientSecret
// is handed to the storefront to finish the confirmation flow.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}
