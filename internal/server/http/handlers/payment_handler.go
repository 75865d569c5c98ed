package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketbase/marketplace/internal/server/http/dto"
)

const defaultCurrency = "inr"

// PaymentHandler manages payment gateway endpoints.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Process handles POST /api/v2/payment/process.
func (h *PaymentHandler) Process(c *gin.Context) {
	var req dto.ProcessPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if req.Currency == "" {
		req.Currency = defaultCurrency
	}

	intent, err := h.facade.CreatePaymentIntent(c.Request.Context(), req.Amount, req.Currency)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProcessPaymentResponse{Success: true, ClientSecret: intent.ClientSecret})
}

// APIKey handles GET /api/v2/payment/stripeapikey.
func (h *PaymentHandler) APIKey(c *gin.Context) {
	c.JSON(http.StatusOK, dto.APIKeyResponse{StripeAPIKey: h.facade.PaymentAPIKey()})
}
