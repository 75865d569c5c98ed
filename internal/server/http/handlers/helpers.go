package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/marketbase/marketplace/internal/domain/errors"
	"github.com/marketbase/marketplace/internal/domain/model"
	"github.com/marketbase/marketplace/internal/server/http/dto"
	"github.com/marketbase/marketplace/internal/server/http/middleware"
)

// CurrentSeller extracts the authenticated seller profile from context.
func CurrentSeller(c *gin.Context) *model.Seller {
	val, ok := c.Get(middleware.SellerContextKey)
	if !ok {
		return nil
	}
	seller, _ := val.(*model.Seller)
	return seller
}

// CurrentUserID extracts the authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

func renderError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), dto.ErrorResponse{Message: err.Error()})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidAmount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainErrors.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrSellerMismatch), errors.Is(err, domainErrors.ErrAlreadySettled):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrNotificationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func bindAndValidate(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "malformed request body"})
		return false
	}
	if err := dto.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return false
	}
	return true
}
