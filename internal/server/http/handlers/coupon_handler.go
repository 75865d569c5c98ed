package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketbase/marketplace/internal/domain/model"
	"github.com/marketbase/marketplace/internal/server/http/dto"
)

// CouponHandler manages shop coupon endpoints.
type CouponHandler struct {
	facade CouponFacade
}

// NewCouponHandler constructs CouponHandler.
func NewCouponHandler(facade CouponFacade) *CouponHandler {
	return &CouponHandler{facade: facade}
}

// Create handles POST /api/v2/coupon/create-coupon-code.
func (h *CouponHandler) Create(c *gin.Context) {
	seller := CurrentSeller(c)
	if seller == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "seller access required"})
		return
	}

	var req dto.CreateCouponRequest
	if !bindAndValidate(c, &req) {
		return
	}

	coupon, err := h.facade.CreateCoupon(c.Request.Context(), &model.Coupon{
		ShopID:    seller.ID,
		Name:      req.Name,
		Value:     req.Value,
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CouponResponse{Success: true, CouponCode: dto.NewCouponPayload(coupon)})
}

// List handles GET /api/v2/coupon/get-coupon/:id. The shop is always the
// authenticated seller's own, the path id is kept for URL compatibility.
func (h *CouponHandler) List(c *gin.Context) {
	seller := CurrentSeller(c)
	if seller == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "seller access required"})
		return
	}

	coupons, err := h.facade.ShopCoupons(c.Request.Context(), seller.ID)
	if err != nil {
		renderError(c, err)
		return
	}

	resp := dto.CouponListResponse{Success: true, CouponCodes: make([]dto.CouponPayload, 0, len(coupons))}
	for i := range coupons {
		resp.CouponCodes = append(resp.CouponCodes, dto.NewCouponPayload(&coupons[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /api/v2/coupon/delete-coupon/:id.
func (h *CouponHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteCoupon(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Coupon code deleted successfully!"})
}

// ValueByName handles GET /api/v2/coupon/get-coupon-value/:name.
func (h *CouponHandler) ValueByName(c *gin.Context) {
	coupon, err := h.facade.CouponByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CouponResponse{Success: true, CouponCode: dto.NewCouponPayload(coupon)})
}
