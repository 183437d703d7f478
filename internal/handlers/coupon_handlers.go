package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/restaurant-storefront/internal/backend"
	"github.com/01moynul/restaurant-storefront/internal/cart"
	"github.com/01moynul/restaurant-storefront/internal/locale"
)

//
// --- Coupon Handlers (Public) ---
//

// ApplyCouponInput defines the JSON for redeeming a coupon or gift card.
type ApplyCouponInput struct {
	Code string `json:"code" binding:"required,max=64"`
}

// ApplyCoupon is the handler for POST /v1/cart/coupon
// The backend decides whether the code is valid. The cart only changes on
// a valid answer; an invalid code or a failed call leaves it untouched.
func (h *Handlers) ApplyCoupon(c *gin.Context) {
	var input ApplyCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	code := strings.TrimSpace(input.Code)
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon code is required"})
		return
	}

	items := h.session(c).Items()
	result, err := h.Backend.ApplyCoupon(c.Request.Context(), code, items)
	if err != nil {
		h.badGateway(c, err, "Could not check the coupon, please try again")
		return
	}

	// The cart may have changed while the backend was deciding; apply the
	// answer to what is stored now.
	sess := h.session(c)
	switch r := result.(type) {
	case backend.CouponInvalid:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": r.Message})
		return
	case backend.CouponValid:
		cur := sess.Currency()
		if cur == "" {
			cur = defaultCurrency
		}
		sess.ApplyCoupon(cart.Coupon{
			Code:       code,
			AmountOff:  r.AmountOff,
			PercentOff: r.PercentOff,
			Label:      locale.CouponLabel(h.language(c), code, r.AmountOff, r.PercentOff, cur),
		})
	}

	c.JSON(http.StatusOK, h.cartResponse(c, sess))
}

// RemoveCoupon is the handler for DELETE /v1/cart/coupon
func (h *Handlers) RemoveCoupon(c *gin.Context) {
	sess := h.session(c)
	sess.RemoveCoupon()
	c.JSON(http.StatusOK, h.cartResponse(c, sess))
}
