package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/restaurant-storefront/internal/backend"
)

// CheckoutInput is the optional customer email for the receipt.
type CheckoutInput struct {
	Email string `json:"email" binding:"omitempty,email"`
}

// Checkout is the handler for POST /v1/checkout
// It asks the backend for a payment session and returns its redirect URL.
// The cart is kept until the success page calls CompleteCheckout.
func (h *Handlers) Checkout(c *gin.Context) {
	// An empty body, chunked or not, means no email.
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	sess := h.session(c)
	if sess.Len() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty"})
		return
	}

	req := backend.CheckoutRequest{
		Cart:  sess.Items(),
		Email: input.Email,
	}
	if coupon := sess.Coupon(); coupon != nil {
		req.Coupon = coupon.Code
	}

	url, err := h.Backend.CreateCheckout(c.Request.Context(), req)
	if err != nil {
		h.badGateway(c, err, "Checkout failed, please try again")
		return
	}

	h.logger(c).WithField("items", sess.ItemCount()).Info("checkout session created")
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// CompleteCheckout is the handler for POST /v1/checkout/complete
// The payment success page calls it to empty the cart.
func (h *Handlers) CompleteCheckout(c *gin.Context) {
	sess := h.session(c)
	sess.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Thank you for your order"})
}
