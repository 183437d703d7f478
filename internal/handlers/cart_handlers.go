package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/restaurant-storefront/internal/cart"
	"github.com/01moynul/restaurant-storefront/internal/locale"
)

//
// --- Cart Handlers (Public, per session) ---
//

// CartResponse is the cart as the site renders it. Totals are derived on
// every read and never stored.
type CartResponse struct {
	Items     []cart.Item  `json:"items"`
	Coupon    *cart.Coupon `json:"coupon,omitempty"`
	ItemCount int          `json:"itemCount"`
	Subtotal  int64        `json:"subtotal"`
	Discount  int64        `json:"discount"`
	Total     int64        `json:"total"`
	Currency  string       `json:"currency,omitempty"`
	// Formatted amounts for the visitor's language.
	SubtotalText string `json:"subtotalText"`
	DiscountText string `json:"discountText"`
	TotalText    string `json:"totalText"`
}

// defaultCurrency prices an empty cart.
const defaultCurrency = "EUR"

func (h *Handlers) cartResponse(c *gin.Context, sess *cart.Session) CartResponse {
	tag := h.language(c)
	cur := sess.Currency()
	if cur == "" {
		cur = defaultCurrency
	}
	return CartResponse{
		Items:        sess.Items(),
		Coupon:       sess.Coupon(),
		ItemCount:    sess.ItemCount(),
		Subtotal:     sess.Subtotal(),
		Discount:     sess.Discount(),
		Total:        sess.Total(),
		Currency:     sess.Currency(),
		SubtotalText: locale.FormatAmount(tag, sess.Subtotal(), cur),
		DiscountText: locale.FormatAmount(tag, sess.Discount(), cur),
		TotalText:    locale.FormatAmount(tag, sess.Total(), cur),
	}
}

// GetCart is the handler for GET /v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	sess := h.session(c)
	c.JSON(http.StatusOK, h.cartResponse(c, sess))
}

// AddToCartInput defines the JSON for adding an item to the cart.
// A missing quantity means one.
type AddToCartInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// AddToCart is the handler for POST /v1/cart/items
// Name and price come from the backend catalog, never from the client.
func (h *Handlers) AddToCart(c *gin.Context) {
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}

	product, ok, err := h.Backend.FindProduct(c.Request.Context(), input.ProductID)
	if err != nil {
		h.badGateway(c, err, "Could not load the menu, please try again")
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	sess := h.session(c)
	sess.AddItem(cart.Item{
		ProductID:  product.ID,
		Name:       product.Name,
		UnitAmount: product.UnitAmount,
		Quantity:   input.Quantity,
		Currency:   product.Currency,
	})

	c.JSON(http.StatusCreated, h.cartResponse(c, sess))
}

// UpdateCartItemInput defines the JSON for changing a line's quantity.
type UpdateCartItemInput struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// UpdateCartItem is the handler for PUT /v1/cart/items/:product_id
// Quantities are clamped to 0..999 and zero removes the line.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	sess := h.session(c)
	sess.UpdateQuantity(c.Param("product_id"), *input.Quantity)
	c.JSON(http.StatusOK, h.cartResponse(c, sess))
}

// DeleteCartItem is the handler for DELETE /v1/cart/items/:product_id
func (h *Handlers) DeleteCartItem(c *gin.Context) {
	sess := h.session(c)
	sess.RemoveItem(c.Param("product_id"))
	c.JSON(http.StatusOK, h.cartResponse(c, sess))
}

// ClearCart is the handler for DELETE /v1/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	sess := h.session(c)
	sess.Clear()
	c.JSON(http.StatusOK, h.cartResponse(c, sess))
}
