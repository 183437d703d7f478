package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/01moynul/restaurant-storefront/internal/middleware"
	"github.com/01moynul/restaurant-storefront/internal/models"
)

//
// --- Admin: Orders ---
//

// GetOrders is the handler for GET /v1/admin/orders
// An optional ?status= filters by order status.
func (h *Handlers) GetOrders(c *gin.Context) {
	orders, err := h.Admin.ListOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.backendFailed(c, err, "Failed to load orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatusInput is the body of PATCH /v1/admin/orders/:id
type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending paid fulfilled cancelled"`
}

// UpdateOrderStatus is the handler for PATCH /v1/admin/orders/:id
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	var input UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	order, err := h.Admin.UpdateOrderStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		h.backendFailed(c, err, "Failed to update order")
		return
	}

	h.logger(c).WithFields(logrus.Fields{
		"order":  c.Param("id"),
		"status": input.Status,
		"admin":  c.GetString(middleware.CtxUserEmail),
	}).Info("order status changed")
	c.JSON(http.StatusOK, order)
}

//
// --- Admin: Users ---
//

// GetUsers is the handler for GET /v1/admin/users
func (h *Handlers) GetUsers(c *gin.Context) {
	users, err := h.Admin.ListUsers(c.Request.Context())
	if err != nil {
		h.backendFailed(c, err, "Failed to load users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// DeleteUser is the handler for DELETE /v1/admin/users/:id
func (h *Handlers) DeleteUser(c *gin.Context) {
	if err := h.Admin.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.backendFailed(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

//
// --- Admin: Coupons & Gift Cards ---
//

// GetCoupons is the handler for GET /v1/admin/coupons
func (h *Handlers) GetCoupons(c *gin.Context) {
	coupons, err := h.Admin.ListCoupons(c.Request.Context())
	if err != nil {
		h.backendFailed(c, err, "Failed to load coupons")
		return
	}
	if coupons == nil {
		coupons = []models.Coupon{}
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}

// CreateCoupon is the handler for POST /v1/admin/coupons
// Exactly one of amount_off and percent_off must be positive.
func (h *Handlers) CreateCoupon(c *gin.Context) {
	var input models.Coupon
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	hasAmount := input.AmountOff != nil && *input.AmountOff > 0
	hasPercent := input.PercentOff != nil && *input.PercentOff > 0
	if hasAmount == hasPercent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Set exactly one of amount_off or percent_off"})
		return
	}
	if input.Kind == "" {
		input.Kind = models.CouponKindCoupon
	}

	created, err := h.Admin.CreateCoupon(c.Request.Context(), input)
	if err != nil {
		h.backendFailed(c, err, "Failed to create coupon")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// DeleteCoupon is the handler for DELETE /v1/admin/coupons/:code
func (h *Handlers) DeleteCoupon(c *gin.Context) {
	if err := h.Admin.DeleteCoupon(c.Request.Context(), c.Param("code")); err != nil {
		h.backendFailed(c, err, "Failed to delete coupon")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted"})
}

//
// --- Admin: Products ---
//

// CreateProduct is the handler for POST /v1/admin/products
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input models.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	created, err := h.Admin.CreateProduct(c.Request.Context(), input)
	if err != nil {
		h.backendFailed(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// DeleteProduct is the handler for DELETE /v1/admin/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	if err := h.Admin.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.backendFailed(c, err, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
