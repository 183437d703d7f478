package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/restaurant-storefront/internal/models"
)

// --- Admin Login ---

// LoginInput defines the JSON data expected for a login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for the /v1/auth/login endpoint.
// The dashboard has one account, configured by ADMIN_EMAIL and
// ADMIN_PASSWORD_HASH.
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Check Email ---
	if h.AdminEmail == "" || h.AdminPasswordHash == "" || !strings.EqualFold(input.Email, h.AdminEmail) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// 3. --- Check Password ---
	password := models.Password{Hash: h.AdminPasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		h.logger(c).WithError(err).Error("admin password hash check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check password"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// 4. --- Issue Token ---
	token, err := h.Signer.GenerateToken(h.AdminEmail, models.RoleAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"email": h.AdminEmail,
			"role":  models.RoleAdmin,
		},
	})
}
