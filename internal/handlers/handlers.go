package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/01moynul/restaurant-storefront/internal/auth"
	"github.com/01moynul/restaurant-storefront/internal/backend"
	"github.com/01moynul/restaurant-storefront/internal/cart"
	"github.com/01moynul/restaurant-storefront/internal/locale"
	"github.com/01moynul/restaurant-storefront/internal/middleware"
	"github.com/01moynul/restaurant-storefront/internal/models"
)

// Storefront is the part of the backend the public site uses.
type Storefront interface {
	ListProducts(ctx context.Context) ([]backend.Product, error)
	FindProduct(ctx context.Context, id string) (backend.Product, bool, error)
	ApplyCoupon(ctx context.Context, code string, items []cart.Item) (backend.CouponResult, error)
	CreateCheckout(ctx context.Context, req backend.CheckoutRequest) (string, error)
}

// AdminAPI is the part of the backend the admin dashboard uses.
type AdminAPI interface {
	ListOrders(ctx context.Context, status string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id string) error
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
	CreateCoupon(ctx context.Context, coupon models.Coupon) (*models.Coupon, error)
	DeleteCoupon(ctx context.Context, code string) error
	CreateProduct(ctx context.Context, p models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store   *cart.Store
	Backend Storefront
	Admin   AdminAPI
	Signer  *auth.Signer
	Log     logrus.FieldLogger

	// AdminEmail and AdminPasswordHash are the single dashboard login.
	AdminEmail        string
	AdminPasswordHash string
}

// session opens the visitor's cart for this request.
func (h *Handlers) session(c *gin.Context) *cart.Session {
	return h.Store.Open(c.Request.Context(), middleware.SessionID(c))
}

func (h *Handlers) logger(c *gin.Context) logrus.FieldLogger {
	return middleware.Logger(c, h.Log)
}

// language picks the visitor's locale from the language cookie and
// Accept-Language.
func (h *Handlers) language(c *gin.Context) language.Tag {
	preferred, _ := c.Cookie(middleware.CookieLanguage)
	return locale.Match(preferred, c.GetHeader("Accept-Language"))
}

// badGateway answers a failed storefront call. The visitor never sees
// backend details.
func (h *Handlers) badGateway(c *gin.Context, err error, msg string) {
	h.logger(c).WithError(err).Warn(msg)
	c.JSON(http.StatusBadGateway, gin.H{"error": msg})
}

// backendFailed answers a failed admin call. Client errors the backend
// reports are passed through; everything else is a 502.
func (h *Handlers) backendFailed(c *gin.Context, err error, msg string) {
	h.logger(c).WithError(err).Warn(msg)

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": msg})
}
