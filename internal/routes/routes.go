package routes

import (
	"net/http"
	"net/http/httputil"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/01moynul/restaurant-storefront/internal/auth"
	"github.com/01moynul/restaurant-storefront/internal/handlers"
	"github.com/01moynul/restaurant-storefront/internal/middleware"
	"github.com/01moynul/restaurant-storefront/internal/models"
	"github.com/01moynul/restaurant-storefront/internal/proxy"
)

// Options carries the router settings that do not belong to a handler.
type Options struct {
	AllowedOrigin string
	PublicDir     string
	SecureCookies bool
	CouponRate    float64
	CouponBurst   int
	APIProxy      *httputil.ReverseProxy
	Signer        *auth.Signer
	Log           logrus.FieldLogger
}

// CORSMiddleware tells the browser that the configured site origin may
// call us with credentials (the session cookie and the admin token).
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Only the configured frontend origin
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}

		// 2. Cookies and Authorization are credentials
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		// 3. Headers the site and dashboard send
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept-Language, Authorization, accept, origin, Cache-Control, X-Requested-With")

		// 4. Methods the API uses
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// 5. Preflight
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// --- APPLY THE CORS GUARD ---
	// This must be the very first thing the router uses
	router.Use(CORSMiddleware(opts.AllowedOrigin))
	router.Use(middleware.EnsureSession(opts.SecureCookies))
	router.Use(middleware.RequestLogger(opts.Log))

	couponLimiter := middleware.NewLimiter(opts.CouponRate, opts.CouponBurst, 30*time.Minute)

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/auth/login", h.Login)

		// --- Menu ---
		v1.GET("/menu", h.GetMenu)

		// --- Cart Routes (per session cookie) ---
		v1.GET("/cart", h.GetCart)
		v1.POST("/cart/items", h.AddToCart)
		v1.PUT("/cart/items/:product_id", h.UpdateCartItem)
		v1.DELETE("/cart/items/:product_id", h.DeleteCartItem)
		v1.DELETE("/cart", h.ClearCart)

		// --- Coupons & Gift Cards ---
		v1.POST("/cart/coupon", middleware.RateLimit(couponLimiter), h.ApplyCoupon)
		v1.DELETE("/cart/coupon", h.RemoveCoupon)

		// --- Checkout ---
		v1.POST("/checkout", h.Checkout)
		v1.POST("/checkout/complete", h.CompleteCheckout)

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(opts.Signer))
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/orders", h.GetOrders)
			admin.PATCH("/orders/:id", h.UpdateOrderStatus)

			admin.GET("/users", h.GetUsers)
			admin.DELETE("/users/:id", h.DeleteUser)

			admin.GET("/coupons", h.GetCoupons)
			admin.POST("/coupons", h.CreateCoupon)
			admin.DELETE("/coupons/:code", h.DeleteCoupon)

			admin.POST("/products", h.CreateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)
		}
	}

	// --- Backend Proxy ---
	if opts.APIProxy != nil {
		router.Any(proxy.Prefix+"/*path", proxy.Handler(opts.APIProxy))
	}

	// --- Static Site ---
	if opts.PublicDir != "" {
		router.NoRoute(staticSite(opts.PublicDir))
	}

	return router
}

// staticSite serves the built site from dir. Paths without a file fall
// back to index.html so client-side routes (/menu, /visit) still load.
func staticSite(dir string) gin.HandlerFunc {
	fs := http.Dir(dir)
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if strings.HasPrefix(c.Request.URL.Path, "/v1/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		name := path.Clean("/" + c.Request.URL.Path)
		if f, err := fs.Open(name); err == nil {
			stat, statErr := f.Stat()
			f.Close()
			if statErr == nil && !stat.IsDir() {
				c.FileFromFS(name, fs)
				return
			}
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.File(index)
	}
}
