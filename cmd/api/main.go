package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/01moynul/restaurant-storefront/internal/auth"
	"github.com/01moynul/restaurant-storefront/internal/backend"
	"github.com/01moynul/restaurant-storefront/internal/cart"
	"github.com/01moynul/restaurant-storefront/internal/config"
	"github.com/01moynul/restaurant-storefront/internal/database"
	"github.com/01moynul/restaurant-storefront/internal/handlers"
	"github.com/01moynul/restaurant-storefront/internal/proxy"
	"github.com/01moynul/restaurant-storefront/internal/routes"
	"github.com/01moynul/restaurant-storefront/internal/storage"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout
}

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	flag.Parse()

	// 0. --- Load Configuration (.env + environment) ---
	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. --- Cart Storage ---
	cartBackend, closeStore, err := openCartBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to open cart store: %v", err)
	}
	defer closeStore()
	store := cart.NewStore(cartBackend, cfg.CartKeyPrefix, log)

	// --- Background Worker ---
	// Redis expires carts itself; the other backends are swept hourly.
	if sweeper, ok := cartBackend.(storage.Sweeper); ok {
		go sweepCarts(ctx, sweeper, cfg.CartTTL)
	}

	// 2. --- Backend Client & Proxy ---
	client := backend.New(cfg.BackendURL, cfg.BackendTimeout)
	apiProxy, err := proxy.New(cfg.BackendURL, log)
	if err != nil {
		log.Fatalf("failed to set up api proxy: %v", err)
	}

	// --- Application Setup ---
	signer := auth.NewSigner(cfg.JWTSecret)
	app := &handlers.Handlers{
		Store:             store,
		Backend:           client,
		Admin:             client.WithToken(cfg.BackendToken),
		Signer:            signer,
		Log:               log,
		AdminEmail:        cfg.AdminEmail,
		AdminPasswordHash: cfg.AdminPasswordHash,
	}
	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		log.Warn("ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set, admin login is disabled")
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, routes.Options{
		AllowedOrigin: cfg.AllowedOrigin,
		PublicDir:     cfg.PublicDir,
		SecureCookies: cfg.SecureCookies,
		CouponRate:    cfg.CouponRate,
		CouponBurst:   cfg.CouponBurst,
		APIProxy:      apiProxy,
		Signer:        signer,
		Log:           log,
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithFields(logrus.Fields{
			"port":       cfg.Port,
			"cart_store": cfg.CartStore,
			"backend":    client.BaseURL(),
		}).Info("starting storefront server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// openCartBackend picks the snapshot storage named by CART_STORE.
func openCartBackend(ctx context.Context, cfg *config.Config) (cart.Backend, func(), error) {
	switch cfg.CartStore {
	case config.StoreMySQL:
		db, err := database.OpenDB(ctx, cfg.MySQLDSN, log)
		if err != nil {
			return nil, nil, err
		}
		b := storage.NewMySQL(db)
		if err := b.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return b, func() { db.Close() }, nil

	case config.StoreRedis:
		client, err := database.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRedis(client, cfg.CartTTL), func() { client.Close() }, nil

	default:
		log.Warn("CART_STORE=memory, carts are lost on restart")
		return storage.NewMemory(), func() {}, nil
	}
}

func sweepCarts(ctx context.Context, s storage.Sweeper, maxAge time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	log.WithField("max_age", maxAge.String()).Info("background worker started: sweeping idle carts")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx, maxAge)
			if err != nil {
				log.WithError(err).Error("cart sweep failed")
				continue
			}
			if n > 0 {
				log.WithField("removed", n).Info("swept idle carts")
			}
		}
	}
}
