// Package config reads the service settings from the environment, after
// loading an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Cart store drivers.
const (
	StoreMemory = "memory"
	StoreMySQL  = "mysql"
	StoreRedis  = "redis"
)

// Config holds every setting the service reads at boot.
type Config struct {
	Port    string
	BaseURL string

	BackendURL     string
	BackendToken   string
	BackendTimeout time.Duration

	CartStore     string
	CartKeyPrefix string
	CartTTL       time.Duration
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string

	AllowedOrigin string
	PublicDir     string
	CouponRate    float64 // attempts per second per visitor
	CouponBurst   int
	SecureCookies bool
	LogLevel      string
}

// Load reads path (if it exists) into the environment, then builds Config.
// A missing .env file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrapf(err, "config: load %s", path)
	}
	return FromEnv()
}

// FromEnv builds Config from the process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:              getenv("PORT", "8080"),
		BaseURL:           strings.TrimRight(os.Getenv("BASE_URL"), "/"),
		BackendURL:        os.Getenv("BACKEND_URL"),
		BackendToken:      os.Getenv("BACKEND_TOKEN"),
		CartStore:         strings.ToLower(getenv("CART_STORE", StoreMemory)),
		CartKeyPrefix:     getenv("CART_KEY_PREFIX", "cart:"),
		MySQLDSN:          os.Getenv("DB_DSN_PRIMARY"),
		RedisAddr:         getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AllowedOrigin:     getenv("ALLOWED_ORIGIN", "http://localhost:5173"),
		PublicDir:         os.Getenv("PUBLIC_DIR"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.BackendTimeout, err = durationEnv("BACKEND_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CartTTL, err = durationEnv("CART_TTL", 30*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.CouponBurst, err = intEnv("COUPON_BURST", 5); err != nil {
		return nil, err
	}
	if cfg.CouponRate, err = floatEnv("COUPON_RATE", 0.2); err != nil {
		return nil, err
	}
	cfg.SecureCookies = os.Getenv("SECURE_COOKIES") == "1" || strings.EqualFold(os.Getenv("SECURE_COOKIES"), "true")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that makes the service unusable.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return errors.New("config: BACKEND_URL is required")
	}
	switch c.CartStore {
	case StoreMemory, StoreRedis:
	case StoreMySQL:
		if c.MySQLDSN == "" {
			return errors.New("config: DB_DSN_PRIMARY is required when CART_STORE=mysql")
		}
	default:
		return fmt.Errorf("config: unknown CART_STORE %q", c.CartStore)
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.CartTTL <= 0 {
		return errors.New("config: CART_TTL must be positive")
	}
	if c.CouponBurst < 1 || c.CouponRate <= 0 {
		return errors.New("config: COUPON_RATE and COUPON_BURST must be positive")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "config: %s", key)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "config: %s", key)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "config: %s", key)
	}
	return f, nil
}
