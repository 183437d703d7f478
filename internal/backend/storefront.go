package backend

import (
	"context"
	"net/http"

	"github.com/01moynul/restaurant-storefront/internal/cart"
)

// Product is one entry of the backend catalog.
type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"`
	Currency   string `json:"currency"`
}

// ListProducts calls GET /products.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// FindProduct looks id up in the catalog. ok is false when it is not listed.
func (c *Client) FindProduct(ctx context.Context, id string) (p Product, ok bool, err error) {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return Product{}, false, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return Product{}, false, nil
}

// CouponResult is the backend's verdict on a coupon code: either
// CouponValid or CouponInvalid.
type CouponResult interface {
	isCouponResult()
}

// CouponValid carries the discount the backend granted. At most one of the
// two fields is honoured; AmountOff takes precedence.
type CouponValid struct {
	AmountOff  *int64
	PercentOff *int64
}

// CouponInvalid means the code was rejected; nothing should change locally.
type CouponInvalid struct {
	Message string
}

func (CouponValid) isCouponResult()   {}
func (CouponInvalid) isCouponResult() {}

type couponRequest struct {
	Code string      `json:"code"`
	Cart []cart.Item `json:"cart"`
}

type couponResponse struct {
	Valid      bool   `json:"valid"`
	AmountOff  *int64 `json:"amount_off,omitempty"`
	PercentOff *int64 `json:"percent_off,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ApplyCoupon calls POST /coupons/apply. Transport failures and non-2xx
// answers are returned as errors; a rejected code is CouponInvalid.
func (c *Client) ApplyCoupon(ctx context.Context, code string, items []cart.Item) (CouponResult, error) {
	if items == nil {
		items = []cart.Item{}
	}
	var out couponResponse
	if err := c.do(ctx, http.MethodPost, "/coupons/apply", couponRequest{Code: code, Cart: items}, &out); err != nil {
		return nil, err
	}
	return classifyCoupon(out), nil
}

func classifyCoupon(r couponResponse) CouponResult {
	if !r.Valid {
		msg := r.Message
		if msg == "" {
			msg = r.Error
		}
		if msg == "" {
			msg = "coupon is not valid"
		}
		return CouponInvalid{Message: msg}
	}

	// Malformed discount fields are rejected rather than clamped.
	if r.AmountOff != nil && *r.AmountOff < 0 {
		return CouponInvalid{Message: "coupon has a negative amount"}
	}
	if r.PercentOff != nil && (*r.PercentOff < 0 || *r.PercentOff > 100) {
		return CouponInvalid{Message: "coupon percentage out of range"}
	}

	v := CouponValid{}
	switch {
	case r.AmountOff != nil && *r.AmountOff > 0:
		v.AmountOff = r.AmountOff
	case r.PercentOff != nil && *r.PercentOff > 0:
		v.PercentOff = r.PercentOff
	}
	return v
}

// CheckoutRequest is the body of POST /checkout.
type CheckoutRequest struct {
	Cart   []cart.Item `json:"cart"`
	Coupon string      `json:"coupon,omitempty"`
	Email  string      `json:"email,omitempty"`
}

// CreateCheckout calls POST /checkout and returns the payment redirect URL.
func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error) {
	if req.Cart == nil {
		req.Cart = []cart.Item{}
	}
	var out struct {
		URL   string `json:"url"`
		Error string `json:"error"`
	}
	if err := c.do(ctx, http.MethodPost, "/checkout", req, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		msg := out.Error
		if msg == "" {
			msg = "checkout response had no redirect url"
		}
		return "", &APIError{Status: http.StatusBadGateway, Message: msg}
	}
	return out.URL, nil
}
