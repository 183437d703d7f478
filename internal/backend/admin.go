package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/01moynul/restaurant-storefront/internal/models"
)

//
// --- Admin dashboard calls ---
//
// Access is checked by the admin middleware before any of these run; the
// backend only sees the service token set with WithToken.
//

func (c *Client) ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	path := "/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*models.Order, error) {
	var out models.Order
	body := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out struct {
		Users []models.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	var out struct {
		Coupons []models.Coupon `json:"coupons"`
	}
	if err := c.do(ctx, http.MethodGet, "/coupons", nil, &out); err != nil {
		return nil, err
	}
	return out.Coupons, nil
}

func (c *Client) CreateCoupon(ctx context.Context, coupon models.Coupon) (*models.Coupon, error) {
	var out models.Coupon
	if err := c.do(ctx, http.MethodPost, "/coupons", coupon, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCoupon(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodDelete, "/coupons/"+url.PathEscape(code), nil, nil)
}

func (c *Client) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	var out models.Product
	if err := c.do(ctx, http.MethodPost, "/products", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}
