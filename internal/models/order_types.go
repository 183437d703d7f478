package models

import "time"

// Order statuses as reported by the backend. Payment moves an order from
// pending to paid; the kitchen moves it to fulfilled.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderFulfilled = "fulfilled"
	OrderCancelled = "cancelled"
)

// Order is a backend order as listed on the admin dashboard.
type Order struct {
	ID         string      `json:"id"`
	Email      string      `json:"email,omitempty"`
	Status     string      `json:"status"`
	Total      int64       `json:"total"`
	Currency   string      `json:"currency"`
	CouponCode string      `json:"coupon,omitempty"`
	Items      []OrderItem `json:"items,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderItem is a line of an order, priced at the time of purchase.
type OrderItem struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitAmount int64  `json:"unit_amount"`
}
