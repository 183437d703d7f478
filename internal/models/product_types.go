package models

// MenuItem is a backend product as shown on the public menu.
type MenuItem struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	UnitAmount int64  `json:"unitAmount"`
	Currency   string `json:"currency"`
	Price      string `json:"price"` // formatted for the visitor's locale
}

// Product is the admin view of a catalog entry.
type Product struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	UnitAmount  int64  `json:"unit_amount" binding:"gte=0"`
	Currency    string `json:"currency" binding:"required,len=3"`
	Category    string `json:"category,omitempty"`
}
