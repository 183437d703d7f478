package cart

// MaxQuantity is the largest quantity a single line item can hold.
const MaxQuantity = 999

// Item is a single line in the cart, keyed by ProductID.
type Item struct {
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	UnitAmount int64  `json:"unitAmount"` // minor currency units (cents)
	Quantity   int    `json:"quantity"`
	Currency   string `json:"currency"`
}

// Coupon is a backend-validated discount attached to the cart.
// AmountOff wins over PercentOff when both are set.
type Coupon struct {
	Code       string `json:"code"`
	AmountOff  *int64 `json:"amountOff,omitempty"`
	PercentOff *int64 `json:"percentOff,omitempty"`
	Label      string `json:"label"`
}

// Snapshot is the complete serializable state of a cart.
type Snapshot struct {
	Items  []Item  `json:"items"`
	Coupon *Coupon `json:"coupon,omitempty"`
}

// Empty returns a snapshot with no items and no coupon. It is the canonical
// empty form: Items is a non-nil empty slice, and every snapshot coming out
// of New, Decode or Store.Load uses it, so a nil Items reads back as Empty().
func Empty() Snapshot {
	return Snapshot{Items: []Item{}}
}

// Cart owns the canonical in-memory snapshot for one visitor.
// None of its operations fail: out-of-range input is clamped.
type Cart struct {
	items  []Item
	coupon *Coupon
}

// New builds a cart from a snapshot. The snapshot is replayed through
// AddItem so duplicate ids and bad quantities are normalised.
func New(s Snapshot) *Cart {
	c := &Cart{items: []Item{}}
	for _, it := range s.Items {
		c.AddItem(it)
	}
	if s.Coupon != nil {
		c.ApplyCoupon(*s.Coupon)
	}
	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddItem merges item into the cart. An existing line gains item.Quantity
// (capped at MaxQuantity); otherwise a new line is appended.
func (c *Cart) AddItem(item Item) {
	qty := clamp(item.Quantity, 1, MaxQuantity)

	if i := c.indexOf(item.ProductID); i >= 0 {
		c.items[i].Quantity = clamp(c.items[i].Quantity+qty, 1, MaxQuantity)
		return
	}

	if item.UnitAmount < 0 {
		item.UnitAmount = 0
	}
	item.Quantity = qty
	c.items = append(c.items, item)
}

// UpdateQuantity sets the quantity of productID, clamped to [0, MaxQuantity].
// Zero removes the line. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	qty := clamp(quantity, 0, MaxQuantity)
	if qty == 0 {
		c.removeAt(i)
		return
	}
	c.items[i].Quantity = qty
}

// RemoveItem drops productID if present.
func (c *Cart) RemoveItem(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.removeAt(i)
	}
}

func (c *Cart) removeAt(i int) {
	c.items = append(c.items[:i], c.items[i+1:]...)
}

// Clear empties the items and drops the coupon.
func (c *Cart) Clear() {
	c.items = []Item{}
	c.coupon = nil
}

// ApplyCoupon replaces any coupon with info. The coupon is not validated here.
func (c *Cart) ApplyCoupon(info Coupon) {
	cp := info
	if info.AmountOff != nil {
		v := *info.AmountOff
		cp.AmountOff = &v
	}
	if info.PercentOff != nil {
		v := *info.PercentOff
		cp.PercentOff = &v
	}
	c.coupon = &cp
}

// RemoveCoupon clears the coupon.
func (c *Cart) RemoveCoupon() {
	c.coupon = nil
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Coupon returns a copy of the applied coupon, or nil.
func (c *Cart) Coupon() *Coupon {
	if c.coupon == nil {
		return nil
	}
	cp := *c.coupon
	return &cp
}

// Len is the number of distinct line items.
func (c *Cart) Len() int { return len(c.items) }

// ItemCount is the sum of all quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Subtotal is recomputed on every call.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, it := range c.items {
		sum += it.UnitAmount * int64(it.Quantity)
	}
	return sum
}

// Discount is recomputed on every call.
func (c *Cart) Discount() int64 {
	return Discount(c.Subtotal(), c.coupon)
}

// Total is max(0, Subtotal - Discount).
func (c *Cart) Total() int64 {
	t := c.Subtotal() - c.Discount()
	if t < 0 {
		return 0
	}
	return t
}

// Currency reports the currency of the first line, or "" for an empty cart.
func (c *Cart) Currency() string {
	if len(c.items) == 0 {
		return ""
	}
	return c.items[0].Currency
}

// Snapshot returns a deep copy of the current state.
func (c *Cart) Snapshot() Snapshot {
	return Snapshot{Items: c.Items(), Coupon: c.Coupon()}
}
