package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/restaurant-storefront/internal/cart"
)

func pho(qty int) cart.Item {
	return cart.Item{ProductID: "pho", Name: "Phở bò", UnitAmount: 1450, Quantity: qty, Currency: "EUR"}
}

func int64p(v int64) *int64 { return &v }

func TestAddItem_MergesSameProduct(t *testing.T) {
	c := cart.New(cart.Empty())
	c.AddItem(pho(1))
	c.AddItem(pho(2))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, int64(4350), c.Subtotal())
}

func TestAddItem_SumIsCappedAtMax(t *testing.T) {
	c := cart.New(cart.Empty())
	adds := []int{400, 400, 400, 5}
	for _, q := range adds {
		c.AddItem(pho(q))
	}

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, cart.MaxQuantity, items[0].Quantity)
}

func TestAddItem_ClampsNewLine(t *testing.T) {
	c := cart.New(cart.Empty())
	c.AddItem(cart.Item{ProductID: "a", UnitAmount: -10, Quantity: 0, Currency: "EUR"})
	c.AddItem(cart.Item{ProductID: "b", UnitAmount: 100, Quantity: 5000, Currency: "EUR"})

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, int64(0), items[0].UnitAmount)
	assert.Equal(t, cart.MaxQuantity, items[1].Quantity)
}

func TestAddItem_KeepsInsertionOrder(t *testing.T) {
	c := cart.New(cart.Empty())
	for _, id := range []string{"spring-roll", "pho", "banh-mi"} {
		c.AddItem(cart.Item{ProductID: id, UnitAmount: 500, Quantity: 1, Currency: "EUR"})
	}
	c.AddItem(cart.Item{ProductID: "pho", UnitAmount: 500, Quantity: 1, Currency: "EUR"})

	var ids []string
	for _, it := range c.Items() {
		ids = append(ids, it.ProductID)
	}
	assert.Equal(t, []string{"spring-roll", "pho", "banh-mi"}, ids)
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantQty   int
		wantFound bool
	}{
		{"sets value", 7, 7, true},
		{"zero removes", 0, 0, false},
		{"negative removes", -3, 0, false},
		{"caps at max", 10_000, cart.MaxQuantity, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cart.New(cart.Empty())
			c.AddItem(pho(2))
			c.UpdateQuantity("pho", tt.quantity)

			items := c.Items()
			if !tt.wantFound {
				assert.Empty(t, items)
				return
			}
			require.Len(t, items, 1)
			assert.Equal(t, tt.wantQty, items[0].Quantity)
		})
	}
}

func TestUpdateQuantity_UnknownIsNoop(t *testing.T) {
	c := cart.New(cart.Empty())
	c.UpdateQuantity("x", 5)

	assert.Empty(t, c.Items())
	assert.Equal(t, int64(0), c.Total())
}

func TestRemoveItem(t *testing.T) {
	c := cart.New(cart.Empty())
	c.AddItem(pho(1))
	c.AddItem(cart.Item{ProductID: "tea", UnitAmount: 300, Quantity: 2, Currency: "EUR"})

	c.RemoveItem("pho")
	c.RemoveItem("missing")

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "tea", items[0].ProductID)
}

func TestClear_DropsCoupon(t *testing.T) {
	c := cart.New(cart.Empty())
	c.AddItem(pho(1))
	c.ApplyCoupon(cart.Coupon{Code: "WELCOME", AmountOff: int64p(500)})

	c.Clear()

	assert.Empty(t, c.Items())
	assert.Nil(t, c.Coupon())
}

func TestApplyCoupon_ReplacesExisting(t *testing.T) {
	c := cart.New(cart.Empty())
	c.AddItem(pho(3))

	c.ApplyCoupon(cart.Coupon{Code: "FIRST", AmountOff: int64p(500)})
	c.ApplyCoupon(cart.Coupon{Code: "SECOND", PercentOff: int64p(10)})

	require.NotNil(t, c.Coupon())
	assert.Equal(t, "SECOND", c.Coupon().Code)
	assert.Equal(t, int64(435), c.Discount())

	c.RemoveCoupon()
	assert.Nil(t, c.Coupon())
	assert.Equal(t, int64(4350), c.Total())
}

func TestApplyCoupon_CopiesCallerValues(t *testing.T) {
	c := cart.New(cart.Empty())
	c.AddItem(pho(3))

	off := int64(500)
	c.ApplyCoupon(cart.Coupon{Code: "X", AmountOff: &off})
	off = 4000

	assert.Equal(t, int64(500), c.Discount())
}

func TestTotals_Scenarios(t *testing.T) {
	c := cart.New(cart.Empty())
	c.AddItem(pho(1))
	c.AddItem(pho(2))

	c.ApplyCoupon(cart.Coupon{Code: "FIVE", AmountOff: int64p(500)})
	assert.Equal(t, int64(500), c.Discount())
	assert.Equal(t, int64(3850), c.Total())

	c.ApplyCoupon(cart.Coupon{Code: "TEN", PercentOff: int64p(10)})
	assert.Equal(t, int64(435), c.Discount())
	assert.Equal(t, int64(3915), c.Total())
}

func TestTotal_NeverNegative(t *testing.T) {
	c := cart.New(cart.Empty())
	c.AddItem(cart.Item{ProductID: "tea", UnitAmount: 300, Quantity: 1, Currency: "EUR"})
	c.ApplyCoupon(cart.Coupon{Code: "GIFT", AmountOff: int64p(10_000)})

	assert.Equal(t, int64(300), c.Discount())
	assert.Equal(t, int64(0), c.Total())
}

func TestTotalInvariant_OverOperationSequence(t *testing.T) {
	c := cart.New(cart.Empty())
	coupons := []*cart.Coupon{
		nil,
		{Code: "A", AmountOff: int64p(250)},
		{Code: "B", PercentOff: int64p(33)},
		{Code: "C", AmountOff: int64p(0), PercentOff: int64p(0)},
	}

	for step := 0; step < 60; step++ {
		id := []string{"pho", "tea", "bun"}[step%3]
		switch step % 5 {
		case 0, 1:
			c.AddItem(cart.Item{ProductID: id, UnitAmount: int64(100 * (step%7 + 1)), Quantity: step % 4, Currency: "EUR"})
		case 2:
			c.UpdateQuantity(id, step%9-3)
		case 3:
			if cp := coupons[step%len(coupons)]; cp != nil {
				c.ApplyCoupon(*cp)
			} else {
				c.RemoveCoupon()
			}
		case 4:
			c.RemoveItem(id)
		}

		seen := map[string]bool{}
		for _, it := range c.Items() {
			assert.False(t, seen[it.ProductID], "duplicate %s at step %d", it.ProductID, step)
			seen[it.ProductID] = true
			assert.GreaterOrEqual(t, it.Quantity, 1)
			assert.LessOrEqual(t, it.Quantity, cart.MaxQuantity)
		}

		d := c.Discount()
		assert.GreaterOrEqual(t, d, int64(0))
		assert.LessOrEqual(t, d, c.Subtotal())
		want := c.Subtotal() - d
		if want < 0 {
			want = 0
		}
		assert.Equal(t, want, c.Total())
	}
}

func TestNew_NormalisesSnapshot(t *testing.T) {
	c := cart.New(cart.Snapshot{Items: []cart.Item{pho(2), pho(5), {ProductID: "tea", Quantity: -4}}})

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 7, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.Equal(t, 8, c.ItemCount())
	assert.Equal(t, "EUR", c.Currency())
}
