package cart_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/restaurant-storefront/internal/cart"
	"github.com/01moynul/restaurant-storefront/internal/storage"
)

type brokenBackend struct{ err error }

func (b brokenBackend) Get(context.Context, string) ([]byte, error) { return nil, b.err }
func (b brokenBackend) Set(context.Context, string, []byte) error   { return b.err }
func (b brokenBackend) Delete(context.Context, string) error        { return b.err }

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(storage.NewMemory(), "", nil)

	snaps := []cart.Snapshot{
		cart.Empty(),
		{Items: []cart.Item{pho(3)}},
		{
			Items: []cart.Item{pho(1), {ProductID: "tea", Name: "Trà đá", UnitAmount: 250, Quantity: 999, Currency: "EUR"}},
			Coupon: &cart.Coupon{Code: "WELCOME", AmountOff: int64p(500), Label: "-5,00 €"},
		},
		{
			Items:  []cart.Item{pho(2)},
			Coupon: &cart.Coupon{Code: "TEN", PercentOff: int64p(10), Label: "10%"},
		},
		{
			Items:  []cart.Item{pho(2)},
			Coupon: &cart.Coupon{Code: "BOTH", AmountOff: int64p(0), PercentOff: int64p(100), Label: ""},
		},
	}

	for i, snap := range snaps {
		require.NoError(t, store.Save(ctx, "visitor", snap), "snapshot %d", i)
		assert.Equal(t, snap, store.Load(ctx, "visitor"), "snapshot %d", i)
	}
}

func TestStore_NilItemsLoadAsEmpty(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(storage.NewMemory(), "", nil)

	require.NoError(t, store.Save(ctx, "visitor", cart.Snapshot{}))
	got := store.Load(ctx, "visitor")
	assert.Equal(t, cart.Empty(), got)
	assert.NotNil(t, got.Items)

	raw, err := cart.Encode(cart.Snapshot{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[]}`, string(raw))
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	store := cart.NewStore(storage.NewMemory(), "", nil)
	assert.Equal(t, cart.Empty(), store.Load(context.Background(), "nobody"))
}

func TestStore_LoadCorruptIsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	store := cart.NewStore(mem, "", nil)

	for _, raw := range []string{"{not json", `"just a string"`, `{"items":{"a":1}}`, ""} {
		require.NoError(t, mem.Set(ctx, store.Key("v"), []byte(raw)))
		snap := store.Load(ctx, "v")
		assert.Empty(t, snap.Items, "payload %q", raw)
		assert.Nil(t, snap.Coupon, "payload %q", raw)
	}
}

func TestStore_LoadBackendErrorIsEmpty(t *testing.T) {
	store := cart.NewStore(brokenBackend{err: errors.New("down")}, "", nil)
	assert.Equal(t, cart.Empty(), store.Load(context.Background(), "v"))
}

func TestStore_SaveSurfacesBackendError(t *testing.T) {
	store := cart.NewStore(brokenBackend{err: errors.New("down")}, "", nil)
	assert.Error(t, store.Save(context.Background(), "v", cart.Empty()))
}

func TestStore_KeyPrefix(t *testing.T) {
	assert.Equal(t, "cart:abc", cart.NewStore(storage.NewMemory(), "", nil).Key("abc"))
	assert.Equal(t, "shop:abc", cart.NewStore(storage.NewMemory(), "shop:", nil).Key("abc"))
}

func TestEncode_PersistedShape(t *testing.T) {
	raw, err := cart.Encode(cart.Snapshot{Items: []cart.Item{pho(1)}})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"items":[{"productId":"pho","name":"Phở bò","unitAmount":1450,"quantity":1,"currency":"EUR"}]}`,
		string(raw))

	raw, err = cart.Encode(cart.Snapshot{Coupon: &cart.Coupon{Code: "TEN", PercentOff: int64p(10), Label: "10%"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"coupon":{"code":"TEN","percentOff":10,"label":"10%"}}`, string(raw))
}

func TestDecode_NormalisesTamperedPayload(t *testing.T) {
	payload, _ := json.Marshal(map[string]any{
		"items": []map[string]any{
			{"productId": "pho", "unitAmount": 1450, "quantity": 2000, "currency": "EUR"},
			{"productId": "pho", "unitAmount": 1450, "quantity": 5, "currency": "EUR"},
			{"productId": "tea", "unitAmount": -1, "quantity": 0, "currency": "EUR"},
		},
	})

	snap, err := cart.Decode(payload)
	require.NoError(t, err)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, cart.MaxQuantity, snap.Items[0].Quantity)
	assert.Equal(t, 1, snap.Items[1].Quantity)
	assert.Equal(t, int64(0), snap.Items[1].UnitAmount)
}

func TestSession_PersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(storage.NewMemory(), "", nil)

	s := store.Open(ctx, "visitor")
	s.AddItem(pho(1))
	assert.Len(t, store.Load(ctx, "visitor").Items, 1)

	s.AddItem(pho(2))
	assert.Equal(t, 3, store.Load(ctx, "visitor").Items[0].Quantity)

	s.ApplyCoupon(cart.Coupon{Code: "FIVE", AmountOff: int64p(500)})
	require.NotNil(t, store.Load(ctx, "visitor").Coupon)

	reopened := store.Open(ctx, "visitor")
	assert.Equal(t, int64(3850), reopened.Total())

	s.RemoveCoupon()
	assert.Nil(t, store.Load(ctx, "visitor").Coupon)

	s.UpdateQuantity("pho", 0)
	assert.Empty(t, store.Load(ctx, "visitor").Items)

	s.AddItem(pho(1))
	s.RemoveItem("pho")
	assert.Empty(t, store.Load(ctx, "visitor").Items)

	s.AddItem(pho(1))
	s.Clear()
	assert.Equal(t, cart.Empty(), store.Load(ctx, "visitor"))
	assert.Equal(t, "visitor", s.ID())
}

func TestSession_SaveFailureKeepsMemoryState(t *testing.T) {
	store := cart.NewStore(brokenBackend{err: errors.New("down")}, "", nil)
	s := store.Open(context.Background(), "visitor")

	s.AddItem(pho(2))
	assert.Equal(t, int64(2900), s.Subtotal())
}

func TestSession_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(storage.NewMemory(), "", nil)

	store.Open(ctx, "a").AddItem(pho(1))
	assert.Empty(t, store.Open(ctx, "b").Items())
}

type ctxKey struct{}

// ctxRecorder remembers the context of the last write.
type ctxRecorder struct {
	*storage.Memory
	last context.Context
}

func (r *ctxRecorder) Set(ctx context.Context, key string, value []byte) error {
	r.last = ctx
	return r.Memory.Set(ctx, key, value)
}

func TestSession_PersistsWithRequestContext(t *testing.T) {
	rec := &ctxRecorder{Memory: storage.NewMemory()}
	store := cart.NewStore(rec, "", nil)
	reqCtx := context.WithValue(context.Background(), ctxKey{}, "request-1")

	sess := store.Open(reqCtx, "visitor")
	sess.AddItem(pho(1))

	require.NotNil(t, rec.last)
	assert.Equal(t, "request-1", rec.last.Value(ctxKey{}))
}
