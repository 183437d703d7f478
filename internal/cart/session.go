package cart

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Session binds one visitor's cart to the store. Every mutation is
// persisted immediately; a failed write is logged and the in-memory
// cart stays authoritative for the rest of the request.
//
// A Session lives for a single request. It keeps the request context so
// the embedded Cart methods can persist without a ctx argument; open a new
// one per request and never keep it past the handler.
type Session struct {
	*Cart

	ctx   context.Context
	store *Store
	id    string
	log   logrus.FieldLogger
}

// Open loads the cart for sessionID.
func (s *Store) Open(ctx context.Context, sessionID string) *Session {
	return &Session{
		Cart:  New(s.Load(ctx, sessionID)),
		ctx:   ctx,
		store: s,
		id:    sessionID,
		log:   s.log.WithField("session", sessionID),
	}
}

// ID is the session id the cart is stored under.
func (s *Session) ID() string { return s.id }

func (s *Session) persist() {
	if err := s.store.Save(s.ctx, s.id, s.Cart.Snapshot()); err != nil {
		s.log.WithError(err).Error("failed to persist cart")
	}
}

func (s *Session) AddItem(item Item) {
	s.Cart.AddItem(item)
	s.persist()
}

func (s *Session) UpdateQuantity(productID string, quantity int) {
	s.Cart.UpdateQuantity(productID, quantity)
	s.persist()
}

func (s *Session) RemoveItem(productID string) {
	s.Cart.RemoveItem(productID)
	s.persist()
}

func (s *Session) ApplyCoupon(info Coupon) {
	s.Cart.ApplyCoupon(info)
	s.persist()
}

func (s *Session) RemoveCoupon() {
	s.Cart.RemoveCoupon()
	s.persist()
}

// Clear empties the cart and drops the stored snapshot.
func (s *Session) Clear() {
	s.Cart.Clear()
	if err := s.store.Delete(s.ctx, s.id); err != nil {
		s.log.WithError(err).Error("failed to delete cart")
	}
}
