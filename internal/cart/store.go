package cart

import (
	"context"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultKeyPrefix namespaces cart snapshots in the backing store.
const DefaultKeyPrefix = "cart:"

// ErrNotFound is returned by a Backend when a key has never been written.
var ErrNotFound = errors.New("cart: key not found")

// Backend is a durable byte store addressed by key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Store serializes snapshots into a Backend. Reads never fail: a missing
// key, a backend error or a corrupt payload all load as an empty cart.
type Store struct {
	backend Backend
	prefix  string
	log     logrus.FieldLogger
}

// NewStore wraps backend. An empty prefix falls back to DefaultKeyPrefix.
func NewStore(backend Backend, prefix string, log logrus.FieldLogger) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = l
	}
	return &Store{backend: backend, prefix: prefix, log: log}
}

// Key returns the backend key for a session id.
func (s *Store) Key(sessionID string) string {
	return s.prefix + sessionID
}

// Load returns the snapshot stored for sessionID, or an empty snapshot.
func (s *Store) Load(ctx context.Context, sessionID string) Snapshot {
	key := s.Key(sessionID)
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.WithField("key", key).WithError(err).Warn("cart load failed, starting empty")
		}
		return Empty()
	}

	snap, err := Decode(raw)
	if err != nil {
		s.log.WithField("key", key).WithError(err).Warn("corrupt cart snapshot, starting empty")
		return Empty()
	}
	return snap
}

// Save writes the full snapshot. Last writer wins.
func (s *Store) Save(ctx context.Context, sessionID string, snap Snapshot) error {
	raw, err := Encode(snap)
	if err != nil {
		return err
	}
	if err := s.backend.Set(ctx, s.Key(sessionID), raw); err != nil {
		return errors.Wrap(err, "cart: save snapshot")
	}
	return nil
}

// Delete removes the stored snapshot for sessionID.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.backend.Delete(ctx, s.Key(sessionID)); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Wrap(err, "cart: delete snapshot")
	}
	return nil
}

// Encode renders a snapshot in its persisted JSON form. Nil Items is
// written as [] so the stored shape always matches Empty().
func Encode(snap Snapshot) ([]byte, error) {
	if snap.Items == nil {
		snap.Items = []Item{}
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, errors.Wrap(err, "cart: encode snapshot")
	}
	return raw, nil
}

// Decode parses a persisted snapshot and normalises it through the cart
// rules so duplicate ids and out-of-range quantities cannot survive a load.
func Decode(raw []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Empty(), errors.Wrap(err, "cart: decode snapshot")
	}
	return New(snap).Snapshot(), nil
}
