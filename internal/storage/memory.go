// Package storage provides the durable backends a cart.Store can write
// snapshots into.
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/01moynul/restaurant-storefront/internal/cart"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = cart.ErrNotFound

// Sweeper is implemented by backends that do not expire keys themselves.
// Sweep drops snapshots not written for longer than maxAge and reports how
// many went. A maxAge of zero or less means carts never expire, as with a
// zero Redis TTL.
type Sweeper interface {
	Sweep(ctx context.Context, maxAge time.Duration) (int64, error)
}

type memEntry struct {
	value   []byte
	written time.Time
}

// Memory is an in-process backend. Contents are lost on restart.
type Memory struct {
	mu   sync.RWMutex
	data map[string]memEntry
	now  func() time.Time
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]memEntry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	m.mu.Lock()
	m.data[key] = memEntry{value: v, written: m.now()}
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Len reports how many keys are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *Memory) Sweep(_ context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	cutoff := m.now().Add(-maxAge)

	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for k, e := range m.data {
		if e.written.Before(cutoff) {
			delete(m.data, k)
			n++
		}
	}
	return n, nil
}
