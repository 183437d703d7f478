package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

// CreateSnapshotsTable is the DDL for the cart_snapshots table.
const CreateSnapshotsTable = `
	CREATE TABLE IF NOT EXISTS cart_snapshots (
		session_key VARCHAR(128) NOT NULL PRIMARY KEY,
		payload     JSON         NOT NULL,
		updated_at  DATETIME     NOT NULL
	)`

// MySQL stores snapshots in the cart_snapshots table, one row per key.
type MySQL struct {
	DB *sql.DB
}

func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{DB: db}
}

// EnsureSchema creates the snapshots table if it does not exist.
func (s *MySQL) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, CreateSnapshotsTable); err != nil {
		return errors.Wrap(err, "storage: create cart_snapshots")
	}
	return nil
}

func (s *MySQL) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := s.DB.QueryRowContext(ctx, "SELECT payload FROM cart_snapshots WHERE session_key = ?", key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "storage: select snapshot")
	}
	return payload, nil
}

func (s *MySQL) Set(ctx context.Context, key string, value []byte) error {
	// Upsert: a session only ever has one row.
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO cart_snapshots (session_key, payload, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			payload = VALUES(payload),
			updated_at = VALUES(updated_at)`,
		key, value, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "storage: upsert snapshot")
	}
	return nil
}

func (s *MySQL) Delete(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, "DELETE FROM cart_snapshots WHERE session_key = ?", key); err != nil {
		return errors.Wrap(err, "storage: delete snapshot")
	}
	return nil
}

// Sweep deletes rows whose updated_at is older than maxAge.
func (s *MySQL) Sweep(ctx context.Context, maxAge time.Duration) (int64, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	res, err := s.DB.ExecContext(ctx, "DELETE FROM cart_snapshots WHERE updated_at < ?", time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, errors.Wrap(err, "storage: sweep snapshots")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "storage: sweep snapshots")
	}
	return n, nil
}
