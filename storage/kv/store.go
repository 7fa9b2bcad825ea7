package sqlitekv

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// store is the durable cache tier, backed by the app's sqlite data file.
// It shares the *sqlx.DB with the note repository and does not own it.
type store struct {
	db *sqlx.DB
}

var _ core.KVStore = (*store)(nil)

func NewStore(db *sqlx.DB) core.KVStore {
	return &store{db: db}
}

func (s *store) Get(ctx context.Context, key string) ([]byte, time.Time, bool, error) {
	var row struct {
		Value     []byte    `db:"value"`
		ExpiresAt time.Time `db:"expires_at"`
	}
	err := s.db.GetContext(ctx, &row, `SELECT value, expires_at FROM kv WHERE key = ?`, key)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, errors.Wrapf(err, "reading kv %q", key)
	}
	return row.Value, row.ExpiresAt, true, nil
}

func (s *store) Set(ctx context.Context, key string, value []byte, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt)
	return errors.Wrapf(err, "writing kv %q", key)
}

func (s *store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return errors.Wrapf(err, "deleting kv %q", key)
}

func (s *store) Flush(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv`)
	return errors.Wrap(err, "flushing kv")
}

// Close is a no-op: the *sqlx.DB belongs to the caller.
func (s *store) Close() error { return nil }
