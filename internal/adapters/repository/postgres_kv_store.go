package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/ramadan-tracker/internal/core/domain"
)

var _ domain.KeyValueStore = (*PostgresKVStore)(nil)

const (
	DefaultKVTable = "kv_entries"
	queryTimeout   = 3 * time.Second
)

type kvRow struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PostgresKVStore keeps keys in a two-column table. The table name is
// configurable and always quoted.
type PostgresKVStore struct {
	db    *sqlx.DB
	table string
}

func NewPostgresKVStore(db *sqlx.DB, table string) *PostgresKVStore {
	if table == "" {
		table = DefaultKVTable
	}
	return &PostgresKVStore{
		db:    db,
		table: pq.QuoteIdentifier(table),
	}
}

// EnsureSchema creates the table when missing.
func (r *PostgresKVStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, r.table)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("repository: ensure kv schema failed: %w", err)
	}
	return nil
}

func (r *PostgresKVStore) Get(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var row kvRow
	query := fmt.Sprintf(`SELECT key, value, updated_at FROM %s WHERE key = $1`, r.table)

	if err := r.db.GetContext(ctx, &row, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrKeyNotFound
		}
		return "", fmt.Errorf("repository: get %q failed: %w", key, err)
	}
	return row.Value, nil
}

func (r *PostgresKVStore) Set(ctx context.Context, key, value string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES (:key, :value, :updated_at)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = EXCLUDED.updated_at`, r.table)

	row := kvRow{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("repository: set %q failed: %w", key, err)
	}
	return nil
}

func (r *PostgresKVStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, r.table)
	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("repository: delete %q failed: %w", key, err)
	}
	return nil
}
