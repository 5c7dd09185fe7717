package store

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresKV stores blobs in the kv_blobs table created by the migrations.
type PostgresKV struct {
	db *sql.DB
}

func NewPostgresKV(db *sql.DB) *PostgresKV {
	return &PostgresKV{db: db}
}

func (p *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := p.db.QueryRowContext(ctx, `
		SELECT value
		FROM kv_blobs
		WHERE key = $1
	`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (p *PostgresKV) SetAll(ctx context.Context, entries map[string][]byte) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for k, v := range entries {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO kv_blobs (key, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		`, k, string(v))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
