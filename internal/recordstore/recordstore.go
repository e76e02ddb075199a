// Package recordstore is the durable fallback store: named records, each
// holding one JSON array. The booking collection lives under a single record,
// notifications under one record per user, chat history under one record per
// conversation.
package recordstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("record not found")

type Store interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}

type postgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

// EnsureSchema creates the record table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS app_records (
			name TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (s *postgresStore) Get(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	query := `SELECT data FROM app_records WHERE name = $1`
	err := s.db.GetContext(ctx, &data, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *postgresStore) Put(ctx context.Context, name string, data []byte) error {
	query := `
		INSERT INTO app_records (name, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`
	_, err := s.db.ExecContext(ctx, query, name, data)
	return err
}

func (s *postgresStore) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM app_records WHERE name = $1`
	_, err := s.db.ExecContext(ctx, query, name)
	return err
}
