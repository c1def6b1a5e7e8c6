package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const postgresQueryTimeout = 5 * time.Second

// PostgresKeyValueStore keeps the same blobs as KeyValueRepository in a
// shared PostgreSQL database.
type PostgresKeyValueStore struct {
	sql *sql.DB
}

// OpenPostgres connects, pings, and creates the kv_entries table.
func OpenPostgres(connStr string) (*PostgresKeyValueStore, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), postgresQueryTimeout)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := &PostgresKeyValueStore{sql: s}
	if err := store.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return store, nil
}

func (store *PostgresKeyValueStore) Close() error {
	return store.sql.Close()
}

func (store *PostgresKeyValueStore) migrate(ctx context.Context) error {
	const createTable = `CREATE TABLE IF NOT EXISTS kv_entries (
		entry_key TEXT PRIMARY KEY,
		entry_value TEXT NOT NULL,
		updated_at TIMESTAMPTZ
	);`
	if _, err := store.sql.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (store *PostgresKeyValueStore) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), postgresQueryTimeout)
	defer cancel()

	var value string
	err := store.sql.QueryRowContext(ctx, `SELECT entry_value FROM kv_entries WHERE entry_key=$1;`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

const upsertEntrySQL = `INSERT INTO kv_entries(entry_key, entry_value, updated_at) VALUES($1, $2, $3)
	ON CONFLICT (entry_key) DO UPDATE SET entry_value=EXCLUDED.entry_value, updated_at=EXCLUDED.updated_at;`

func (store *PostgresKeyValueStore) Set(key string, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), postgresQueryTimeout)
	defer cancel()

	_, err := store.sql.ExecContext(ctx, upsertEntrySQL, key, value, time.Now().UTC())
	return err
}

// SetAll upserts every pair in one transaction.
func (store *PostgresKeyValueStore) SetAll(values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), postgresQueryTimeout)
	defer cancel()

	tx, err := store.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for key, value := range values {
		if _, err := tx.ExecContext(ctx, upsertEntrySQL, key, value, now); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return tx.Commit()
}

func (store *PostgresKeyValueStore) RemoveAll(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), postgresQueryTimeout)
	defer cancel()

	_, err := store.sql.ExecContext(ctx, `DELETE FROM kv_entries WHERE entry_key = ANY($1);`, pq.Array(keys))
	return err
}
