package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLStore keeps values in a two-column table. The statements run unchanged
// on SQLite and PostgreSQL.
type SQLStore struct {
	db        *sql.DB
	tableName string
	now       func() time.Time
}

// NewSQLStore creates the table if needed.
func NewSQLStore(ctx context.Context, db *sql.DB, tableName string) (*SQLStore, error) {
	if tableName == "" {
		tableName = "kv"
	}
	if !tableNamePattern.MatchString(tableName) {
		return nil, fmt.Errorf("invalid table name %q", tableName)
	}

	store := &SQLStore{db: db, tableName: tableName, now: time.Now}
	if err := store.createTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create %s table: %w", tableName, err)
	}
	return store, nil
}

func (s *SQLStore) createTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name VARCHAR(255) PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`, s.tableName)

	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE name = $1`, s.tableName)

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(key)
	}
	if err != nil {
		return nil, fmt.Errorf("database query error: %w", err)
	}
	return []byte(value), nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query, key, string(value), s.now().UTC()); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE name = $1`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Exists(ctx context.Context, key string) (bool, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE name = $1`, s.tableName)

	var n int
	if err := s.db.QueryRowContext(ctx, query, key).Scan(&n); err != nil {
		return false, fmt.Errorf("database query error: %w", err)
	}
	return n > 0, nil
}

func (s *SQLStore) Clear(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to clear %s: %w", s.tableName, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
