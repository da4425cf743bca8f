// Package kvstore persists small pieces of client state such as the signed-in
// session and saved food combinations.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Store defines the interface for all storage backends
type Store interface {
	// Get retrieves a value. A missing key yields an error matching ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value, replacing any previous one
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists checks if a key is present
	Exists(ctx context.Context, key string) (bool, error)

	// Clear removes every value owned by the store
	Clear(ctx context.Context) error

	Close() error
}

// ErrNotFound is returned when a key is not present
var ErrNotFound = errors.New("key not found")

func notFound(key string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, key)
}

// IsNotFound checks if an error is a missing key
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// GetJSON decodes the value at key into v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
