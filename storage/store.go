package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
)

// Logical keys, one JSON blob each.
const (
	KeyAuth        = "cartify_auth"
	KeyCart        = "cartify_cart"
	KeyWishlist    = "wishlist"
	KeyPreferences = "cartify_preferences"
)

// Store is the key-value persistence port every client-side component writes
// through. Writes are last-write-wins.
type Store interface {
	// Get returns the value for key. A missing key is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// GetJSON loads key into out. It reports whether the key existed. A value
// that is present but does not unmarshal yields a DecodeFailure.
func GetJSON(ctx context.Context, s Store, key string, out any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, apperrors.DecodeFailure(key, err)
	}
	return true, nil
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
