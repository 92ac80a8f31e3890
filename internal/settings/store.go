package settings

import (
	"context"
	"errors"
)

// Setting keys understood by the admission checker
const (
	KeyAllowedPostcodesLSOA     = "allowed_postcodes_lsoa"
	KeySpecificAllowedPostcodes = "specific_allowed_postcodes"
)

// Keys lists every known setting
var Keys = []string{KeySpecificAllowedPostcodes, KeyAllowedPostcodesLSOA}

// ErrUnknownSetting is returned for keys outside Keys
var ErrUnknownSetting = errors.New("unknown setting")

// ValidKey reports whether key is a known setting
func ValidKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Store defines the key-value interface for list-valued settings
// Allows multiple implementations (memory, CSV, Redis, MySQL) and easy testing with mocks
type Store interface {
	// Get returns the values of a setting
	// ok is false when the setting was never configured, which is distinct from an empty list
	Get(ctx context.Context, key string) (values []string, ok bool, err error)

	// Set replaces the values of a setting; an empty list is a valid value
	Set(ctx context.Context, key string, values []string) error

	// Unset returns a setting to the never-configured state
	Unset(ctx context.Context, key string) error

	// Close cleans up resources (database connections, etc.)
	Close() error
}

// Seed copies every configured known setting from src into dst
// Returns the number of settings copied
func Seed(ctx context.Context, dst, src Store) (int, error) {
	count := 0
	for _, key := range Keys {
		values, ok, err := src.Get(ctx, key)
		if err != nil {
			return count, err
		}
		if !ok {
			continue
		}
		if err := dst.Set(ctx, key, values); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func cloneValues(values []string) []string {
	if values == nil {
		return []string{}
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
