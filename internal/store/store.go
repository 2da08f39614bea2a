// Package store persists the editor's brochure document under a single key.
//
// The payload is opaque JSON; decoding and schema checks belong to the
// content package. A missing entry is reported as ErrNotFound so callers can
// fall back to defaults.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultKey is the cache key the editor has always used.
const DefaultKey = "brochureBuilderContent"

// Sentinel errors for cache operations.
var (
	ErrNotFound      = errors.New("cache entry not found")
	ErrInvalidDriver = errors.New("invalid cache driver")
	ErrInvalidKey    = errors.New("invalid cache key")
	ErrMissingDSN    = errors.New("postgres cache requires a DSN")
)

// Cache loads, saves and clears one document.
type Cache interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
	Close() error
}

// Driver names a Cache implementation.
type Driver string

// Supported drivers.
const (
	DriverFile     Driver = "file"
	DriverMemory   Driver = "memory"
	DriverPostgres Driver = "postgres"
)

// Config selects and configures a Cache.
type Config struct {
	Driver Driver
	Dir    string // file driver
	DSN    string // postgres driver
	Key    string
}

// Open builds the Cache described by cfg. The postgres driver pings the
// database and creates its table if needed.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	switch Driver(strings.ToLower(string(cfg.Driver))) {
	case DriverFile, "":
		return NewFileCache(cfg.Dir, key)
	case DriverMemory:
		return NewMemoryCache(key), nil
	case DriverPostgres:
		if cfg.DSN == "" {
			return nil, ErrMissingDSN
		}
		return OpenPostgres(ctx, cfg.DSN, key)
	default:
		return nil, fmt.Errorf("%w: %q (must be file, memory, or postgres)", ErrInvalidDriver, cfg.Driver)
	}
}

const maxKeyLength = 128

// validateKey accepts keys usable as a file name: letters, digits, '-', '_' and '.'.
func validateKey(key string) error {
	if key == "" || len(key) > maxKeyLength || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
