package store

import (
	"bytes"
	"context"
	"sync"
)

var _ Cache = (*MemoryCache)(nil)

// MemoryCache keeps the document in process memory.
type MemoryCache struct {
	mu   sync.RWMutex
	key  string
	data map[string][]byte
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache(key string) *MemoryCache {
	if key == "" {
		key = DefaultKey
	}
	return &MemoryCache{key: key, data: make(map[string][]byte)}
}

func (c *MemoryCache) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.data[c.key]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(data), nil
}

func (c *MemoryCache) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[c.key] = bytes.Clone(data)
	return nil
}

func (c *MemoryCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, c.key)
	return nil
}

func (c *MemoryCache) Close() error { return nil }
