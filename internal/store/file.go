package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-brochure/internal/fileutil"
)

var _ Cache = (*FileCache)(nil)

// FileCache stores the document as {dir}/{key}.json. Writes are atomic.
type FileCache struct {
	path string
}

// NewFileCache creates a FileCache in dir. An empty dir means the user
// cache directory.
func NewFileCache(dir, key string) (*FileCache, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("resolving cache directory: %w", err)
		}
		dir = filepath.Join(base, "go-brochure")
	}
	return &FileCache{path: filepath.Join(dir, key+".json")}, nil
}

// Path returns the file backing the cache.
func (c *FileCache) Path() string {
	return c.path
}

func (c *FileCache) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}
	return data, nil
}

func (c *FileCache) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(c.path, data); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Clear removes the cache file. Clearing an empty cache is not an error.
func (c *FileCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing cache: %w", err)
	}
	return nil
}

func (c *FileCache) Close() error { return nil }
