// Package session holds the single brochure being edited.
//
// Every change replaces the current value with a new one built by the
// content package's copy-on-write operations, then writes it to the cache.
// Readers always get a snapshot that later edits cannot reach.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-brochure/content"
	"github.com/alnah/go-brochure/internal/store"
)

// EditFunc derives a new brochure from the current one.
type EditFunc func(content.Brochure) (content.Brochure, error)

// Session is the single owner of the editor's brochure. Safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	current content.Brochure
	cache   store.Cache
	logger  *zap.Logger
}

// Open restores the session from cache. A missing, unreadable or
// schema-drifted entry yields the default brochure; only the log records it.
func Open(ctx context.Context, cache store.Cache, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{cache: cache, logger: logger, current: content.Default()}

	raw, err := cache.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		logger.Debug("no cached brochure, starting from defaults")
		return s
	case err != nil:
		logger.Warn("cache unavailable, starting from defaults", zap.Error(err))
		return s
	}

	b, err := content.DecodeCached(raw)
	if err != nil {
		logger.Debug("discarding cached brochure", zap.Error(err))
		return s
	}
	s.current = b
	return s
}

// Snapshot returns a copy of the current brochure.
func (s *Session) Snapshot() content.Brochure {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Update applies fn to the current brochure. On error nothing changes.
// The result is persisted; a cache failure is logged and does not undo the edit.
func (s *Session) Update(ctx context.Context, fn EditFunc) (content.Brochure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.current)
	if err != nil {
		return s.current.Clone(), err
	}
	s.current = next
	s.persist(ctx)
	return next.Clone(), nil
}

// Replace swaps in b wholesale, as when a full document is uploaded.
func (s *Session) Replace(ctx context.Context, b content.Brochure) content.Brochure {
	out, _ := s.Update(ctx, func(content.Brochure) (content.Brochure, error) {
		return b.Clone(), nil
	})
	return out
}

// Reset restores the default brochure and clears the cache entry.
func (s *Session) Reset(ctx context.Context) content.Brochure {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = content.Default()
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.Warn("clearing cached brochure failed", zap.Error(err))
	}
	return s.current.Clone()
}

// persist must be called with s.mu held.
func (s *Session) persist(ctx context.Context) {
	raw, err := content.Marshal(s.current)
	if err != nil {
		s.logger.Error("encoding brochure for cache", zap.Error(err))
		return
	}
	if err := s.cache.Save(ctx, raw); err != nil {
		s.logger.Warn("saving brochure to cache failed", zap.Error(err))
	}
}
