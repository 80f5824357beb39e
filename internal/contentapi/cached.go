package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-showcase/internal/logging"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

const defaultCacheTTL = time.Minute

// CachedOption customises a CachedSource.
type CachedOption func(*CachedSource)

// WithTTL sets how long fetched envelopes stay cached.
func WithTTL(ttl time.Duration) CachedOption {
	return func(s *CachedSource) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithKeyPrefix namespaces cache keys.
func WithKeyPrefix(prefix string) CachedOption {
	return func(s *CachedSource) {
		s.prefix = prefix
	}
}

// WithCacheLogger injects the logger used for cache diagnostics.
func WithCacheLogger(logger interfaces.Logger) CachedOption {
	return func(s *CachedSource) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// CachedSource serves envelopes from a cache and falls through to source on a
// miss. Cache failures never fail a fetch.
type CachedSource struct {
	source interfaces.ContentAPI
	cache  interfaces.CacheProvider
	ttl    time.Duration
	prefix string
	logger interfaces.Logger
}

var _ interfaces.ContentAPI = (*CachedSource)(nil)

// NewCachedSource wraps source with cache.
func NewCachedSource(source interfaces.ContentAPI, cache interfaces.CacheProvider, opts ...CachedOption) *CachedSource {
	s := &CachedSource{
		source: source,
		cache:  cache,
		ttl:    defaultCacheTTL,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchContent returns the cached content envelope for req, fetching it on a miss.
func (s *CachedSource) FetchContent(ctx context.Context, req interfaces.PageRequest) (*interfaces.ContentEnvelope, error) {
	req = normalizePage(req)
	key := s.key(endpointContent, req)
	var envelope interfaces.ContentEnvelope
	if s.lookup(ctx, key, &envelope) {
		return &envelope, nil
	}
	fetched, err := s.source.FetchContent(ctx, req)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, fetched)
	return fetched, nil
}

// FetchTeam returns the cached team envelope for req, fetching it on a miss.
func (s *CachedSource) FetchTeam(ctx context.Context, req interfaces.PageRequest) (*interfaces.TeamEnvelope, error) {
	req = normalizePage(req)
	key := s.key(endpointTeam, req)
	var envelope interfaces.TeamEnvelope
	if s.lookup(ctx, key, &envelope) {
		return &envelope, nil
	}
	fetched, err := s.source.FetchTeam(ctx, req)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, fetched)
	return fetched, nil
}

// Invalidate drops every cached envelope.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Clear(ctx); err != nil {
		return fmt.Errorf("contentapi: clear cache: %w", err)
	}
	s.logger.Info("contentapi.cache.invalidated")
	return nil
}

func (s *CachedSource) key(endpoint string, req interfaces.PageRequest) string {
	return fmt.Sprintf("%s%s:%d:%d", s.prefix, endpoint, req.Page, req.Limit)
}

func (s *CachedSource) lookup(ctx context.Context, key string, target any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			s.logger.Warn("contentapi.cache.get_failed", "key", key, "error", err)
		}
		return false
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		s.logger.Warn("contentapi.cache.corrupt", "key", key, "error", err)
		_ = s.cache.Delete(ctx, key)
		return false
	}
	s.logger.Debug("contentapi.cache.hit", "key", key)
	return true
}

func (s *CachedSource) store(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("contentapi.cache.encode_failed", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.Warn("contentapi.cache.set_failed", "key", key, "error", err)
	}
}
