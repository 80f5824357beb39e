package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-showcase/internal/runtimeconfig"
	"github.com/goliatone/go-showcase/pkg/interfaces"
)

// New builds the provider selected by cfg. It returns nil when caching is disabled.
func New(ctx context.Context, cfg runtimeconfig.CacheConfig) (interfaces.CacheProvider, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "memory":
		return NewMemory(cfg.Capacity, cfg.DefaultTTL), nil
	case "redis":
		provider, err := NewRedisFromURL(ctx, cfg.RedisURL, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrCacheProviderUnknown, cfg.Provider)
	}
}
