package cache

import (
	"context"
	"sync"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/goliatone/go-showcase/pkg/interfaces"
)

const (
	defaultCapacity    = 64
	defaultShards      = 4
	defaultTTL         = time.Minute
	evictionPercentage = 10
	maxTTL             = 24 * time.Hour
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process provider backed by sturdyc. The client-wide TTL is
// an upper bound; shorter per-entry TTLs are enforced on read.
type Memory struct {
	mu       sync.RWMutex
	client   *sturdyc.Client[memoryEntry]
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

var _ interfaces.CacheProvider = (*Memory)(nil)

// MemoryOption customises a Memory provider.
type MemoryOption func(*Memory)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMemory constructs a provider holding up to capacity entries for at most ttl.
func NewMemory(capacity int, ttl time.Duration, opts ...MemoryOption) *Memory {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if ttl > maxTTL {
		ttl = maxTTL
	}
	m := &Memory{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.client = m.newClient()
	return m
}

func (m *Memory) newClient() *sturdyc.Client[memoryEntry] {
	return sturdyc.New[memoryEntry](m.capacity, defaultShards, m.ttl, evictionPercentage,
		sturdyc.WithNoContinuousEvictions(),
	)
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()

	entry, ok := client.Get(key)
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	if !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		client.Delete(key)
		return nil, interfaces.ErrCacheMiss
	}
	return append([]byte(nil), entry.value...), nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 || ttl > m.ttl {
		ttl = m.ttl
	}
	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()

	client.Set(key, memoryEntry{
		value:   append([]byte(nil), value...),
		expires: m.now().Add(ttl),
	})
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	client := m.client
	m.mu.RUnlock()
	client.Delete(key)
	return nil
}

// Clear swaps in an empty client.
func (m *Memory) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.client = m.newClient()
	m.mu.Unlock()
	return nil
}

// Size reports the number of stored entries, expired or not.
func (m *Memory) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client.Size()
}
