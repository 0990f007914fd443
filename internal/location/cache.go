package location

import (
	"context"
	"sync"
	"time"

	"github.com/om-bhaiya/messle/internal/models"
)

// DefaultMaxAge matches the platform's low-effort mode: cached readings up
// to five minutes old are acceptable.
const DefaultMaxAge = 5 * time.Minute

// SessionCache holds the last good coordinate pair for the caller's
// session. Get returns nil when nothing fresh is cached.
type SessionCache interface {
	Get(ctx context.Context) (*models.Location, error)
	Put(ctx context.Context, loc models.Location) error
	Clear(ctx context.Context) error
}

// MemoryCache is the in-process SessionCache used by single-shot CLI runs
// and tests.
type MemoryCache struct {
	mu     sync.Mutex
	loc    *models.Location
	at     time.Time
	maxAge time.Duration
	now    func() time.Time
}

func NewMemoryCache(maxAge time.Duration) *MemoryCache {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &MemoryCache{maxAge: maxAge, now: time.Now}
}

func (c *MemoryCache) Get(context.Context) (*models.Location, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loc == nil || c.now().Sub(c.at) > c.maxAge {
		return nil, nil
	}
	loc := *c.loc
	return &loc, nil
}

func (c *MemoryCache) Put(_ context.Context, loc models.Location) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loc = &loc
	c.at = c.now()
	return nil
}

func (c *MemoryCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loc = nil
	return nil
}
