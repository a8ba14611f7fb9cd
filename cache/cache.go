package cache

import (
	"context"
	"sync"

	"github.com/yeremiapane/restaurant-diary/diary"
)

// LayoutCache memoizes computed layouts per date. A cached layout is only
// returned while its input fingerprint still matches.
type LayoutCache interface {
	Get(ctx context.Context, date, fingerprint string) (*diary.Layout, bool)
	Set(ctx context.Context, date, fingerprint string, layout *diary.Layout)
	InvalidateDate(ctx context.Context, date string)
	InvalidateAll(ctx context.Context)
}

type entry struct {
	Fingerprint string        `json:"fingerprint"`
	Layout      *diary.Layout `json:"layout"`
}

type MemoryCache struct {
	entries map[string]entry
	mutex   sync.RWMutex
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]entry)}
}

func (c *MemoryCache) Get(ctx context.Context, date, fingerprint string) (*diary.Layout, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, exists := c.entries[date]
	if !exists || e.Fingerprint != fingerprint {
		return nil, false
	}
	return e.Layout, true
}

func (c *MemoryCache) Set(ctx context.Context, date, fingerprint string, layout *diary.Layout) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[date] = entry{Fingerprint: fingerprint, Layout: layout}
}

func (c *MemoryCache) InvalidateDate(ctx context.Context, date string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.entries, date)
}

func (c *MemoryCache) InvalidateAll(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = make(map[string]entry)
}
