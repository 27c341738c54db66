package cache

import (
	"context"
	"sync"

	"github.com/splitledger/splitledger/internal/engine"
)

// Ensure MemoryCache implements SummaryCache
var _ SummaryCache = (*MemoryCache)(nil)

// MemoryCache is a process-local SummaryCache, used in tests and when no
// Redis address is configured.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]*engine.Summary
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]*engine.Summary)}
}

// Get retrieves a cached summary.
func (c *MemoryCache) Get(_ context.Context, key string) (*engine.Summary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	summary, ok := c.data[key]
	return summary, ok
}

// Set stores a summary.
func (c *MemoryCache) Set(_ context.Context, key string, summary *engine.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = summary
}
