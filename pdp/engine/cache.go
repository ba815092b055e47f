// pdp/engine/cache.go
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/Rubentxu/hodei-artifacts-sub005/model"
)

const defaultDecisionCacheSize = 4096

type cachedDecision struct {
	response  model.AuthorizationResponse
	expiresAt time.Time
}

// MemoryDecisionCache is a process-local AuthorizationCache. It is the
// default cache when no Redis backend is configured and the one used by
// tests. Expired entries are dropped lazily on read.
type MemoryDecisionCache struct {
	mu      sync.RWMutex
	entries map[string]cachedDecision
	maxSize int
}

func NewMemoryDecisionCache(maxSize int) *MemoryDecisionCache {
	if maxSize <= 0 {
		maxSize = defaultDecisionCacheSize
	}
	return &MemoryDecisionCache{
		entries: make(map[string]cachedDecision),
		maxSize: maxSize,
	}
}

func (mc *MemoryDecisionCache) Get(ctx context.Context, key string) (*model.AuthorizationResponse, error) {
	mc.mu.RLock()
	entry, ok := mc.entries[key]
	mc.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		mc.mu.Lock()
		delete(mc.entries, key)
		mc.mu.Unlock()
		return nil, nil
	}

	response := entry.response
	return &response, nil
}

func (mc *MemoryDecisionCache) Put(ctx context.Context, key string, response *model.AuthorizationResponse, ttl time.Duration) error {
	if response == nil {
		return nil
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if len(mc.entries) >= mc.maxSize {
		for k := range mc.entries {
			delete(mc.entries, k)
			break
		}
	}

	mc.entries[key] = cachedDecision{
		response:  *response,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// InvalidateAll drops every cached decision. Wired to policy change events
// so stale decisions do not outlive a policy edit.
func (mc *MemoryDecisionCache) InvalidateAll() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.entries = make(map[string]cachedDecision)
}

func (mc *MemoryDecisionCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.entries)
}
