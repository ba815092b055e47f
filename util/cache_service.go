// util/cache_service.go

package util

import (
	"context"
	"time"

	"github.com/Rubentxu/hodei-artifacts-sub005/db"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
)

// CacheService is the Redis-backed decision cache. It satisfies the engine's
// cache port; a miss returns (nil, nil).
type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) Get(ctx context.Context, key string) (*model.AuthorizationResponse, error) {
	return db.GetCachedDecision(ctx, key)
}

func (c *CacheService) Put(ctx context.Context, key string, response *model.AuthorizationResponse, ttl time.Duration) error {
	return db.CacheDecision(ctx, key, response, ttl)
}

// InvalidateDecisions drops every cached decision and reports how many keys
// were removed.
func (c *CacheService) InvalidateDecisions(ctx context.Context) (int, error) {
	return db.InvalidateDecisionCache(ctx)
}
