// pdp/engine/cache_test.go
package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"github.com/Rubentxu/hodei-artifacts-sub005/pdp/engine"
	"github.com/stretchr/testify/assert"
)

func TestMemoryDecisionCache(t *testing.T) {
	ctx := context.Background()

	allowed := &model.AuthorizationResponse{
		Decision:            model.DecisionAllow,
		DeterminingPolicies: []string{"allow-read"},
		Reason:              engine.ReasonAllowedByIam,
		Explicit:            true,
	}

	t.Run("PutGet_RoundTrip", func(t *testing.T) {
		cache := engine.NewMemoryDecisionCache(0)

		err := cache.Put(ctx, "auth:alice:read:docs", allowed, time.Minute)
		assert.NoError(t, err)

		got, err := cache.Get(ctx, "auth:alice:read:docs")
		assert.NoError(t, err)
		assert.Equal(t, allowed, got)
	})

	t.Run("UnknownKey_Miss", func(t *testing.T) {
		cache := engine.NewMemoryDecisionCache(0)

		got, err := cache.Get(ctx, "auth:nobody:read:docs")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ExpiredEntry_DroppedOnRead", func(t *testing.T) {
		cache := engine.NewMemoryDecisionCache(0)

		assert.NoError(t, cache.Put(ctx, "k", allowed, 10*time.Millisecond))
		time.Sleep(25 * time.Millisecond)

		got, err := cache.Get(ctx, "k")
		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("InvalidateAll_Empties", func(t *testing.T) {
		cache := engine.NewMemoryDecisionCache(0)

		assert.NoError(t, cache.Put(ctx, "k1", allowed, time.Minute))
		assert.NoError(t, cache.Put(ctx, "k2", allowed, time.Minute))
		assert.Equal(t, 2, cache.Len())

		cache.InvalidateAll()

		assert.Equal(t, 0, cache.Len())
		got, err := cache.Get(ctx, "k1")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("FullCache_EvictsBeforeInsert", func(t *testing.T) {
		cache := engine.NewMemoryDecisionCache(2)

		assert.NoError(t, cache.Put(ctx, "k1", allowed, time.Minute))
		assert.NoError(t, cache.Put(ctx, "k2", allowed, time.Minute))
		assert.NoError(t, cache.Put(ctx, "k3", allowed, time.Minute))

		assert.Equal(t, 2, cache.Len())
		got, err := cache.Get(ctx, "k3")
		assert.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("NilResponse_Ignored", func(t *testing.T) {
		cache := engine.NewMemoryDecisionCache(0)

		assert.NoError(t, cache.Put(ctx, "k", nil, time.Minute))
		assert.Equal(t, 0, cache.Len())
	})
}
