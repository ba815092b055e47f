// util/event_bus_test.go
package util_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"github.com/Rubentxu/hodei-artifacts-sub005/pdp/engine"
	"github.com/Rubentxu/hodei-artifacts-sub005/util"
	"github.com/stretchr/testify/assert"
)

func TestEventBus(t *testing.T) {
	logger.InitLogger("")
	defer logger.Sync()

	t.Run("Publish_DeliversToSubscriber", func(t *testing.T) {
		bus := util.NewEventBus()
		received := make(chan util.Event, 1)

		bus.Subscribe("policy.created", func(ctx context.Context, event util.Event) error {
			received <- event
			return nil
		})

		bus.Publish(context.Background(), "policy.created", "policy-1")

		select {
		case event := <-received:
			assert.Equal(t, "policy.created", event.Type)
			assert.Equal(t, "policy-1", event.Payload)
		case <-time.After(time.Second):
			t.Fatal("event was not delivered")
		}
	})

	t.Run("Publish_FansOutToAllSubscribers", func(t *testing.T) {
		bus := util.NewEventBus()
		var wg sync.WaitGroup
		wg.Add(3)

		for i := 0; i < 3; i++ {
			bus.Subscribe("policy.updated", func(ctx context.Context, event util.Event) error {
				wg.Done()
				return nil
			})
		}

		bus.Publish(context.Background(), "policy.updated", "policy-1")

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("not every subscriber was invoked")
		}
	})

	t.Run("Publish_NoSubscribers_Noop", func(t *testing.T) {
		bus := util.NewEventBus()
		bus.Publish(context.Background(), "policy.deleted", "policy-1")
	})

	t.Run("HandlerError_DoesNotBlockOthers", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		bus := util.NewEventBus()
		bus.Start(ctx)

		received := make(chan struct{}, 1)
		bus.Subscribe("scp.attached", func(ctx context.Context, event util.Event) error {
			return fmt.Errorf("handler blew up")
		})
		bus.Subscribe("scp.attached", func(ctx context.Context, event util.Event) error {
			received <- struct{}{}
			return nil
		})

		bus.Publish(ctx, "scp.attached", nil)

		select {
		case <-received:
		case <-time.After(time.Second):
			t.Fatal("healthy subscriber was starved by a failing one")
		}
	})

	t.Run("PolicyChange_InvalidatesMemoryDecisionCache", func(t *testing.T) {
		ctx := context.Background()
		bus := util.NewEventBus()
		cache := engine.NewMemoryDecisionCache(0)

		invalidated := make(chan struct{}, 1)
		bus.Subscribe("policy.updated", func(ctx context.Context, event util.Event) error {
			cache.InvalidateAll()
			invalidated <- struct{}{}
			return nil
		})

		resp := &model.AuthorizationResponse{Decision: model.DecisionAllow, Explicit: true}
		assert.NoError(t, cache.Put(ctx, "auth:alice:read:docs", resp, time.Minute))
		assert.Equal(t, 1, cache.Len())

		bus.Publish(ctx, "policy.updated", "policy-1")

		select {
		case <-invalidated:
		case <-time.After(time.Second):
			t.Fatal("invalidation handler did not run")
		}
		assert.Equal(t, 0, cache.Len())
	})
}
