// service/policy_service_test.go
package service_test

import (
	"context"
	"testing"

	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"github.com/Rubentxu/hodei-artifacts-sub005/pdp/engine"
	"github.com/Rubentxu/hodei-artifacts-sub005/service"
	"github.com/Rubentxu/hodei-artifacts-sub005/util"
	"github.com/stretchr/testify/assert"
)

// Validation happens before any DAO access, so these paths are testable
// without a database behind the service.
func newPolicyService() *service.PolicyService {
	return service.NewPolicyService(nil, util.NewValidationUtil(), nil, util.NewEventBus(), engine.NewCorpusAnalyzer(), util.NewMetricsService())
}

func TestPolicyService(t *testing.T) {
	logger.InitLogger("")
	defer logger.Sync()

	ctx := context.Background()

	t.Run("CreatePolicy_Failure_InvalidPolicy", func(t *testing.T) {
		svc := newPolicyService()

		created, err := svc.CreatePolicy(ctx, model.Policy{}, "admin")

		assert.Nil(t, created)
		assert.ErrorContains(t, err, "invalid policy")
	})

	t.Run("CreatePolicy_Failure_EffectTextMismatch", func(t *testing.T) {
		svc := newPolicyService()

		policy := model.Policy{
			Name:   "deny-all",
			Kind:   model.PolicyKindScp,
			Effect: model.EffectForbid,
			Text:   `permit (principal, action, resource);`,
		}
		_, err := svc.CreatePolicy(ctx, policy, "admin")

		assert.ErrorContains(t, err, "invalid policy")
	})

	t.Run("UpdatePolicy_Failure_InvalidPolicy", func(t *testing.T) {
		svc := newPolicyService()

		updated, err := svc.UpdatePolicy(ctx, model.Policy{ID: "p1"}, "admin")

		assert.Nil(t, updated)
		assert.ErrorContains(t, err, "invalid policy")
	})

	t.Run("AttachScp_Failure_MissingIDs", func(t *testing.T) {
		svc := newPolicyService()

		assert.Error(t, svc.AttachScp(ctx, "", "node-1", "admin"))
		assert.Error(t, svc.AttachScp(ctx, "scp-1", "", "admin"))
	})

	t.Run("DetachScp_Failure_MissingIDs", func(t *testing.T) {
		svc := newPolicyService()

		assert.Error(t, svc.DetachScp(ctx, "", "node-1", "admin"))
		assert.Error(t, svc.DetachScp(ctx, "scp-1", "", "admin"))
	})
}
