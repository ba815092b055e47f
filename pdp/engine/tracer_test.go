// pdp/engine/tracer_test.go
package engine_test

import (
	"context"
	"testing"

	hodei_errors "github.com/Rubentxu/hodei-artifacts-sub005/errors"
	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"github.com/Rubentxu/hodei-artifacts-sub005/pdp/engine"
	"github.com/Rubentxu/hodei-artifacts-sub005/pdp/evaluator"
	"github.com/Rubentxu/hodei-artifacts-sub005/test/enginemock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestDecisionTracer(t *testing.T) {
	logger.InitLogger("")
	defer logger.Sync()

	adminGroup := model.NewHrn("hodei", "iam", "acct-1", "group", "admins")
	permitAll := `permit (principal, action, resource);`
	forbidAdmins := `forbid (principal in Group::"admins", action, resource);`

	expectResolution := func(entities *enginemock.MockEntityResolver, principalParents []model.Hrn) {
		entities.EXPECT().ResolveEntity(gomock.Any(), testPrincipal).
			Return(&model.Entity{Hrn: testPrincipal, Parents: principalParents}, nil)
		entities.EXPECT().ResolveEntity(gomock.Any(), testResource).
			Return(&model.Entity{Hrn: testResource}, nil)
	}

	t.Run("ForbidDrivesDeny_FoundByRemoval", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		entities := enginemock.NewMockEntityResolver(ctrl)
		expectResolution(entities, []model.Hrn{adminGroup})

		tracer := engine.NewDecisionTracer(evaluator.NewCedarEvaluator(), entities, 0)
		result, err := tracer.Trace(context.Background(), testRequest(), []string{forbidAdmins, permitAll})

		assert.NoError(t, err)
		assert.Equal(t, model.DecisionDeny, result.Decision)
		// Only the forbid flips the decision when removed; the permit does not.
		assert.Equal(t, []string{"policy0"}, result.DeterminingPolicyIDs)
	})

	t.Run("SinglePermit_DeterminesItsAllow", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		entities := enginemock.NewMockEntityResolver(ctrl)
		expectResolution(entities, nil)

		tracer := engine.NewDecisionTracer(evaluator.NewCedarEvaluator(), entities, 0)
		result, err := tracer.Trace(context.Background(), testRequest(), []string{permitAll})

		assert.NoError(t, err)
		assert.Equal(t, model.DecisionAllow, result.Decision)
		assert.Equal(t, []string{"policy0"}, result.DeterminingPolicyIDs)
	})

	t.Run("RedundantPermits_NoSinglePolicyFlips", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		entities := enginemock.NewMockEntityResolver(ctrl)
		expectResolution(entities, nil)

		tracer := engine.NewDecisionTracer(evaluator.NewCedarEvaluator(), entities, 0)
		result, err := tracer.Trace(context.Background(), testRequest(), []string{permitAll, permitAll})

		assert.NoError(t, err)
		assert.Equal(t, model.DecisionAllow, result.Decision)
		// Removing either permit alone leaves the other, so neither is
		// determining under single-removal analysis.
		assert.Empty(t, result.DeterminingPolicyIDs)
	})

	t.Run("UnparsablePolicy_FailsBaseline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		entities := enginemock.NewMockEntityResolver(ctrl)
		expectResolution(entities, nil)

		tracer := engine.NewDecisionTracer(evaluator.NewCedarEvaluator(), entities, 0)
		result, err := tracer.Trace(context.Background(), testRequest(), []string{"this is not a policy"})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, hodei_errors.ErrEvaluation)
	})

	t.Run("PrincipalResolutionFailure_FailsTrace", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		entities := enginemock.NewMockEntityResolver(ctrl)
		entities.EXPECT().ResolveEntity(gomock.Any(), testPrincipal).Return(nil, hodei_errors.ErrEntityNotFound)

		tracer := engine.NewDecisionTracer(evaluator.NewCedarEvaluator(), entities, 0)
		result, err := tracer.Trace(context.Background(), testRequest(), []string{permitAll})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, hodei_errors.ErrEntityNotFound)
	})

	t.Run("ReEvaluationFailure_ExcludesPolicy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		entities := enginemock.NewMockEntityResolver(ctrl)
		expectResolution(entities, nil)
		eval := enginemock.NewMockPolicyEvaluationPrimitive(ctrl)

		full := model.PolicySet{
			{ID: "policy0", Text: permitAll},
			{ID: "policy1", Text: forbidAdmins},
		}
		withoutFirst := model.PolicySet{{ID: "policy1", Text: forbidAdmins}}
		withoutSecond := model.PolicySet{{ID: "policy0", Text: permitAll}}

		eval.EXPECT().Evaluate(gomock.Any(), gomock.Any(), full, gomock.Any()).
			Return(&model.EvaluationResult{Decision: model.DecisionDeny}, nil)
		eval.EXPECT().Evaluate(gomock.Any(), gomock.Any(), withoutFirst, gomock.Any()).
			Return(nil, hodei_errors.ErrEvaluation)
		eval.EXPECT().Evaluate(gomock.Any(), gomock.Any(), withoutSecond, gomock.Any()).
			Return(&model.EvaluationResult{Decision: model.DecisionAllow}, nil)

		tracer := engine.NewDecisionTracer(eval, entities, 1)
		result, err := tracer.Trace(context.Background(), testRequest(), []string{permitAll, forbidAdmins})

		assert.NoError(t, err)
		assert.Equal(t, model.DecisionDeny, result.Decision)
		// The failed re-evaluation excludes policy0; policy1 still reports.
		assert.Equal(t, []string{"policy1"}, result.DeterminingPolicyIDs)
	})
}
