// pdp/evaluator/evaluator.go
package evaluator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cedar-policy/cedar-go"

	hodei_errors "github.com/Rubentxu/hodei-artifacts-sub005/errors"
	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"go.uber.org/zap"
)

// CedarEvaluator is the policy evaluation primitive backed by the Cedar
// engine. It is stateless: every call parses the supplied policy set,
// assembles the entity graph and asks Cedar for a decision. Policy ids are
// preserved through evaluation so diagnostics point back at the caller's
// policies.
type CedarEvaluator struct{}

func NewCedarEvaluator() *CedarEvaluator {
	return &CedarEvaluator{}
}

// Evaluate runs one Cedar authorization over the given policies and
// entities. An unparsable policy fails the whole evaluation; per-policy
// runtime errors (missing attributes and the like) are collected into the
// result instead, since Cedar still produces a sound decision for them.
func (ce *CedarEvaluator) Evaluate(ctx context.Context, req model.AuthorizationRequest, policies model.PolicySet, entities []model.Entity) (*model.EvaluationResult, error) {
	start := time.Now()

	ps, err := buildPolicySet(policies)
	if err != nil {
		return nil, err
	}

	entityMap := buildEntityMap(entities)
	cedarReq := buildCedarRequest(req)

	decision, diagnostic := cedar.Authorize(ps, entityMap, cedarReq)

	result := &model.EvaluationResult{Decision: model.DecisionDeny}
	if decision == cedar.Allow {
		result.Decision = model.DecisionAllow
	}

	for _, reason := range diagnostic.Reasons {
		result.DeterminingPolicyIDs = append(result.DeterminingPolicyIDs, string(reason.PolicyID))
	}
	sort.Strings(result.DeterminingPolicyIDs)

	for _, evalErr := range diagnostic.Errors {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", evalErr.PolicyID, evalErr.Message))
		logger.Warn("Policy evaluation error",
			zap.String("policyID", string(evalErr.PolicyID)),
			zap.String("message", evalErr.Message))
	}

	logger.Debug("Cedar evaluation completed",
		zap.String("decision", string(result.Decision)),
		zap.Int("policyCount", len(policies)),
		zap.Strings("determiningPolicies", result.DeterminingPolicyIDs),
		zap.Duration("duration", time.Since(start)))

	return result, nil
}

// buildPolicySet parses each policy text under its own id. Policies without
// an id get a positional one so diagnostics stay addressable.
func buildPolicySet(policies model.PolicySet) (*cedar.PolicySet, error) {
	ps := cedar.NewPolicySet()
	for i, p := range policies {
		id := p.ID
		if id == "" {
			id = fmt.Sprintf("policy%d", i)
		}
		var policy cedar.Policy
		if err := policy.UnmarshalCedar([]byte(p.Text)); err != nil {
			return nil, fmt.Errorf("%w: failed to parse policy %s: %v", hodei_errors.ErrEvaluation, id, err)
		}
		ps.Add(cedar.PolicyID(id), &policy)
	}
	return ps, nil
}
