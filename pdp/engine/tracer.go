// pdp/engine/tracer.go
package engine

import (
	"context"
	"fmt"
	"time"

	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultTraceConcurrency = 10

// TraceResult reports the baseline decision for a traced request and the ids
// of the policies that caused it.
type TraceResult struct {
	Decision             model.Decision `json:"decision"`
	DeterminingPolicyIDs []string       `json:"determining_policy_ids"`
}

// DecisionTracer explains a decision by re-evaluation: it computes the
// baseline decision over the full policy set, then re-evaluates N reduced
// sets, each with exactly one policy removed. A policy is determining iff
// removing it alone flips the decision.
//
// This is an O(N) approximation, not a minimal-subset search: two policies
// that flip the decision only when removed together are not detected.
type DecisionTracer struct {
	evaluator     PolicyEvaluationPrimitive
	entities      EntityResolver
	maxConcurrent int
}

func NewDecisionTracer(evaluator PolicyEvaluationPrimitive, entities EntityResolver, maxConcurrent int) *DecisionTracer {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultTraceConcurrency
	}
	return &DecisionTracer{
		evaluator:     evaluator,
		entities:      entities,
		maxConcurrent: maxConcurrent,
	}
}

// Trace assigns each policy text a positional id (policy0..policyN-1, the
// same ids the evaluation primitive reports) and returns the ids whose
// removal flips the baseline decision. The N reduced evaluations run
// concurrently; a reduced evaluation that fails is logged and its policy
// excluded from the determining set rather than failing the trace.
func (t *DecisionTracer) Trace(ctx context.Context, req model.AuthorizationRequest, policyTexts []string) (*TraceResult, error) {
	start := time.Now()

	principal, err := t.entities.ResolveEntity(ctx, req.Principal)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve principal %s: %w", req.Principal.String(), err)
	}
	resource, err := t.entities.ResolveEntity(ctx, req.Resource)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve resource %s: %w", req.Resource.String(), err)
	}
	entities := []model.Entity{*principal, *resource}

	full := make(model.PolicySet, len(policyTexts))
	for i, text := range policyTexts {
		full[i] = model.Policy{
			ID:   fmt.Sprintf("policy%d", i),
			Text: text,
		}
	}

	baseline, err := t.evaluator.Evaluate(ctx, req, full, entities)
	if err != nil {
		return nil, fmt.Errorf("baseline evaluation failed: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	flipped := make([]bool, len(full))

	// Limit concurrency to avoid overwhelming the evaluator
	semaphore := make(chan struct{}, t.maxConcurrent)

	for i := range full {
		i := i
		g.Go(func() error {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			reduced := full.WithoutIndex(i)
			result, err := t.evaluator.Evaluate(gctx, req, reduced, entities)
			if err != nil {
				logger.Warn("Trace re-evaluation failed, excluding policy",
					zap.String("policyID", full[i].ID),
					zap.Error(err))
				return nil
			}
			flipped[i] = result.Decision != baseline.Decision
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("trace join failed: %w", err)
	}

	determining := make([]string, 0, len(full))
	for i, f := range flipped {
		if f {
			determining = append(determining, full[i].ID)
		}
	}

	logger.Info("Decision trace completed",
		zap.String("decision", string(baseline.Decision)),
		zap.Int("policyCount", len(full)),
		zap.Strings("determiningPolicies", determining),
		zap.Duration("duration", time.Since(start)))

	return &TraceResult{
		Decision:             baseline.Decision,
		DeterminingPolicyIDs: determining,
	}, nil
}
