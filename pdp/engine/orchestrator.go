// pdp/engine/orchestrator.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	hodei_errors "github.com/Rubentxu/hodei-artifacts-sub005/errors"
	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"go.uber.org/zap"
)

// ScpPolicyMarker is the determining-policy entry carried by every deny that
// originates in the SCP layer. SCP responses never expose individual policy
// ids; the organization boundary is reported as a single opaque gate.
const ScpPolicyMarker = "SCP Policy"

// Reasons attached to engine responses.
const (
	ReasonDeniedByScp  = "denied by SCP"
	ReasonImplicitDeny = "no policies matched - least privilege"
	ReasonAllowedByIam = "allowed by identity policy"
	ReasonDeniedByIam  = "denied by identity policy"
)

// Config carries the orchestrator's tunables.
type Config struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

func DefaultConfig() Config {
	return Config{
		CacheEnabled: true,
		CacheTTL:     5 * time.Minute,
	}
}

// AuthorizationEngine runs the two-layer decision pipeline: organization
// SCPs first, identity policies second. An explicit SCP deny is terminal and
// the identity layer is never consulted in that case. A principal with no
// identity policies is denied implicitly. The engine never persists
// policies; every collaborator is a port.
//
// All collaborators except the cache are required. The cache may be nil,
// which disables decision caching regardless of Config.CacheEnabled.
type AuthorizationEngine struct {
	evaluator   PolicyEvaluationPrimitive
	iamPolicies IdentityPolicyProvider
	boundaries  OrganizationBoundaryProvider
	entities    EntityResolver
	cache       AuthorizationCache
	authzLogger AuthorizationLogger
	metrics     AuthorizationMetrics
	cfg         Config
}

func NewAuthorizationEngine(
	evaluator PolicyEvaluationPrimitive,
	iamPolicies IdentityPolicyProvider,
	boundaries OrganizationBoundaryProvider,
	entities EntityResolver,
	cache AuthorizationCache,
	authzLogger AuthorizationLogger,
	metrics AuthorizationMetrics,
	cfg Config,
) *AuthorizationEngine {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}
	return &AuthorizationEngine{
		evaluator:   evaluator,
		iamPolicies: iamPolicies,
		boundaries:  boundaries,
		entities:    entities,
		cache:       cache,
		authzLogger: authzLogger,
		metrics:     metrics,
		cfg:         cfg,
	}
}

// EvaluateAuthorization answers one authorization request. Cache failures
// are absorbed (read errors count as misses, write errors are logged);
// evaluation failures are surfaced to the caller and never converted into an
// allow or a deny.
func (e *AuthorizationEngine) EvaluateAuthorization(ctx context.Context, req model.AuthorizationRequest) (*model.AuthorizationResponse, error) {
	start := time.Now()

	if err := validateRequest(req); err != nil {
		e.authzLogger.LogError(ctx, req, err)
		e.metrics.RecordError(errorKind(err))
		return nil, err
	}

	cacheKey := model.DecisionCacheKey(req)
	if e.cacheActive() {
		if cached := e.lookupCache(ctx, cacheKey); cached != nil {
			e.metrics.RecordCacheHit(true)
			e.authzLogger.LogDecision(ctx, req, cached, time.Since(start))
			return cached, nil
		}
		e.metrics.RecordCacheHit(false)
	}

	response, err := e.evaluate(ctx, req)
	duration := time.Since(start)
	if err != nil {
		e.authzLogger.LogError(ctx, req, err)
		e.metrics.RecordError(errorKind(err))
		return nil, err
	}

	e.authzLogger.LogDecision(ctx, req, response, duration)
	e.metrics.RecordDecision(response.Decision, duration)

	if e.cacheActive() {
		if cacheErr := e.cache.Put(ctx, cacheKey, response, e.cfg.CacheTTL); cacheErr != nil {
			logger.Warn("Failed to cache authorization decision",
				zap.String("cacheKey", cacheKey),
				zap.Error(cacheErr))
		}
	}

	return response, nil
}

// evaluate runs the pipeline itself. The SCP layer must complete, and must
// not deny, before any identity policy is fetched. Entities are resolved at
// most once and only when a layer actually evaluates policies, so a
// principal with no policies at all is denied without touching the entity
// store.
func (e *AuthorizationEngine) evaluate(ctx context.Context, req model.AuthorizationRequest) (*model.AuthorizationResponse, error) {
	logger.Debug("Starting two-layer authorization evaluation",
		zap.String("principal", req.Principal.String()),
		zap.String("action", req.Action),
		zap.String("resource", req.Resource.String()))

	var entities []model.Entity

	scps, err := e.boundaries.GetEffectiveScps(ctx, req.Resource)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve organization boundary: %w", err)
	}

	if len(scps) > 0 {
		entities, err = e.resolveEntities(ctx, req)
		if err != nil {
			return nil, err
		}

		scpResult, err := e.evaluator.Evaluate(ctx, req, scps, entities)
		if err != nil {
			return nil, fmt.Errorf("scp layer evaluation failed: %w", err)
		}
		if scpResult.Decision == model.DecisionDeny {
			logger.Info("Access denied by SCP layer",
				zap.String("principal", req.Principal.String()),
				zap.String("resource", req.Resource.String()),
				zap.Int("scpCount", len(scps)))
			return &model.AuthorizationResponse{
				Decision:            model.DecisionDeny,
				DeterminingPolicies: []string{ScpPolicyMarker},
				Reason:              ReasonDeniedByScp,
				Explicit:            true,
			}, nil
		}
	}

	iamPolicies, err := e.iamPolicies.GetIdentityPoliciesFor(ctx, req.Principal)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch identity policies: %w", err)
	}

	if len(iamPolicies) == 0 {
		logger.Info("No identity policies for principal, denying by default",
			zap.String("principal", req.Principal.String()))
		return &model.AuthorizationResponse{
			Decision: model.DecisionDeny,
			Reason:   ReasonImplicitDeny,
			Explicit: false,
		}, nil
	}

	if entities == nil {
		entities, err = e.resolveEntities(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	iamResult, err := e.evaluator.Evaluate(ctx, req, iamPolicies, entities)
	if err != nil {
		return nil, fmt.Errorf("iam layer evaluation failed: %w", err)
	}

	reason := ReasonDeniedByIam
	if iamResult.Decision == model.DecisionAllow {
		reason = ReasonAllowedByIam
	}

	logger.Info("Authorization evaluation completed",
		zap.String("principal", req.Principal.String()),
		zap.String("decision", string(iamResult.Decision)),
		zap.Strings("determiningPolicies", iamResult.DeterminingPolicyIDs))

	return &model.AuthorizationResponse{
		Decision:            iamResult.Decision,
		DeterminingPolicies: iamResult.DeterminingPolicyIDs,
		Reason:              reason,
		Explicit:            true,
	}, nil
}

func (e *AuthorizationEngine) resolveEntities(ctx context.Context, req model.AuthorizationRequest) ([]model.Entity, error) {
	principal, err := e.entities.ResolveEntity(ctx, req.Principal)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve principal %s: %w", req.Principal.String(), err)
	}
	resource, err := e.entities.ResolveEntity(ctx, req.Resource)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve resource %s: %w", req.Resource.String(), err)
	}
	return []model.Entity{*principal, *resource}, nil
}

func (e *AuthorizationEngine) cacheActive() bool {
	return e.cfg.CacheEnabled && e.cache != nil
}

// lookupCache treats every cache failure as a miss.
func (e *AuthorizationEngine) lookupCache(ctx context.Context, key string) *model.AuthorizationResponse {
	cached, err := e.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("Decision cache read failed, treating as miss",
			zap.String("cacheKey", key),
			zap.Error(err))
		return nil
	}
	return cached
}

func validateRequest(req model.AuthorizationRequest) error {
	if req.Principal.IsZero() {
		return fmt.Errorf("principal is required: %w", hodei_errors.ErrInvalidRequest)
	}
	if req.Action == "" {
		return fmt.Errorf("action is required: %w", hodei_errors.ErrInvalidRequest)
	}
	if req.Resource.IsZero() {
		return fmt.Errorf("resource is required: %w", hodei_errors.ErrInvalidRequest)
	}
	return nil
}

// errorKind buckets an evaluation error for metrics by its sentinel.
func errorKind(err error) string {
	switch {
	case errors.Is(err, hodei_errors.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, hodei_errors.ErrBrokenHierarchy), errors.Is(err, hodei_errors.ErrScpPolicyNotFound):
		return "scope_resolution"
	case errors.Is(err, hodei_errors.ErrEntityResolution), errors.Is(err, hodei_errors.ErrEntityNotFound):
		return "entity_resolution"
	case errors.Is(err, hodei_errors.ErrPolicyRetrieval):
		return "policy_retrieval"
	case errors.Is(err, hodei_errors.ErrEvaluation):
		return "evaluation"
	default:
		return "internal"
	}
}
