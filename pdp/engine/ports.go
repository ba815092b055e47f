// pdp/engine/ports.go
package engine

import (
	"context"
	"time"

	"github.com/Rubentxu/hodei-artifacts-sub005/model"
)

//go:generate mockgen -destination=../../test/enginemock/ports.go -package=enginemock -source=ports.go

// PolicyEvaluationPrimitive evaluates one policy set against one request and
// reports the decision plus the ids of policies that fired. The policy
// language itself is opaque to the engine.
type PolicyEvaluationPrimitive interface {
	Evaluate(ctx context.Context, req model.AuthorizationRequest, policies model.PolicySet, entities []model.Entity) (*model.EvaluationResult, error)
}

// IdentityPolicyProvider supplies the IAM policies attached to a principal.
type IdentityPolicyProvider interface {
	GetIdentityPoliciesFor(ctx context.Context, principal model.Hrn) (model.PolicySet, error)
}

// OrganizationBoundaryProvider supplies the effective SCPs for a resource.
// ScopeResolver is the reference implementation.
type OrganizationBoundaryProvider interface {
	GetEffectiveScps(ctx context.Context, resource model.Hrn) (model.PolicySet, error)
}

// EntityResolver fetches attributes and parent relationships for one hrn.
type EntityResolver interface {
	ResolveEntity(ctx context.Context, hrn model.Hrn) (*model.Entity, error)
}

// AuthorizationCache stores finished decisions. Get returns (nil, nil) on a
// miss; both operations failing must never fail a request.
type AuthorizationCache interface {
	Get(ctx context.Context, key string) (*model.AuthorizationResponse, error)
	Put(ctx context.Context, key string, response *model.AuthorizationResponse, ttl time.Duration) error
}

// AuthorizationLogger is the decision observability sink. Fire-and-forget:
// implementations must absorb their own failures.
type AuthorizationLogger interface {
	LogDecision(ctx context.Context, req model.AuthorizationRequest, resp *model.AuthorizationResponse, duration time.Duration)
	LogError(ctx context.Context, req model.AuthorizationRequest, err error)
}

// AuthorizationMetrics is the counters sink. Fire-and-forget.
type AuthorizationMetrics interface {
	RecordDecision(decision model.Decision, duration time.Duration)
	RecordCacheHit(hit bool)
	RecordError(kind string)
}

// OrganizationStore reads nodes of the organization tree.
type OrganizationStore interface {
	GetNode(ctx context.Context, id string) (*model.OrganizationNode, error)
}

// ScpStore resolves attached SCP ids to policies.
type ScpStore interface {
	GetScpPolicy(ctx context.Context, id string) (*model.Policy, error)
}
