// model/authorization.go
package model

import "fmt"

// Decision is the outcome of an authorization evaluation.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionDeny  Decision = "deny"
)

// AuthorizationRequest asks whether a principal may perform an action on a
// resource. Immutable; constructed per call.
type AuthorizationRequest struct {
	Principal Hrn                    `json:"principal"`
	Action    string                 `json:"action"`
	Resource  Hrn                    `json:"resource"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// AuthorizationResponse is the engine's answer. Explicit=false marks a
// decision reached by default (no policy matched), never by a policy match;
// such a response carries no determining policies.
type AuthorizationResponse struct {
	Decision            Decision `json:"decision"`
	DeterminingPolicies []string `json:"determining_policies,omitempty"`
	Reason              string   `json:"reason"`
	Explicit            bool     `json:"explicit"`
}

// Entity is the resolved attribute and hierarchy data for one hrn, fed to the
// evaluation primitive.
type Entity struct {
	Hrn        Hrn                    `json:"hrn"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
	Parents    []Hrn                  `json:"parents,omitempty"`
}

// EvaluationResult is what the evaluation primitive reports for one policy
// set: the decision, the ids of policies that fired, and any non-fatal
// per-policy evaluation errors.
type EvaluationResult struct {
	Decision             Decision `json:"decision"`
	DeterminingPolicyIDs []string `json:"determining_policy_ids,omitempty"`
	Errors               []string `json:"errors,omitempty"`
}

// DecisionCachePrefix namespaces cached decisions so they can be swept
// without touching unrelated keys.
const DecisionCachePrefix = "auth:"

// DecisionCacheKey derives the cache key for a request. Request context is
// not part of the key: cached entries answer the principal/action/resource
// triple and are invalidated wholesale on policy change.
func DecisionCacheKey(req AuthorizationRequest) string {
	return fmt.Sprintf("%s%s:%s:%s", DecisionCachePrefix, req.Principal.String(), req.Action, req.Resource.String())
}
