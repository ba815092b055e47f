// util/validation_util.go

package util

import (
	"fmt"

	cedar "github.com/cedar-policy/cedar-go"

	"github.com/Rubentxu/hodei-artifacts-sub005/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidatePolicy(policy model.Policy) error {
	if policy.Name == "" {
		return fmt.Errorf("policy name cannot be empty")
	}
	if policy.Kind != model.PolicyKindIdentity && policy.Kind != model.PolicyKindScp {
		return fmt.Errorf("policy kind must be either 'identity' or 'scp'")
	}
	if policy.Effect != model.EffectPermit && policy.Effect != model.EffectForbid {
		return fmt.Errorf("policy effect must be either 'permit' or 'forbid'")
	}
	if policy.Text == "" {
		return fmt.Errorf("policy text cannot be empty")
	}

	var parsed cedar.Policy
	if err := parsed.UnmarshalCedar([]byte(policy.Text)); err != nil {
		return fmt.Errorf("policy text is not valid: %v", err)
	}

	if model.TextEffect(policy.Text) != policy.Effect {
		return fmt.Errorf("policy effect %q does not match the policy text", policy.Effect)
	}

	return nil
}

// ValidatePoliciesForAnalysis checks an analyzer input corpus: every entry
// needs a unique id and non-empty content. Corpus size limits are enforced
// by the analyzer itself.
func (v *ValidationUtil) ValidatePoliciesForAnalysis(policies []model.PolicyForAnalysis) error {
	seen := make(map[string]struct{}, len(policies))
	for i, policy := range policies {
		if policy.ID == "" {
			return fmt.Errorf("policy at index %d has no id", i)
		}
		if _, dup := seen[policy.ID]; dup {
			return fmt.Errorf("duplicate policy id %q", policy.ID)
		}
		seen[policy.ID] = struct{}{}
		if policy.Content == "" {
			return fmt.Errorf("policy %s has no content", policy.ID)
		}
	}
	return nil
}
