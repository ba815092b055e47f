// util/validation_util_test.go
package util_test

import (
	"testing"

	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"github.com/Rubentxu/hodei-artifacts-sub005/util"
	"github.com/stretchr/testify/assert"
)

func validPolicy() model.Policy {
	return model.Policy{
		Name:   "allow-read",
		Kind:   model.PolicyKindIdentity,
		Effect: model.EffectPermit,
		Text:   `permit (principal, action, resource);`,
	}
}

func TestValidatePolicy(t *testing.T) {
	v := util.NewValidationUtil()

	t.Run("ValidPolicy_Accepted", func(t *testing.T) {
		assert.NoError(t, v.ValidatePolicy(validPolicy()))
	})

	t.Run("ValidScpForbid_Accepted", func(t *testing.T) {
		policy := validPolicy()
		policy.Kind = model.PolicyKindScp
		policy.Effect = model.EffectForbid
		policy.Text = `forbid (principal, action, resource);`

		assert.NoError(t, v.ValidatePolicy(policy))
	})

	t.Run("MissingName_Rejected", func(t *testing.T) {
		policy := validPolicy()
		policy.Name = ""

		assert.Error(t, v.ValidatePolicy(policy))
	})

	t.Run("UnknownKind_Rejected", func(t *testing.T) {
		policy := validPolicy()
		policy.Kind = "resource"

		assert.Error(t, v.ValidatePolicy(policy))
	})

	t.Run("UnknownEffect_Rejected", func(t *testing.T) {
		policy := validPolicy()
		policy.Effect = "allow"

		assert.Error(t, v.ValidatePolicy(policy))
	})

	t.Run("EmptyText_Rejected", func(t *testing.T) {
		policy := validPolicy()
		policy.Text = ""

		assert.Error(t, v.ValidatePolicy(policy))
	})

	t.Run("UnparsableText_Rejected", func(t *testing.T) {
		policy := validPolicy()
		policy.Text = "this is not a policy"

		assert.Error(t, v.ValidatePolicy(policy))
	})

	t.Run("EffectTextMismatch_Rejected", func(t *testing.T) {
		policy := validPolicy()
		policy.Effect = model.EffectForbid

		err := v.ValidatePolicy(policy)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not match")
	})
}

func TestValidatePoliciesForAnalysis(t *testing.T) {
	v := util.NewValidationUtil()

	t.Run("ValidCorpus_Accepted", func(t *testing.T) {
		corpus := []model.PolicyForAnalysis{
			{ID: "p1", Content: `permit (principal, action, resource);`},
			{ID: "p2", Content: `forbid (principal, action, resource);`},
		}

		assert.NoError(t, v.ValidatePoliciesForAnalysis(corpus))
	})

	t.Run("MissingID_Rejected", func(t *testing.T) {
		corpus := []model.PolicyForAnalysis{{Content: `permit (principal, action, resource);`}}

		assert.Error(t, v.ValidatePoliciesForAnalysis(corpus))
	})

	t.Run("DuplicateID_Rejected", func(t *testing.T) {
		corpus := []model.PolicyForAnalysis{
			{ID: "p1", Content: `permit (principal, action, resource);`},
			{ID: "p1", Content: `forbid (principal, action, resource);`},
		}

		assert.Error(t, v.ValidatePoliciesForAnalysis(corpus))
	})

	t.Run("EmptyContent_Rejected", func(t *testing.T) {
		corpus := []model.PolicyForAnalysis{{ID: "p1"}}

		assert.Error(t, v.ValidatePoliciesForAnalysis(corpus))
	})
}
