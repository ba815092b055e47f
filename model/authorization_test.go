// model/authorization_test.go
package model_test

import (
	"strings"
	"testing"

	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"github.com/stretchr/testify/assert"
)

func TestDecisionCacheKey(t *testing.T) {
	alice := model.NewHrn("hodei", "iam", "acct-1", "user", "alice")
	docs := model.NewHrn("hodei", "artifact", "acct-1", "repository", "docs")

	read := model.AuthorizationRequest{Principal: alice, Action: "read", Resource: docs}

	t.Run("Key_CarriesTriple", func(t *testing.T) {
		key := model.DecisionCacheKey(read)

		assert.True(t, strings.HasPrefix(key, model.DecisionCachePrefix))
		assert.Equal(t, "auth:hrn:hodei:iam::acct-1:user/alice:read:hrn:hodei:artifact::acct-1:repository/docs", key)
	})

	t.Run("Context_NotPartOfKey", func(t *testing.T) {
		withContext := read
		withContext.Context = map[string]interface{}{"mfa": true}

		assert.Equal(t, model.DecisionCacheKey(read), model.DecisionCacheKey(withContext))
	})

	t.Run("DifferentAction_DifferentKey", func(t *testing.T) {
		write := read
		write.Action = "write"

		assert.NotEqual(t, model.DecisionCacheKey(read), model.DecisionCacheKey(write))
	})
}
