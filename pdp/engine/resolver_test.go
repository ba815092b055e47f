// pdp/engine/resolver_test.go
package engine_test

import (
	"context"
	"testing"

	hodei_errors "github.com/Rubentxu/hodei-artifacts-sub005/errors"
	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"github.com/Rubentxu/hodei-artifacts-sub005/pdp/engine"
	"github.com/Rubentxu/hodei-artifacts-sub005/test/enginemock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func scpPolicy(id string) *model.Policy {
	return &model.Policy{
		ID:     id,
		Kind:   model.PolicyKindScp,
		Effect: model.EffectForbid,
		Text:   `forbid (principal, action, resource);`,
		Active: true,
	}
}

func TestScopeResolver(t *testing.T) {
	logger.InitLogger("")
	defer logger.Sync()

	resource := model.NewHrn("hodei", "artifact", "acct-1", "repository", "docs")

	t.Run("AccountAtRoot_CollectsItsScps", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orgs := enginemock.NewMockOrganizationStore(ctrl)
		scps := enginemock.NewMockScpStore(ctrl)
		resolver := engine.NewScopeResolver(orgs, scps)

		orgs.EXPECT().GetNode(gomock.Any(), "acct-1").Return(&model.OrganizationNode{
			ID:             "acct-1",
			Type:           model.NodeTypeAccount,
			AttachedScpIDs: []string{"scp-b", "scp-a"},
		}, nil)
		scps.EXPECT().GetScpPolicy(gomock.Any(), "scp-a").Return(scpPolicy("scp-a"), nil)
		scps.EXPECT().GetScpPolicy(gomock.Any(), "scp-b").Return(scpPolicy("scp-b"), nil)

		policies, err := resolver.GetEffectiveScps(context.Background(), resource)

		assert.NoError(t, err)
		// Attachment order does not matter; the result is sorted by id.
		assert.Equal(t, []string{"scp-a", "scp-b"}, policies.IDs())
	})

	t.Run("AncestorChain_CollectsAndDedupes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orgs := enginemock.NewMockOrganizationStore(ctrl)
		scps := enginemock.NewMockScpStore(ctrl)
		resolver := engine.NewScopeResolver(orgs, scps)

		orgs.EXPECT().GetNode(gomock.Any(), "acct-1").Return(&model.OrganizationNode{
			ID:             "acct-1",
			Type:           model.NodeTypeAccount,
			ParentID:       "ou-eng",
			AttachedScpIDs: []string{"scp-a"},
		}, nil)
		orgs.EXPECT().GetNode(gomock.Any(), "ou-eng").Return(&model.OrganizationNode{
			ID:             "ou-eng",
			Type:           model.NodeTypeOrganizationalUnit,
			ParentID:       "root",
			AttachedScpIDs: []string{"scp-b", "scp-a"},
		}, nil)
		// Legacy root nodes are their own parent.
		orgs.EXPECT().GetNode(gomock.Any(), "root").Return(&model.OrganizationNode{
			ID:             "root",
			Type:           model.NodeTypeOrganizationalUnit,
			ParentID:       "root",
			AttachedScpIDs: []string{"scp-root"},
		}, nil)
		scps.EXPECT().GetScpPolicy(gomock.Any(), "scp-a").Return(scpPolicy("scp-a"), nil)
		scps.EXPECT().GetScpPolicy(gomock.Any(), "scp-b").Return(scpPolicy("scp-b"), nil)
		scps.EXPECT().GetScpPolicy(gomock.Any(), "scp-root").Return(scpPolicy("scp-root"), nil)

		policies, err := resolver.GetEffectiveScps(context.Background(), resource)

		assert.NoError(t, err)
		assert.Equal(t, []string{"scp-a", "scp-b", "scp-root"}, policies.IDs())
	})

	t.Run("NoAttachedScps_EmptySet", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orgs := enginemock.NewMockOrganizationStore(ctrl)
		scps := enginemock.NewMockScpStore(ctrl)
		resolver := engine.NewScopeResolver(orgs, scps)

		orgs.EXPECT().GetNode(gomock.Any(), "acct-1").Return(&model.OrganizationNode{
			ID:   "acct-1",
			Type: model.NodeTypeAccount,
		}, nil)
		scps.EXPECT().GetScpPolicy(gomock.Any(), gomock.Any()).Times(0)

		policies, err := resolver.GetEffectiveScps(context.Background(), resource)

		assert.NoError(t, err)
		assert.Empty(t, policies)
	})

	t.Run("MissingAccount_BrokenHierarchy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orgs := enginemock.NewMockOrganizationStore(ctrl)
		scps := enginemock.NewMockScpStore(ctrl)
		resolver := engine.NewScopeResolver(orgs, scps)

		orgs.EXPECT().GetNode(gomock.Any(), "acct-1").Return(nil, hodei_errors.ErrOrganizationNotFound)

		policies, err := resolver.GetEffectiveScps(context.Background(), resource)

		assert.Nil(t, policies)
		assert.ErrorIs(t, err, hodei_errors.ErrBrokenHierarchy)
	})

	t.Run("MissingAncestor_BrokenHierarchy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orgs := enginemock.NewMockOrganizationStore(ctrl)
		scps := enginemock.NewMockScpStore(ctrl)
		resolver := engine.NewScopeResolver(orgs, scps)

		orgs.EXPECT().GetNode(gomock.Any(), "acct-1").Return(&model.OrganizationNode{
			ID:       "acct-1",
			Type:     model.NodeTypeAccount,
			ParentID: "ou-gone",
		}, nil)
		orgs.EXPECT().GetNode(gomock.Any(), "ou-gone").Return(nil, hodei_errors.ErrOrganizationNotFound)

		_, err := resolver.GetEffectiveScps(context.Background(), resource)

		assert.ErrorIs(t, err, hodei_errors.ErrBrokenHierarchy)
	})

	t.Run("DanglingScpAttachment_Fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orgs := enginemock.NewMockOrganizationStore(ctrl)
		scps := enginemock.NewMockScpStore(ctrl)
		resolver := engine.NewScopeResolver(orgs, scps)

		orgs.EXPECT().GetNode(gomock.Any(), "acct-1").Return(&model.OrganizationNode{
			ID:             "acct-1",
			Type:           model.NodeTypeAccount,
			AttachedScpIDs: []string{"scp-ghost"},
		}, nil)
		scps.EXPECT().GetScpPolicy(gomock.Any(), "scp-ghost").Return(nil, hodei_errors.ErrPolicyNotFound)

		policies, err := resolver.GetEffectiveScps(context.Background(), resource)

		assert.Nil(t, policies)
		assert.ErrorIs(t, err, hodei_errors.ErrScpPolicyNotFound)
	})

	t.Run("ParentCycle_Detected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orgs := enginemock.NewMockOrganizationStore(ctrl)
		scps := enginemock.NewMockScpStore(ctrl)
		resolver := engine.NewScopeResolver(orgs, scps)

		orgs.EXPECT().GetNode(gomock.Any(), "acct-1").Return(&model.OrganizationNode{
			ID:       "acct-1",
			Type:     model.NodeTypeAccount,
			ParentID: "ou-a",
		}, nil).Times(1)
		orgs.EXPECT().GetNode(gomock.Any(), "ou-a").Return(&model.OrganizationNode{
			ID:       "ou-a",
			Type:     model.NodeTypeOrganizationalUnit,
			ParentID: "acct-1",
		}, nil).Times(1)

		_, err := resolver.GetEffectiveScps(context.Background(), resource)

		assert.ErrorIs(t, err, hodei_errors.ErrBrokenHierarchy)
	})

	t.Run("ResourceWithoutAccount_Rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orgs := enginemock.NewMockOrganizationStore(ctrl)
		scps := enginemock.NewMockScpStore(ctrl)
		resolver := engine.NewScopeResolver(orgs, scps)

		unowned := model.Hrn{Partition: "hodei", Service: "artifact", ResourceType: "repository", ResourceID: "docs"}
		_, err := resolver.GetEffectiveScps(context.Background(), unowned)

		assert.ErrorIs(t, err, hodei_errors.ErrBrokenHierarchy)
	})
}
