// pdp/engine/resolver.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	hodei_errors "github.com/Rubentxu/hodei-artifacts-sub005/errors"
	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"go.uber.org/zap"
)

// ScopeResolver computes the effective SCP set for a resource by walking the
// organization tree from the owning account up to the root and collecting
// every attached SCP along the way. Any gap in the walk is an error: a
// missing node, a missing attached policy or a parent loop all abort the
// resolution so that the caller cannot evaluate against a partial boundary.
type ScopeResolver struct {
	orgs OrganizationStore
	scps ScpStore
}

func NewScopeResolver(orgs OrganizationStore, scps ScpStore) *ScopeResolver {
	return &ScopeResolver{orgs: orgs, scps: scps}
}

func (sr *ScopeResolver) GetEffectiveScps(ctx context.Context, resource model.Hrn) (model.PolicySet, error) {
	start := time.Now()

	if resource.AccountID == "" {
		return nil, fmt.Errorf("resource %s names no owning account: %w", resource.String(), hodei_errors.ErrBrokenHierarchy)
	}

	scpIDs, err := sr.collectScpIDs(ctx, resource.AccountID)
	if err != nil {
		return nil, err
	}

	policies := make(model.PolicySet, 0, len(scpIDs))
	for _, id := range scpIDs {
		policy, err := sr.scps.GetScpPolicy(ctx, id)
		if err != nil {
			if errors.Is(err, hodei_errors.ErrPolicyNotFound) || errors.Is(err, hodei_errors.ErrScpPolicyNotFound) {
				return nil, fmt.Errorf("scp %s is attached but cannot be resolved: %w", id, hodei_errors.ErrScpPolicyNotFound)
			}
			return nil, fmt.Errorf("failed to resolve scp %s: %w", id, err)
		}
		policies = append(policies, *policy)
	}

	logger.Info("Resolved effective SCPs",
		zap.String("accountId", resource.AccountID),
		zap.Int("scpCount", len(policies)),
		zap.Duration("duration", time.Since(start)))

	return policies, nil
}

// collectScpIDs walks from the account to the root of the organization tree
// and returns the attached SCP ids, deduplicated and in lexical order so the
// resolution result is deterministic.
func (sr *ScopeResolver) collectScpIDs(ctx context.Context, accountID string) ([]string, error) {
	seen := make(map[string]struct{})
	visited := make(map[string]struct{})

	currentID := accountID
	for {
		if _, ok := visited[currentID]; ok {
			return nil, fmt.Errorf("organization node %s forms a parent cycle: %w", currentID, hodei_errors.ErrBrokenHierarchy)
		}
		visited[currentID] = struct{}{}

		node, err := sr.orgs.GetNode(ctx, currentID)
		if err != nil {
			if errors.Is(err, hodei_errors.ErrOrganizationNotFound) {
				return nil, fmt.Errorf("organization node %s is missing from the hierarchy: %w", currentID, hodei_errors.ErrBrokenHierarchy)
			}
			return nil, fmt.Errorf("failed to load organization node %s: %w", currentID, err)
		}

		logger.Debug("Visited organization node",
			zap.String("nodeId", node.ID),
			zap.String("nodeType", string(node.Type)),
			zap.Int("attachedScps", len(node.AttachedScpIDs)))

		for _, id := range node.AttachedScpIDs {
			seen[id] = struct{}{}
		}

		if node.IsRoot() {
			break
		}
		currentID = node.ParentID
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
