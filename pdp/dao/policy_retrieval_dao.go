// pdp/dao/policy_retrieval_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	hodei_errors "github.com/Rubentxu/hodei-artifacts-sub005/errors"
	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	hodei_neo4j "github.com/Rubentxu/hodei-artifacts-sub005/model/neo4j"
	helper_util "github.com/Rubentxu/hodei-artifacts-sub005/util/helper"
)

type PolicyRetrievalDAO struct {
	Driver neo4j.Driver
}

func NewPolicyRetrievalDAO(driver neo4j.Driver) *PolicyRetrievalDAO {
	return &PolicyRetrievalDAO{Driver: driver}
}

// GetIdentityPoliciesFor returns every active identity policy attached to the
// principal, either directly or through one of its groups, ordered by
// creation time so evaluation input is deterministic.
func (dao *PolicyRetrievalDAO) GetIdentityPoliciesFor(ctx context.Context, principal model.Hrn) (model.PolicySet, error) {
	start := time.Now()
	logger.Info("Retrieving identity policies for principal",
		zap.String("principalHrn", principal.String()))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + hodei_neo4j.LabelIdentityPolicy + `)
        WHERE p.active = true
        AND (
            (:` + hodei_neo4j.LabelPrincipal + ` {hrn: $principalHrn})-[:` + hodei_neo4j.RelHasPolicy + `]->(p) OR
            (:` + hodei_neo4j.LabelPrincipal + ` {hrn: $principalHrn})-[:` + hodei_neo4j.RelMemberOf + `]->(:` + hodei_neo4j.LabelGroup + `)-[:` + hodei_neo4j.RelHasPolicy + `]->(p)
        )
        RETURN DISTINCT p
        ORDER BY p.createdAt ASC
        `

		params := map[string]interface{}{
			"principalHrn": principal.String(),
		}

		result, err := tx.Run(query, params)
		if err != nil {
			return nil, err
		}

		var policies model.PolicySet
		for result.Next() {
			record := result.Record()
			policyNode := record.Values[0].(neo4j.Node)
			policy, err := mapNodeToPolicy(policyNode)
			if err != nil {
				return nil, err
			}
			policies = append(policies, *policy)
		}

		return policies, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to retrieve identity policies",
			zap.Error(err),
			zap.String("principalHrn", principal.String()),
			zap.Duration("duration", duration))
		return nil, hodei_errors.ErrPolicyRetrieval
	}

	policies := result.(model.PolicySet)
	logger.Info("Retrieved identity policies successfully",
		zap.String("principalHrn", principal.String()),
		zap.Int("policyCount", len(policies)),
		zap.Duration("duration", duration))

	return policies, nil
}

// Helper function to map Neo4j Node to Policy struct
func mapNodeToPolicy(node neo4j.Node) (*model.Policy, error) {
	props := node.Props
	policy := &model.Policy{}

	// ID
	if id, ok := props["id"].(string); ok {
		policy.ID = id
	} else {
		return nil, fmt.Errorf("failed to assert type for policy ID: %v", props["id"])
	}

	// Name
	if name, ok := props["name"].(string); ok {
		policy.Name = name
	} else {
		return nil, fmt.Errorf("failed to assert type for policy name: %v", props["name"])
	}

	// Description (optional)
	if description, ok := props["description"].(string); ok {
		policy.Description = description
	}

	// Kind
	if kind, ok := props["kind"].(string); ok {
		policy.Kind = model.PolicyKind(kind)
		if policy.Kind != model.PolicyKindIdentity && policy.Kind != model.PolicyKindScp {
			return nil, fmt.Errorf("invalid policy kind for policy %s: %v", policy.ID, kind)
		}
	} else {
		return nil, fmt.Errorf("failed to assert type for policy kind: %v", props["kind"])
	}

	// Effect
	if effect, ok := props["effect"].(string); ok {
		policy.Effect = model.Effect(effect)
		if policy.Effect != model.EffectPermit && policy.Effect != model.EffectForbid {
			return nil, fmt.Errorf("invalid policy effect for policy %s: %v", policy.ID, effect)
		}
	} else {
		return nil, fmt.Errorf("failed to assert type for policy effect: %v", props["effect"])
	}

	// Text
	if text, ok := props["text"].(string); ok {
		policy.Text = text
	} else {
		return nil, fmt.Errorf("failed to assert type for policy text: %v", props["text"])
	}

	// Version
	if version, ok := props["version"].(int64); ok {
		policy.Version = int(version)
	} else {
		return nil, fmt.Errorf("failed to assert type for policy version: %v", props["version"])
	}

	// Active
	if active, ok := props["active"].(bool); ok {
		policy.Active = active
	} else {
		return nil, fmt.Errorf("failed to assert type for policy active flag: %v", props["active"])
	}

	// CreatedAt
	if createdAt, ok := props["createdAt"].(string); ok {
		parsedCreatedAt, err := helper_util.ParseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse createdAt for policy %s: %v", policy.ID, err)
		}
		policy.CreatedAt = parsedCreatedAt
	} else {
		return nil, fmt.Errorf("failed to assert type for policy createdAt: %v", props["createdAt"])
	}

	// UpdatedAt
	if updatedAt, ok := props["updatedAt"].(string); ok {
		parsedUpdatedAt, err := helper_util.ParseTime(updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updatedAt for policy %s: %v", policy.ID, err)
		}
		policy.UpdatedAt = parsedUpdatedAt
	} else {
		return nil, fmt.Errorf("failed to assert type for policy updatedAt: %v", props["updatedAt"])
	}

	return policy, nil
}
