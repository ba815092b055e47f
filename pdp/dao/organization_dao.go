// pdp/dao/organization_dao.go
package dao

import (
	"context"
	"errors"
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

// OrganizationDAO reads the organization tree and the SCP policies attached
// to it. It backs both the organization store and the SCP store ports.
type OrganizationDAO struct {
	Driver neo4j.Driver
}

func NewOrganizationDAO(driver neo4j.Driver) *OrganizationDAO {
	return &OrganizationDAO{Driver: driver}
}

// GetNode fetches one organization node by id, along with its parent and the
// ids of the SCP policies attached to it.
func (dao *OrganizationDAO) GetNode(ctx context.Context, id string) (*model.OrganizationNode, error) {
	start := time.Now()
	logger.Debug("Loading organization node", zap.String("nodeID", id))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (n {id: $nodeID})
        WHERE n:` + hodei_neo4j.LabelOrganizationalUnit + ` OR n:` + hodei_neo4j.LabelAccount + `
        OPTIONAL MATCH (n)-[:` + hodei_neo4j.RelBelongsTo + `]->(parent)
        OPTIONAL MATCH (n)-[:` + hodei_neo4j.RelHasScp + `]->(scp:` + hodei_neo4j.LabelScpPolicy + `)
        RETURN n, labels(n) AS nodeLabels, parent.id AS parentID, collect(DISTINCT scp.id) AS scpIDs
        `

		params := map[string]interface{}{
			"nodeID": id,
		}

		result, err := tx.Run(query, params)
		if err != nil {
			return nil, err
		}

		if !result.Next() {
			return nil, hodei_errors.ErrOrganizationNotFound
		}

		record := result.Record()
		node := record.Values[0].(neo4j.Node)
		nodeLabels, _ := record.Values[1].([]interface{})
		parentID := record.Values[2]
		scpIDs, _ := record.Values[3].([]interface{})

		return mapToOrganizationNode(node, nodeLabels, parentID, scpIDs)
	})

	duration := time.Since(start)
	if err != nil {
		if errors.Is(err, hodei_errors.ErrOrganizationNotFound) {
			logger.Debug("Organization node not found",
				zap.String("nodeID", id),
				zap.Duration("duration", duration))
			return nil, err
		}
		logger.Error("Failed to load organization node",
			zap.Error(err),
			zap.String("nodeID", id),
			zap.Duration("duration", duration))
		return nil, hodei_errors.ErrDatabaseOperation
	}

	return result.(*model.OrganizationNode), nil
}

// GetScpPolicy fetches one SCP policy by id.
func (dao *OrganizationDAO) GetScpPolicy(ctx context.Context, id string) (*model.Policy, error) {
	start := time.Now()
	logger.Debug("Loading SCP policy", zap.String("policyID", id))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + hodei_neo4j.LabelScpPolicy + ` {id: $policyID})
        RETURN p
        `

		params := map[string]interface{}{
			"policyID": id,
		}

		result, err := tx.Run(query, params)
		if err != nil {
			return nil, err
		}

		if !result.Next() {
			return nil, hodei_errors.ErrPolicyNotFound
		}

		record := result.Record()
		policyNode := record.Values[0].(neo4j.Node)
		return mapNodeToPolicy(policyNode)
	})

	duration := time.Since(start)
	if err != nil {
		if errors.Is(err, hodei_errors.ErrPolicyNotFound) {
			logger.Debug("SCP policy not found",
				zap.String("policyID", id),
				zap.Duration("duration", duration))
			return nil, err
		}
		logger.Error("Failed to load SCP policy",
			zap.Error(err),
			zap.String("policyID", id),
			zap.Duration("duration", duration))
		return nil, hodei_errors.ErrDatabaseOperation
	}

	return result.(*model.Policy), nil
}

// Helper function to map a Neo4j record to an OrganizationNode struct
func mapToOrganizationNode(node neo4j.Node, nodeLabels []interface{}, parentID interface{}, scpIDs []interface{}) (*model.OrganizationNode, error) {
	props := node.Props
	orgNode := &model.OrganizationNode{}

	// ID
	if id, ok := props["id"].(string); ok {
		orgNode.ID = id
	} else {
		return nil, fmt.Errorf("failed to assert type for node ID: %v", props["id"])
	}

	// Name
	if name, ok := props["name"].(string); ok {
		orgNode.Name = name
	} else {
		return nil, fmt.Errorf("failed to assert type for node name: %v", props["name"])
	}

	// Type, from node labels
	for _, label := range nodeLabels {
		switch label {
		case hodei_neo4j.LabelAccount:
			orgNode.Type = model.NodeTypeAccount
		case hodei_neo4j.LabelOrganizationalUnit:
			orgNode.Type = model.NodeTypeOrganizationalUnit
		}
	}
	if orgNode.Type == "" {
		return nil, fmt.Errorf("node %s carries no organization label: %v", orgNode.ID, nodeLabels)
	}

	// ParentID (absent on the root)
	if parentID != nil {
		parent, ok := parentID.(string)
		if !ok {
			return nil, fmt.Errorf("failed to assert type for node parent ID: %v", parentID)
		}
		orgNode.ParentID = parent
	}

	// Attached SCP ids
	for _, raw := range scpIDs {
		scpID, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("failed to assert type for attached SCP id: %v", raw)
		}
		orgNode.AttachedScpIDs = append(orgNode.AttachedScpIDs, scpID)
	}

	// CreatedAt
	if createdAt, ok := props["createdAt"].(string); ok {
		parsedCreatedAt, err := helper_util.ParseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse createdAt for node %s: %v", orgNode.ID, err)
		}
		orgNode.CreatedAt = parsedCreatedAt
	} else {
		return nil, fmt.Errorf("failed to assert type for node createdAt: %v", props["createdAt"])
	}

	// UpdatedAt
	if updatedAt, ok := props["updatedAt"].(string); ok {
		parsedUpdatedAt, err := helper_util.ParseTime(updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updatedAt for node %s: %v", orgNode.ID, err)
		}
		orgNode.UpdatedAt = parsedUpdatedAt
	} else {
		return nil, fmt.Errorf("failed to assert type for node updatedAt: %v", props["updatedAt"])
	}

	return orgNode, nil
}
