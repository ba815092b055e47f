// pdp/dao/entity_dao.go
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
)

// EntityDAO resolves principal and resource nodes into evaluation entities:
// the node's attributes plus the hrns of its parents (groups for principals,
// owning accounts for resources).
type EntityDAO struct {
	Driver neo4j.Driver
}

func NewEntityDAO(driver neo4j.Driver) *EntityDAO {
	return &EntityDAO{Driver: driver}
}

func (dao *EntityDAO) ResolveEntity(ctx context.Context, hrn model.Hrn) (*model.Entity, error) {
	start := time.Now()
	logger.Debug("Resolving entity", zap.String("hrn", hrn.String()))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (e {hrn: $hrn})
        OPTIONAL MATCH (e)-[:` + hodei_neo4j.RelMemberOf + `|` + hodei_neo4j.RelOwnedBy + `]->(parent)
        RETURN e, collect(DISTINCT parent.hrn) AS parentHrns
        `

		params := map[string]interface{}{
			"hrn": hrn.String(),
		}

		result, err := tx.Run(query, params)
		if err != nil {
			return nil, err
		}

		if !result.Next() {
			return nil, hodei_errors.ErrEntityNotFound
		}

		record := result.Record()
		node := record.Values[0].(neo4j.Node)
		parentHrns, _ := record.Values[1].([]interface{})

		return mapToEntity(hrn, node, parentHrns)
	})

	duration := time.Since(start)
	if err != nil {
		if errors.Is(err, hodei_errors.ErrEntityNotFound) {
			logger.Debug("Entity not found",
				zap.String("hrn", hrn.String()),
				zap.Duration("duration", duration))
			return nil, err
		}
		logger.Error("Failed to resolve entity",
			zap.Error(err),
			zap.String("hrn", hrn.String()),
			zap.Duration("duration", duration))
		return nil, hodei_errors.ErrEntityResolution
	}

	return result.(*model.Entity), nil
}

// Helper function to map a Neo4j node and its parent hrns to an Entity struct
func mapToEntity(hrn model.Hrn, node neo4j.Node, parentHrns []interface{}) (*model.Entity, error) {
	entity := &model.Entity{Hrn: hrn}

	entity.Attributes = make(map[string]interface{}, len(node.Props))
	for key, value := range node.Props {
		if key == hodei_neo4j.AttrHrn {
			continue
		}
		entity.Attributes[key] = value
	}

	for _, raw := range parentHrns {
		parentStr, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("failed to assert type for parent hrn: %v", raw)
		}
		parent, err := model.ParseHrn(parentStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse parent hrn of %s: %v", hrn.String(), err)
		}
		entity.Parents = append(entity.Parents, parent)
	}

	return entity, nil
}
