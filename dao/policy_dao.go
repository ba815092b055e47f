// dao/policy_dao.go
package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/Rubentxu/hodei-artifacts-sub005/audit"
	hodei_errors "github.com/Rubentxu/hodei-artifacts-sub005/errors"
	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	hodei_neo4j "github.com/Rubentxu/hodei-artifacts-sub005/model/neo4j"
	helper_util "github.com/Rubentxu/hodei-artifacts-sub005/util/helper"
)

// PolicyDAO is the write side of policy administration: identity policies,
// SCP policies and SCP attachments to organization nodes.
type PolicyDAO struct {
	Driver       neo4j.Driver
	AuditService audit.Service
}

func NewPolicyDAO(driver neo4j.Driver, auditService audit.Service) *PolicyDAO {
	dao := &PolicyDAO{Driver: driver, AuditService: auditService}
	// Ensure unique constraints on policy IDs
	ctx := context.Background()
	if err := dao.EnsureUniqueConstraints(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraints", zap.Error(err))
	}
	return dao
}

// EnsureUniqueConstraints ensures the unique constraints on policy IDs
func (dao *PolicyDAO) EnsureUniqueConstraints(ctx context.Context) error {
	logger.Info("Ensuring unique constraints on policy IDs")
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("Failed to close Neo4j session", zap.Error(err))
		}
	}()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		queries := []string{
			`CREATE CONSTRAINT unique_identity_policy_id IF NOT EXISTS
            FOR (p:` + hodei_neo4j.LabelIdentityPolicy + `) REQUIRE p.` + hodei_neo4j.AttrID + ` IS UNIQUE`,
			`CREATE CONSTRAINT unique_scp_policy_id IF NOT EXISTS
            FOR (p:` + hodei_neo4j.LabelScpPolicy + `) REQUIRE p.` + hodei_neo4j.AttrID + ` IS UNIQUE`,
		}
		for _, query := range queries {
			if _, err := transaction.Run(query, nil); err != nil {
				logger.Error("Failed to create unique constraint", zap.Error(err))
				return nil, fmt.Errorf("failed to create unique constraint: %w", err)
			}
		}
		return nil, nil
	})
	if err != nil {
		logger.Error("Failed to ensure unique constraints on policy IDs", zap.Error(err))
		return err
	}

	logger.Info("Successfully ensured unique constraints on policy IDs")
	return nil
}

// CreatePolicy creates a new policy node in Neo4j. The node label follows the
// policy kind.
func (dao *PolicyDAO) CreatePolicy(ctx context.Context, policy model.Policy, userID string) (string, error) {
	start := time.Now()
	logger.Info("Creating new policy",
		zap.String("policyName", policy.Name),
		zap.String("kind", string(policy.Kind)))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if policy.ID == "" {
		policy.ID = uuid.New().String() // Generate a new UUID if ID is not provided
	}

	label := policyLabel(policy.Kind)

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		// First, check if the policy already exists
		checkQuery := `
        MATCH (p:` + label + ` {id: $id})
        RETURN p.id
        `
		checkResult, err := transaction.Run(checkQuery, map[string]interface{}{"id": policy.ID})
		if err != nil {
			return nil, hodei_errors.ErrDatabaseOperation
		}
		if checkResult.Next() {
			return nil, hodei_errors.ErrPolicyConflict
		}

		createQuery := `
            MERGE (p:` + label + ` {id: $id})
            ON CREATE SET p += $props
            ON MATCH SET p += $props
            RETURN p.id as id
        `

		parameters := map[string]interface{}{
			"id": policy.ID,
			"props": map[string]interface{}{
				hodei_neo4j.AttrName:        policy.Name,
				hodei_neo4j.AttrDescription: policy.Description,
				hodei_neo4j.AttrKind:        string(policy.Kind),
				hodei_neo4j.AttrEffect:      string(policy.Effect),
				hodei_neo4j.AttrText:        policy.Text,
				hodei_neo4j.AttrVersion:     policy.Version,
				hodei_neo4j.AttrActive:      policy.Active,
				hodei_neo4j.AttrCreatedAt:   time.Now().Format(time.RFC3339),
				hodei_neo4j.AttrUpdatedAt:   time.Now().Format(time.RFC3339),
			},
		}
		createResult, err := transaction.Run(createQuery, parameters)
		if err != nil {
			return nil, hodei_errors.ErrDatabaseOperation
		}
		if createResult.Next() {
			id, found := createResult.Record().Get("id")
			if !found {
				return nil, hodei_errors.ErrInternalServer
			}
			return id, nil
		}
		return nil, hodei_errors.ErrInternalServer
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create policy",
			zap.Error(err),
			zap.String("policyName", policy.Name),
			zap.Duration("duration", duration))
		return "", err
	}

	policyID := fmt.Sprintf("%v", result)
	logger.Info("Policy created successfully",
		zap.String("policyID", policyID),
		zap.Duration("duration", duration))

	// Audit trail
	auditLog := audit.AuditLog{
		Timestamp:     time.Now(),
		PrincipalHrn:  userID,
		Action:        "CREATE_POLICY",
		ResourceHrn:   policyID,
		ChangeDetails: createChangeDetails(nil, &policy),
	}
	if err := dao.AuditService.LogDecision(ctx, auditLog); err != nil {
		logger.Error("Failed to create audit log", zap.Error(err))
	}
	return policyID, nil
}

// UpdatePolicy updates an existing policy in Neo4j
func (dao *PolicyDAO) UpdatePolicy(ctx context.Context, policy model.Policy, userID string) (*model.Policy, error) {
	start := time.Now()
	logger.Info("Updating policy", zap.String("policyID", policy.ID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	var updatedPolicy *model.Policy
	oldPolicy, err := dao.GetPolicy(ctx, policy.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}

	_, err = session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + policyLabel(policy.Kind) + ` {id: $id})
        SET p.name = $name, p.description = $description, p.effect = $effect,
            p.text = $text, p.version = $version, p.active = $active,
            p.createdAt = $createdAt, p.updatedAt = $updatedAt
        RETURN p
        `

		parameters := map[string]interface{}{
			"id": policy.ID, "name": policy.Name, "description": policy.Description,
			"effect": string(policy.Effect), "text": policy.Text, "version": policy.Version,
			"active":    policy.Active,
			"createdAt": oldPolicy.CreatedAt.Format(time.RFC3339),
			"updatedAt": time.Now().Format(time.RFC3339),
		}
		result, err := transaction.Run(query, parameters)
		if err != nil {
			return nil, fmt.Errorf("failed to execute update query: %w", err)
		}
		if result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			updatedPolicy, err = mapNodeToPolicy(node)
			if err != nil {
				return nil, fmt.Errorf("failed to map updated policy: %w", err)
			}
			return nil, nil
		}
		return nil, hodei_errors.ErrPolicyNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update policy",
			zap.Error(err),
			zap.String("policyID", policy.ID),
			zap.Duration("duration", duration))
		return nil, fmt.Errorf("failed to update policy: %w", err)
	}

	logger.Info("Policy updated successfully",
		zap.String("policyID", policy.ID),
		zap.Duration("duration", duration))

	// Audit trail
	auditLog := audit.AuditLog{
		Timestamp:     time.Now(),
		PrincipalHrn:  userID,
		Action:        "UPDATE_POLICY",
		ResourceHrn:   policy.ID,
		ChangeDetails: createChangeDetails(oldPolicy, updatedPolicy),
	}
	if err := dao.AuditService.LogDecision(ctx, auditLog); err != nil {
		logger.Error("Failed to create audit log", zap.Error(err))
	}

	return updatedPolicy, nil
}

// DeletePolicy deletes a policy from Neo4j
func (dao *PolicyDAO) DeletePolicy(ctx context.Context, policyID string, userID string) error {
	start := time.Now()
	logger.Info("Deleting policy", zap.String("policyID", policyID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p {id: $id})
        WHERE p:` + hodei_neo4j.LabelIdentityPolicy + ` OR p:` + hodei_neo4j.LabelScpPolicy + `
        DETACH DELETE p
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": policyID})
		if err != nil {
			return nil, fmt.Errorf("failed to execute delete query: %w", err)
		}
		summary, err := result.Consume()
		if err != nil {
			return nil, fmt.Errorf("failed to consume delete result: %w", err)
		}
		if summary.Counters().NodesDeleted() == 0 {
			return nil, hodei_errors.ErrPolicyNotFound
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to delete policy",
			zap.Error(err),
			zap.String("policyID", policyID),
			zap.Duration("duration", duration))
		return fmt.Errorf("failed to delete policy: %w", err)
	}

	logger.Info("Policy deleted successfully",
		zap.String("policyID", policyID),
		zap.Duration("duration", duration))

	// Audit trail
	auditLog := audit.AuditLog{
		Timestamp:    time.Now(),
		PrincipalHrn: userID,
		Action:       "DELETE_POLICY",
		ResourceHrn:  policyID,
	}
	if err := dao.AuditService.LogDecision(ctx, auditLog); err != nil {
		logger.Error("Failed to create audit log", zap.Error(err))
	}

	return nil
}

// GetPolicy retrieves a policy from Neo4j by its ID, whatever its kind
func (dao *PolicyDAO) GetPolicy(ctx context.Context, policyID string) (*model.Policy, error) {
	start := time.Now()
	logger.Info("Retrieving policy", zap.String("policyID", policyID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (p {id: $id})
    WHERE p:` + hodei_neo4j.LabelIdentityPolicy + ` OR p:` + hodei_neo4j.LabelScpPolicy + `
    RETURN p
    `
	result, err := session.Run(query, map[string]interface{}{"id": policyID})
	if err != nil {
		logger.Error("Failed to execute get policy query",
			zap.Error(err),
			zap.String("policyID", policyID),
			zap.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("failed to execute get policy query: %w", err)
	}

	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		policy, err := mapNodeToPolicy(node)
		if err != nil {
			logger.Error("Failed to map policy node to struct",
				zap.Error(err),
				zap.String("policyID", policyID),
				zap.Duration("duration", time.Since(start)))
			return nil, fmt.Errorf("failed to map policy node to struct: %w", err)
		}
		logger.Info("Policy retrieved successfully",
			zap.String("policyID", policyID),
			zap.Duration("duration", time.Since(start)))
		return policy, nil
	}

	logger.Warn("Policy not found",
		zap.String("policyID", policyID),
		zap.Duration("duration", time.Since(start)))
	return nil, hodei_errors.ErrPolicyNotFound
}

// ListPolicies retrieves policies of one kind with pagination
func (dao *PolicyDAO) ListPolicies(ctx context.Context, kind model.PolicyKind, limit int, offset int) ([]*model.Policy, error) {
	start := time.Now()
	logger.Info("Listing policies",
		zap.String("kind", string(kind)),
		zap.Int("limit", limit),
		zap.Int("offset", offset))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (p:` + policyLabel(kind) + `)
    RETURN p
    ORDER BY p.createdAt DESC
    SKIP $offset
    LIMIT $limit
    `
	result, err := session.Run(query, map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		logger.Error("Failed to execute list policies query",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("failed to execute list policies query: %w", err)
	}

	var policies []*model.Policy
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		policy, err := mapNodeToPolicy(node)
		if err != nil {
			logger.Error("Failed to map policy node to struct",
				zap.Error(err),
				zap.Duration("duration", time.Since(start)))
			return nil, fmt.Errorf("failed to map policy node to struct: %w", err)
		}
		policies = append(policies, policy)
	}

	logger.Info("Policies listed successfully",
		zap.Int("count", len(policies)),
		zap.Duration("duration", time.Since(start)))

	return policies, nil
}

// AttachScp attaches an SCP policy to an organization node
func (dao *PolicyDAO) AttachScp(ctx context.Context, scpID string, nodeID string, userID string) error {
	start := time.Now()
	logger.Info("Attaching SCP to organization node",
		zap.String("scpID", scpID),
		zap.String("nodeID", nodeID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		// First, check both endpoints exist
		checkScp := `
        MATCH (scp:` + hodei_neo4j.LabelScpPolicy + ` {id: $scpID})
        RETURN scp.id
        `
		scpResult, err := transaction.Run(checkScp, map[string]interface{}{"scpID": scpID})
		if err != nil {
			return nil, hodei_errors.ErrDatabaseOperation
		}
		if !scpResult.Next() {
			return nil, hodei_errors.ErrPolicyNotFound
		}

		checkNode := `
        MATCH (n {id: $nodeID})
        WHERE n:` + hodei_neo4j.LabelOrganizationalUnit + ` OR n:` + hodei_neo4j.LabelAccount + `
        RETURN n.id
        `
		nodeResult, err := transaction.Run(checkNode, map[string]interface{}{"nodeID": nodeID})
		if err != nil {
			return nil, hodei_errors.ErrDatabaseOperation
		}
		if !nodeResult.Next() {
			return nil, hodei_errors.ErrOrganizationNotFound
		}

		attachQuery := `
        MATCH (scp:` + hodei_neo4j.LabelScpPolicy + ` {id: $scpID})
        MATCH (n {id: $nodeID})
        WHERE n:` + hodei_neo4j.LabelOrganizationalUnit + ` OR n:` + hodei_neo4j.LabelAccount + `
        MERGE (n)-[:` + hodei_neo4j.RelHasScp + `]->(scp)
        `
		params := map[string]interface{}{
			"scpID":  scpID,
			"nodeID": nodeID,
		}
		if _, err := transaction.Run(attachQuery, params); err != nil {
			return nil, hodei_errors.ErrDatabaseOperation
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to attach SCP",
			zap.Error(err),
			zap.String("scpID", scpID),
			zap.String("nodeID", nodeID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("SCP attached successfully",
		zap.String("scpID", scpID),
		zap.String("nodeID", nodeID),
		zap.Duration("duration", duration))

	// Audit trail
	details, _ := json.Marshal(map[string]string{"scpId": scpID, "nodeId": nodeID})
	auditLog := audit.AuditLog{
		Timestamp:     time.Now(),
		PrincipalHrn:  userID,
		Action:        "ATTACH_SCP",
		ResourceHrn:   nodeID,
		ChangeDetails: details,
	}
	if err := dao.AuditService.LogDecision(ctx, auditLog); err != nil {
		logger.Error("Failed to create audit log", zap.Error(err))
	}

	return nil
}

// DetachScp removes an SCP attachment from an organization node
func (dao *PolicyDAO) DetachScp(ctx context.Context, scpID string, nodeID string, userID string) error {
	start := time.Now()
	logger.Info("Detaching SCP from organization node",
		zap.String("scpID", scpID),
		zap.String("nodeID", nodeID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (n {id: $nodeID})-[r:` + hodei_neo4j.RelHasScp + `]->(scp:` + hodei_neo4j.LabelScpPolicy + ` {id: $scpID})
        DELETE r
        `
		params := map[string]interface{}{
			"scpID":  scpID,
			"nodeID": nodeID,
		}
		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, fmt.Errorf("failed to execute detach query: %w", err)
		}
		summary, err := result.Consume()
		if err != nil {
			return nil, fmt.Errorf("failed to consume detach result: %w", err)
		}
		if summary.Counters().RelationshipsDeleted() == 0 {
			return nil, hodei_errors.ErrPolicyNotFound
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to detach SCP",
			zap.Error(err),
			zap.String("scpID", scpID),
			zap.String("nodeID", nodeID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("SCP detached successfully",
		zap.String("scpID", scpID),
		zap.String("nodeID", nodeID),
		zap.Duration("duration", duration))

	// Audit trail
	details, _ := json.Marshal(map[string]string{"scpId": scpID, "nodeId": nodeID})
	auditLog := audit.AuditLog{
		Timestamp:     time.Now(),
		PrincipalHrn:  userID,
		Action:        "DETACH_SCP",
		ResourceHrn:   nodeID,
		ChangeDetails: details,
	}
	if err := dao.AuditService.LogDecision(ctx, auditLog); err != nil {
		logger.Error("Failed to create audit log", zap.Error(err))
	}

	return nil
}

// Helper function to pick the node label for a policy kind
func policyLabel(kind model.PolicyKind) string {
	if kind == model.PolicyKindScp {
		return hodei_neo4j.LabelScpPolicy
	}
	return hodei_neo4j.LabelIdentityPolicy
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
	} else {
		return nil, fmt.Errorf("failed to assert type for policy kind: %v", props["kind"])
	}

	// Effect
	if effect, ok := props["effect"].(string); ok {
		policy.Effect = model.Effect(effect)
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

// Helper function to record what changed in an audit entry
func createChangeDetails(oldPolicy, newPolicy *model.Policy) json.RawMessage {
	changes := make(map[string]interface{})
	if oldPolicy == nil {
		changes["action"] = "created"
		changes["new"] = newPolicy
	} else if newPolicy == nil {
		changes["action"] = "deleted"
	} else {
		changes["action"] = "updated"
		if oldPolicy.Name != newPolicy.Name {
			changes["name"] = map[string]string{"old": oldPolicy.Name, "new": newPolicy.Name}
		}
		if oldPolicy.Text != newPolicy.Text {
			changes["text"] = map[string]string{"old": oldPolicy.Text, "new": newPolicy.Text}
		}
		if oldPolicy.Active != newPolicy.Active {
			changes["active"] = map[string]bool{"old": oldPolicy.Active, "new": newPolicy.Active}
		}
		changes["version"] = map[string]int{"old": oldPolicy.Version, "new": newPolicy.Version}
	}
	details, err := json.Marshal(changes)
	if err != nil {
		logger.Error("Failed to marshal change details", zap.Error(err))
		return nil
	}
	return details
}
