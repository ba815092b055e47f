package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Rubentxu/hodei-artifacts-sub005/dao"
	hodei_errors "github.com/Rubentxu/hodei-artifacts-sub005/errors"
	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"github.com/Rubentxu/hodei-artifacts-sub005/pdp/engine"
	"github.com/Rubentxu/hodei-artifacts-sub005/util"
)

// PolicyService handles business logic for policy administration. Every
// mutation publishes an event; the service subscribes its own cache
// invalidation handler so no decision outlives a policy change.
type PolicyService struct {
	policyDAO      *dao.PolicyDAO
	validationUtil *util.ValidationUtil
	cacheService   *util.CacheService
	eventBus       *util.EventBus
	analyzer       *engine.CorpusAnalyzer
	metricsService *util.MetricsService
}

// NewPolicyService creates a new instance of PolicyService
func NewPolicyService(policyDAO *dao.PolicyDAO, validationUtil *util.ValidationUtil, cacheService *util.CacheService, eventBus *util.EventBus, analyzer *engine.CorpusAnalyzer, metricsService *util.MetricsService) *PolicyService {
	service := &PolicyService{
		policyDAO:      policyDAO,
		validationUtil: validationUtil,
		cacheService:   cacheService,
		eventBus:       eventBus,
		analyzer:       analyzer,
		metricsService: metricsService,
	}

	// Set up event subscriptions
	eventBus.Subscribe("policy.created", service.handlePolicyChanged)
	eventBus.Subscribe("policy.updated", service.handlePolicyChanged)
	eventBus.Subscribe("policy.deleted", service.handlePolicyChanged)
	eventBus.Subscribe("scp.attached", service.handlePolicyChanged)
	eventBus.Subscribe("scp.detached", service.handlePolicyChanged)

	return service
}

// handlePolicyChanged drops every cached decision. Any policy mutation can
// change the answer for any request, so invalidation is wholesale.
func (s *PolicyService) handlePolicyChanged(ctx context.Context, event util.Event) error {
	if s.cacheService == nil {
		return nil
	}

	deleted, err := s.cacheService.InvalidateDecisions(ctx)
	if err != nil {
		logger.Error("Failed to invalidate decision cache",
			zap.Error(err),
			zap.String("eventType", event.Type))
		return err
	}

	logger.Info("Decision cache invalidated after policy change",
		zap.String("eventType", event.Type),
		zap.Int("deletedKeys", deleted))
	return nil
}

// CreatePolicy handles the creation of a new policy
func (s *PolicyService) CreatePolicy(ctx context.Context, policy model.Policy, userID string) (*model.Policy, error) {
	if err := s.validationUtil.ValidatePolicy(policy); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	policy.CreatedAt = time.Now()
	policy.UpdatedAt = time.Now()
	policy.Version = 1

	policyID, err := s.policyDAO.CreatePolicy(ctx, policy, userID)
	if err != nil {
		logger.Error("Error creating policy", zap.Error(err), zap.String("userID", userID))
		return nil, fmt.Errorf("failed to create policy: %w", err)
	}

	policy.ID = policyID

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "policy.created", policy)

	logger.Info("Policy created successfully", zap.String("policyID", policyID), zap.String("userID", userID))
	return &policy, nil
}

// UpdatePolicy handles updates to an existing policy
func (s *PolicyService) UpdatePolicy(ctx context.Context, policy model.Policy, userID string) (*model.Policy, error) {
	if err := s.validationUtil.ValidatePolicy(policy); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	oldPolicy, err := s.policyDAO.GetPolicy(ctx, policy.ID)
	if err != nil {
		logger.Error("Error retrieving existing policy", zap.Error(err), zap.String("policyID", policy.ID))
		return nil, err
	}

	// Check if there are any differences between the old and new policies
	if !s.hasPolicyChanged(oldPolicy, &policy) {
		logger.Info("No changes detected in the policy, skipping update", zap.String("policyID", policy.ID))
		return oldPolicy, nil
	}

	policy.UpdatedAt = time.Now()
	policy.Version = oldPolicy.Version + 1

	updatedPolicy, err := s.policyDAO.UpdatePolicy(ctx, policy, userID)
	if err != nil {
		logger.Error("Error updating policy", zap.Error(err), zap.String("policyID", policy.ID), zap.String("userID", userID))
		return nil, fmt.Errorf("failed to update policy: %w", err)
	}

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "policy.updated", map[string]interface{}{
		"old": *oldPolicy,
		"new": *updatedPolicy,
	})

	logger.Info("Policy updated successfully", zap.String("policyID", policy.ID), zap.String("userID", userID))
	return updatedPolicy, nil
}

// DeletePolicy handles the deletion of a policy
func (s *PolicyService) DeletePolicy(ctx context.Context, policyID string, userID string) error {
	err := s.policyDAO.DeletePolicy(ctx, policyID, userID)
	if err != nil {
		logger.Error("Error deleting policy", zap.Error(err), zap.String("policyID", policyID), zap.String("userID", userID))
		return fmt.Errorf("failed to delete policy: %w", err)
	}

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "policy.deleted", policyID)

	logger.Info("Policy deleted successfully", zap.String("policyID", policyID), zap.String("userID", userID))
	return nil
}

// GetPolicy retrieves a policy by its ID
func (s *PolicyService) GetPolicy(ctx context.Context, policyID string) (*model.Policy, error) {
	policy, err := s.policyDAO.GetPolicy(ctx, policyID)
	if err != nil {
		if errors.Is(err, hodei_errors.ErrPolicyNotFound) {
			return nil, hodei_errors.ErrPolicyNotFound
		}
		logger.Error("Error retrieving policy", zap.Error(err), zap.String("policyID", policyID))
		return nil, hodei_errors.ErrInternalServer
	}

	return policy, nil
}

// ListPolicies retrieves policies of one kind, with pagination
func (s *PolicyService) ListPolicies(ctx context.Context, kind model.PolicyKind, limit int, offset int) ([]*model.Policy, error) {
	policies, err := s.policyDAO.ListPolicies(ctx, kind, limit, offset)
	if err != nil {
		logger.Error("Error listing policies", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	return policies, nil
}

// AttachScp attaches an SCP policy to an organization node
func (s *PolicyService) AttachScp(ctx context.Context, scpID string, nodeID string, userID string) error {
	if scpID == "" || nodeID == "" {
		return fmt.Errorf("scp id and node id are required")
	}

	if err := s.policyDAO.AttachScp(ctx, scpID, nodeID, userID); err != nil {
		logger.Error("Error attaching SCP", zap.Error(err), zap.String("scpID", scpID), zap.String("nodeID", nodeID))
		return fmt.Errorf("failed to attach scp: %w", err)
	}

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "scp.attached", map[string]string{"scpId": scpID, "nodeId": nodeID})

	logger.Info("SCP attached successfully", zap.String("scpID", scpID), zap.String("nodeID", nodeID))
	return nil
}

// DetachScp removes an SCP attachment from an organization node
func (s *PolicyService) DetachScp(ctx context.Context, scpID string, nodeID string, userID string) error {
	if scpID == "" || nodeID == "" {
		return fmt.Errorf("scp id and node id are required")
	}

	if err := s.policyDAO.DetachScp(ctx, scpID, nodeID, userID); err != nil {
		logger.Error("Error detaching SCP", zap.Error(err), zap.String("scpID", scpID), zap.String("nodeID", nodeID))
		return fmt.Errorf("failed to detach scp: %w", err)
	}

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "scp.detached", map[string]string{"scpId": scpID, "nodeId": nodeID})

	logger.Info("SCP detached successfully", zap.String("scpID", scpID), zap.String("nodeID", nodeID))
	return nil
}

// BulkCreatePolicies creates multiple policies in parallel
func (s *PolicyService) BulkCreatePolicies(ctx context.Context, policies []model.Policy, userID string) ([]string, error) {
	g, ctx := errgroup.WithContext(ctx)
	policyIDs := make([]string, len(policies))

	// Limit concurrency to avoid overwhelming the database
	semaphore := make(chan struct{}, 10)

	for i, policy := range policies {
		i, policy := i, policy
		g.Go(func() error {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			created, err := s.CreatePolicy(ctx, policy, userID)
			if err != nil {
				return fmt.Errorf("failed to create policy %s: %w", policy.Name, err)
			}
			policyIDs[i] = created.ID
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("Bulk policy creation completed",
		zap.Int("count", len(policyIDs)),
		zap.String("userID", userID))
	return policyIDs, nil
}

// AnalyzePolicies runs the corpus analyzer over every active policy of one
// kind and records the run's metrics.
func (s *PolicyService) AnalyzePolicies(ctx context.Context, kind model.PolicyKind, options model.ConflictAnalysisOptions) (*model.ConflictAnalysisReport, *model.AnalysisMetrics, error) {
	const pageSize = 200

	var corpus []model.PolicyForAnalysis
	for offset := 0; ; offset += pageSize {
		page, err := s.policyDAO.ListPolicies(ctx, kind, pageSize, offset)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load policies for analysis: %w", err)
		}
		for _, policy := range page {
			if !policy.Active {
				continue
			}
			corpus = append(corpus, model.PolicyForAnalysis{ID: policy.ID, Content: policy.Text})
		}
		if len(page) < pageSize {
			break
		}
	}

	if err := s.validationUtil.ValidatePoliciesForAnalysis(corpus); err != nil {
		return nil, nil, fmt.Errorf("invalid analysis corpus: %w", err)
	}

	report, metrics, err := s.analyzer.Analyze(ctx, corpus, options)
	if err != nil {
		return nil, nil, err
	}

	if s.metricsService != nil {
		operationID := s.metricsService.RecordAnalysis(*metrics)
		logger.Info("Analysis metrics recorded",
			zap.String("operationID", operationID),
			zap.Int64("totalDurationMs", metrics.TotalDurationMs))
	}

	return report, metrics, nil
}

// hasPolicyChanged reports whether any updatable field differs
func (s *PolicyService) hasPolicyChanged(oldPolicy, newPolicy *model.Policy) bool {
	return oldPolicy.Name != newPolicy.Name ||
		oldPolicy.Description != newPolicy.Description ||
		oldPolicy.Effect != newPolicy.Effect ||
		oldPolicy.Text != newPolicy.Text ||
		oldPolicy.Active != newPolicy.Active
}
