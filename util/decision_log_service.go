// util/decision_log_service.go

package util

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Rubentxu/hodei-artifacts-sub005/audit"
	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
)

// DecisionLogService records every authorization outcome: structured process
// logs always, plus a durable audit entry when an audit service is wired.
// Audit failures never affect the decision path.
type DecisionLogService struct {
	auditService audit.Service
}

// NewDecisionLogService creates the service. auditService may be nil, in
// which case decisions are only logged to the process log.
func NewDecisionLogService(auditService audit.Service) *DecisionLogService {
	return &DecisionLogService{auditService: auditService}
}

func (s *DecisionLogService) LogDecision(ctx context.Context, req model.AuthorizationRequest, resp *model.AuthorizationResponse, duration time.Duration) {
	logger.Info("Authorization decision",
		zap.String("principal", req.Principal.String()),
		zap.String("action", req.Action),
		zap.String("resource", req.Resource.String()),
		zap.String("decision", string(resp.Decision)),
		zap.Bool("explicit", resp.Explicit),
		zap.String("reason", resp.Reason),
		zap.Strings("determiningPolicies", resp.DeterminingPolicies),
		zap.Duration("duration", duration))

	if s.auditService == nil {
		return
	}

	entry := audit.AuditLog{
		Timestamp:           time.Now(),
		PrincipalHrn:        req.Principal.String(),
		Action:              req.Action,
		ResourceHrn:         req.Resource.String(),
		Decision:            string(resp.Decision),
		Explicit:            resp.Explicit,
		DeterminingPolicies: resp.DeterminingPolicies,
		Reason:              resp.Reason,
		DurationMs:          duration.Milliseconds(),
	}
	if err := s.auditService.LogDecision(ctx, entry); err != nil {
		logger.Warn("Failed to write decision audit entry",
			zap.Error(err),
			zap.String("principal", req.Principal.String()))
	}
}

func (s *DecisionLogService) LogError(ctx context.Context, req model.AuthorizationRequest, err error) {
	logger.Error("Authorization request failed",
		zap.Error(err),
		zap.String("principal", req.Principal.String()),
		zap.String("action", req.Action),
		zap.String("resource", req.Resource.String()))
}
