// audit/service.go
package audit

import (
	"context"
	"time"
)

type Service interface {
	LogDecision(ctx context.Context, log AuditLog) error
	QueryLogs(ctx context.Context, from, to time.Time, principalHrn, resourceHrn string) ([]AuditLog, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) LogDecision(ctx context.Context, log AuditLog) error {
	return s.repo.LogDecision(ctx, log)
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, principalHrn, resourceHrn string) ([]AuditLog, error) {
	return s.repo.QueryLogs(ctx, from, to, principalHrn, resourceHrn)
}
