package service

import (
	"context"
	"time"

	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/audit/model"
	"github.com/jobber-ats/core/modules/audit/ports"
)

// AuditService is a thin pass-through over the repository: the audit
// trail has no business rules of its own beyond append-only insertion.
type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) RecordStageChange(ctx context.Context, q postgres.Querier, candidateID string, from *string, to, changedBy string, reason *string) (*model.StageChange, error) {
	return s.repo.RecordStageChange(ctx, q, candidateID, from, to, changedBy, reason)
}

func (s *AuditService) RecordStatusChange(ctx context.Context, q postgres.Querier, interviewID string, to, changedBy string, notes *string) (*model.StatusChange, error) {
	return s.repo.RecordStatusChange(ctx, q, interviewID, to, changedBy, notes)
}

func (s *AuditService) StageHistory(ctx context.Context, candidateID string) ([]*model.StageChange, error) {
	return s.repo.StageHistory(ctx, candidateID)
}

func (s *AuditService) StatusHistory(ctx context.Context, interviewID string) ([]*model.StatusChange, error) {
	return s.repo.StatusHistory(ctx, interviewID)
}

func (s *AuditService) RecentStageChangesSince(ctx context.Context, since time.Time) ([]*model.StageChange, error) {
	return s.repo.RecentStageChangesSince(ctx, since)
}

func (s *AuditService) AverageTimeInStage(ctx context.Context) ([]*model.StageDuration, error) {
	return s.repo.AverageTimeInStage(ctx)
}

func (s *AuditService) DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error {
	return s.repo.DeleteByCandidate(ctx, q, candidateID)
}
