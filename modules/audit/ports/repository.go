package ports

import (
	"context"
	"time"

	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/audit/model"
)

// AuditRepository appends immutable stage/status transition records and
// answers history queries over them. Write methods take an explicit
// postgres.Querier so callers can run them inside the same transaction
// that mutates the owning entity.
type AuditRepository interface {
	RecordStageChange(ctx context.Context, q postgres.Querier, candidateID string, from *string, to, changedBy string, reason *string) (*model.StageChange, error)
	RecordStatusChange(ctx context.Context, q postgres.Querier, interviewID string, to, changedBy string, notes *string) (*model.StatusChange, error)

	StageHistory(ctx context.Context, candidateID string) ([]*model.StageChange, error)
	StatusHistory(ctx context.Context, interviewID string) ([]*model.StatusChange, error)
	RecentStageChangesSince(ctx context.Context, since time.Time) ([]*model.StageChange, error)
	AverageTimeInStage(ctx context.Context) ([]*model.StageDuration, error)

	// DeleteByCandidate removes the stage history of a candidate being
	// deleted. Called inside the same transaction as the candidate delete.
	DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error
}
