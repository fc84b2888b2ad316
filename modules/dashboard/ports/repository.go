package ports

import (
	"context"
	"time"

	auditModel "github.com/jobber-ats/core/modules/audit/model"
	"github.com/jobber-ats/core/modules/dashboard/model"
	interviewsModel "github.com/jobber-ats/core/modules/interviews/model"
)

// DashboardRepository runs the dedicated cross-table aggregate queries
// backing the composite projection: counts and top-N queries that would
// be wasteful to assemble by fetching whole rows through each module's
// own repository.
type DashboardRepository interface {
	TotalCandidates(ctx context.Context) (int, error)
	CandidatesCreatedSince(ctx context.Context, since time.Time) (int, error)
	CandidatesByStage(ctx context.Context) ([]model.StageCount, error)
	TopCandidatesByScore(ctx context.Context, limit int) ([]model.TopCandidate, error)
	AverageScoreByStage(ctx context.Context) ([]model.StageAverageScore, error)
	HiredCount(ctx context.Context) (int, error)
}

// InterviewLookup is the narrow surface of interviews/service the
// dashboard needs for today's schedule and the completed-without-
// feedback count.
type InterviewLookup interface {
	ScheduledToday(ctx context.Context, dayStart, dayEnd time.Time) ([]*interviewsModel.DTO, error)
	CompletedWithoutFeedback(ctx context.Context) ([]*interviewsModel.DTO, error)
}

// AuditLookup is the narrow surface of audit/service the dashboard
// needs for the recent-stage-transitions feed.
type AuditLookup interface {
	RecentStageChangesSince(ctx context.Context, since time.Time) ([]*auditModel.StageChange, error)
}
