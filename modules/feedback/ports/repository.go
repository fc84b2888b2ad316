package ports

import (
	"context"

	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/feedback/model"
)

// FeedbackRepository is the data access surface for Feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, q postgres.Querier, f *model.Feedback) error
	ExistsForInterviewAndInterviewer(ctx context.Context, interviewID, interviewerID string) (bool, error)

	ListByInterview(ctx context.Context, interviewID string) ([]*model.Feedback, error)
	ListByInterviewer(ctx context.Context, interviewerID string) ([]*model.Feedback, error)
	ListPositive(ctx context.Context) ([]*model.Feedback, error)

	CandidateAverage(ctx context.Context, candidateID string) (*model.CandidateAverage, error)
	InterviewerStats(ctx context.Context, interviewerID string) (*model.InterviewerStats, error)

	DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error
}

// InterviewLookup is the narrow surface of interviews/service that
// feedback needs: the interview's status and the interviewer of
// record, without a concrete import of the interviews module.
type InterviewLookup interface {
	InterviewStatusAndInterviewer(ctx context.Context, interviewID string) (status, interviewerID, candidateID string, err error)
}
