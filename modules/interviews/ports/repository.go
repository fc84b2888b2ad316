package ports

import (
	"context"
	"time"

	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/interviews/model"
)

// ListOptions is the page/sort shape the interview list query accepts.
type ListOptions struct {
	Limit   int
	Offset  int
	SortBy  string
	SortDir string
}

// InterviewRepository is the data access surface for Interview.
type InterviewRepository interface {
	Create(ctx context.Context, q postgres.Querier, i *model.Interview) error
	GetByID(ctx context.Context, id string) (*model.Interview, error)
	GetByIDForUpdate(ctx context.Context, q postgres.Querier, id string) (*model.Interview, error)

	// NonTerminalForInterviewer returns the non-terminal interviews for
	// an interviewer within a broadened window around [start, end), used
	// as the candidate set the exact overlap test is applied to.
	NonTerminalForInterviewer(ctx context.Context, q postgres.Querier, interviewerID string, windowStart, windowEnd time.Time, excludeID string) ([]*model.Interview, error)

	// LockInterviewer acquires a transaction-scoped advisory lock keyed
	// on the interviewer id, serializing conflict-check+insert for that
	// interviewer across concurrent callers.
	LockInterviewer(ctx context.Context, q postgres.Querier, interviewerID string) error

	UpdateStatus(ctx context.Context, q postgres.Querier, id string, status model.Status) error
	UpdateSchedule(ctx context.Context, q postgres.Querier, id string, scheduledAt time.Time, durationMin int) error

	List(ctx context.Context, opts ListOptions) ([]*model.Interview, int, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*model.Interview, error)
	ListByInterviewer(ctx context.Context, interviewerID string, from, to time.Time) ([]*model.Interview, error)
	ScheduledToday(ctx context.Context, dayStart, dayEnd time.Time) ([]*model.Interview, error)
	CompletedWithoutFeedback(ctx context.Context) ([]*model.Interview, error)

	HasInterviewsForInterviewer(ctx context.Context, interviewerID string) (bool, error)

	DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error
}

// CandidateStageDriver is the narrow surface of candidates/service the
// interview lifecycle needs to drive stage transitions, avoided as a
// concrete import of the candidates module package to keep the
// dependency one-directional at the interface level. AdvanceStage takes
// a postgres.Querier so the stage move and its audit record land in the
// same transaction as the interview mutation that triggered it.
type CandidateStageDriver interface {
	Exists(ctx context.Context, candidateID string) (bool, error)
	CurrentStage(ctx context.Context, candidateID string) (string, error)
	AdvanceStage(ctx context.Context, q postgres.Querier, candidateID, toStage, actor string) error
}
