package ports

import (
	"context"

	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/interviewers/model"
)

// ListOptions is the page/sort shape the interviewer list query accepts.
type ListOptions struct {
	Limit           int
	Offset          int
	SortBy          string
	SortDir         string
	IncludeArchived bool
}

// InterviewerRepository is the data access surface for Interviewer.
type InterviewerRepository interface {
	Create(ctx context.Context, q postgres.Querier, i *model.Interviewer) error
	GetByID(ctx context.Context, id string) (*model.Interviewer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, opts ListOptions) ([]*model.Interviewer, int, error)
	Search(ctx context.Context, filter model.SearchFilter, opts ListOptions) ([]*model.Interviewer, int, error)
	Update(ctx context.Context, q postgres.Querier, id string, name, department, title *string, expertise []string) error
	SetArchived(ctx context.Context, q postgres.Querier, id string, archived bool) error
	Delete(ctx context.Context, q postgres.Querier, id string) error
}

// ScheduleReferenceChecker is satisfied structurally by the interviews
// repository: an interviewer that still has interviews scheduled cannot
// be deleted, only archived.
type ScheduleReferenceChecker interface {
	HasInterviewsForInterviewer(ctx context.Context, interviewerID string) (bool, error)
}
