package ports

import (
	"context"

	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/candidates/model"
)

// ListOptions is the page/sort shape every list query accepts.
type ListOptions struct {
	Limit   int
	Offset  int
	SortBy  string
	SortDir string
}

// CandidateRepository is the Data Store Gateway surface for Candidate.
type CandidateRepository interface {
	Create(ctx context.Context, q postgres.Querier, c *model.Candidate) error
	GetByID(ctx context.Context, id string) (*model.Candidate, error)
	GetByEmail(ctx context.Context, email string) (*model.Candidate, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, opts ListOptions) ([]*model.Candidate, int, error)
	Search(ctx context.Context, filter model.SearchFilter, opts ListOptions) ([]*model.Candidate, int, error)
	UpdateStage(ctx context.Context, q postgres.Querier, id string, stage model.Stage) error
	UpdateProfile(ctx context.Context, q postgres.Querier, id string, name, phone *string) error
	SetResumeBlobRef(ctx context.Context, q postgres.Querier, id string, ref string) error
	Delete(ctx context.Context, q postgres.Querier, id string) error
	ByStage(ctx context.Context, stage model.Stage) ([]*model.Candidate, error)
}

// InterviewCascade is satisfied structurally by the interviews
// repository: deleting a candidate cascades to its owned interviews,
// their feedback, and their status history. The cascade runs at the
// application level, inside the same transaction as the delete, rather
// than relying on a database-level ON DELETE CASCADE.
type InterviewCascade interface {
	DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error
}

// ScreeningCascade is satisfied structurally by the screenings
// repository: deleting a candidate cascades to its owned AIScreening
// records.
type ScreeningCascade interface {
	DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error
}

// StageHistoryCascade is satisfied structurally by the audit
// repository: deleting a candidate cascades to its owned StageChange
// history.
type StageHistoryCascade interface {
	DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error
}
