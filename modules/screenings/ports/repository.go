package ports

import (
	"context"

	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/screenings/model"
)

// ScreeningRepository is the data access surface for AIScreening.
type ScreeningRepository interface {
	Create(ctx context.Context, q postgres.Querier, s *model.AIScreening) error
	GetByID(ctx context.Context, id string) (*model.AIScreening, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*model.AIScreening, error)
	DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error
}

// CandidateDriver is the narrow surface of candidates/service the
// screening orchestrator needs: resolving the resume to text, reading
// the current stage, and advancing it on the same transaction as the
// persisted screening record. Kept as an interface so this module never
// imports the candidates module concretely.
type CandidateDriver interface {
	Exists(ctx context.Context, candidateID string) (bool, error)
	ExtractResumeText(ctx context.Context, candidateID string) (string, error)
	CurrentStage(ctx context.Context, candidateID string) (string, error)
	AdvanceStage(ctx context.Context, q postgres.Querier, candidateID, toStage, actor string) error
}
