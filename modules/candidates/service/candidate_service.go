package service

import (
	"context"
	"strings"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/extractor"
	"github.com/jobber-ats/core/internal/platform/logger"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/internal/platform/storage"
	auditPorts "github.com/jobber-ats/core/modules/audit/ports"
	"github.com/jobber-ats/core/modules/candidates/model"
	"github.com/jobber-ats/core/modules/candidates/ports"
	"github.com/jackc/pgx/v5"
)

// ActorAISystem is the reserved actor name the screening orchestrator
// records itself under when it advances a candidate's stage.
const ActorAISystem = "AI_SYSTEM"

type CandidateService struct {
	db        *postgres.Client
	repo      ports.CandidateRepository
	auditRepo auditPorts.AuditRepository
	blobs     storage.BlobStore
	extractor *extractor.Dispatcher
	log       *logger.Logger

	interviews   ports.InterviewCascade
	screenings   ports.ScreeningCascade
	stageHistory ports.StageHistoryCascade
}

func NewCandidateService(
	db *postgres.Client,
	repo ports.CandidateRepository,
	auditRepo auditPorts.AuditRepository,
	blobs storage.BlobStore,
	extractorDispatcher *extractor.Dispatcher,
	log *logger.Logger,
) *CandidateService {
	return &CandidateService{
		db:        db,
		repo:      repo,
		auditRepo: auditRepo,
		blobs:     blobs,
		extractor: extractorDispatcher,
		log:       log,
	}
}

// SetCascades wires the delete-time fan-out to interviews, screenings
// and stage history once those modules are constructed. Deferred to a
// setter rather than the constructor because interviews/service needs a
// reference to *CandidateService to drive stage transitions, and that
// dependency has to be built before the cascades can be wired back here.
func (s *CandidateService) SetCascades(interviews ports.InterviewCascade, screenings ports.ScreeningCascade, stageHistory ports.StageHistoryCascade) {
	s.interviews = interviews
	s.screenings = screenings
	s.stageHistory = stageHistory
}

func (s *CandidateService) Create(ctx context.Context, req *model.CreateCandidateRequest, resumeFilename, resumeContentType string, resumeData []byte) (*model.DTO, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.DuplicateEmail("a candidate with this email already exists")
	}

	candidate := &model.Candidate{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		CurrentStage: model.StageApplied,
	}
	if req.Phone != "" {
		phone := req.Phone
		candidate.Phone = &phone
	}

	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.Create(ctx, tx, candidate); err != nil {
			return err
		}
		if len(resumeData) > 0 {
			ref, err := s.blobs.Save(ctx, resumeFilename, resumeContentType, resumeData)
			if err != nil {
				return apperr.Internal("failed to store resume", err)
			}
			candidate.ResumeBlobRef = &ref
			if err := s.repo.SetResumeBlobRef(ctx, tx, candidate.ID, ref); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithEntity(candidate.ID).Info("candidate created")
	return candidate.ToDTO(), nil
}

func (s *CandidateService) GetByID(ctx context.Context, id string) (*model.DTO, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.ToDTO(), nil
}

func (s *CandidateService) List(ctx context.Context, opts ports.ListOptions) ([]*model.DTO, int, error) {
	candidates, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	return toDTOs(candidates), total, nil
}

func (s *CandidateService) Search(ctx context.Context, filter model.SearchFilter, opts ports.ListOptions) ([]*model.DTO, int, error) {
	candidates, total, err := s.repo.Search(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return toDTOs(candidates), total, nil
}

func toDTOs(candidates []*model.Candidate) []*model.DTO {
	dtos := make([]*model.DTO, 0, len(candidates))
	for _, c := range candidates {
		dtos = append(dtos, c.ToDTO())
	}
	return dtos
}

// TransitionStage moves a candidate to a new stage, recording the move
// in the append-only stage history inside the same transaction. actor
// is the human name, or ActorAISystem when the screening orchestrator
// drives the transition.
func (s *CandidateService) TransitionStage(ctx context.Context, id string, to model.Stage, actor string, reason *string) (*model.DTO, error) {
	candidate, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateStageTransition(candidate.CurrentStage, to); err != nil {
		return nil, err
	}

	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		return s.transitionStageTx(ctx, tx, candidate, to, actor, reason)
	})
	if err != nil {
		return nil, err
	}

	candidate.CurrentStage = to
	return candidate.ToDTO(), nil
}

func validateStageTransition(from, to model.Stage) error {
	if from == to {
		return apperr.NoOpTransition("candidate is already in this stage")
	}
	if !model.CanTransitionStage(from, to) {
		return apperr.IllegalTransition("cannot move candidate from " + string(from) + " to " + string(to))
	}
	return nil
}

func (s *CandidateService) transitionStageTx(ctx context.Context, q postgres.Querier, candidate *model.Candidate, to model.Stage, actor string, reason *string) error {
	from := string(candidate.CurrentStage)
	if err := s.repo.UpdateStage(ctx, q, candidate.ID, to); err != nil {
		return err
	}
	_, err := s.auditRepo.RecordStageChange(ctx, q, candidate.ID, &from, string(to), actor, reason)
	return err
}

// CurrentStage and AdvanceStage satisfy the interviews and screenings
// modules' CandidateStageDriver interface, letting them drive pipeline
// stage transitions without importing this package's concrete types.
// AdvanceStage runs inside the caller's transaction so the stage move
// lands atomically with whatever triggered it.
func (s *CandidateService) CurrentStage(ctx context.Context, candidateID string) (string, error) {
	c, err := s.repo.GetByID(ctx, candidateID)
	if err != nil {
		return "", err
	}
	return string(c.CurrentStage), nil
}

func (s *CandidateService) AdvanceStage(ctx context.Context, q postgres.Querier, candidateID, toStage, actor string) error {
	candidate, err := s.repo.GetByID(ctx, candidateID)
	if err != nil {
		return err
	}
	to := model.Stage(toStage)
	if err := validateStageTransition(candidate.CurrentStage, to); err != nil {
		return err
	}
	return s.transitionStageTx(ctx, q, candidate, to, actor, nil)
}

func (s *CandidateService) UpdateProfile(ctx context.Context, id string, req *model.UpdateProfileRequest) (*model.DTO, error) {
	candidate, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		return s.repo.UpdateProfile(ctx, tx, id, req.Name, req.Phone)
	})
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		candidate.Name = *req.Name
	}
	if req.Phone != nil {
		candidate.Phone = req.Phone
	}
	return candidate.ToDTO(), nil
}

// Delete removes a candidate that has not reached HIRED, cascading the
// delete to its owned interviews, screenings and history inside one
// transaction rather than relying on database foreign-key cascades.
func (s *CandidateService) Delete(ctx context.Context, id string) error {
	candidate, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if candidate.CurrentStage == model.StageHired {
		return apperr.Forbidden("a hired candidate's record cannot be deleted")
	}

	return s.db.WithTx(ctx, func(tx pgx.Tx) error {
		if s.interviews != nil {
			if err := s.interviews.DeleteByCandidate(ctx, tx, id); err != nil {
				return err
			}
		}
		if s.screenings != nil {
			if err := s.screenings.DeleteByCandidate(ctx, tx, id); err != nil {
				return err
			}
		}
		if s.stageHistory != nil {
			if err := s.stageHistory.DeleteByCandidate(ctx, tx, id); err != nil {
				return err
			}
		}
		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *CandidateService) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *CandidateService) ByStage(ctx context.Context, stage model.Stage) ([]*model.DTO, error) {
	candidates, err := s.repo.ByStage(ctx, stage)
	if err != nil {
		return nil, err
	}
	return toDTOs(candidates), nil
}

// ExtractResumeText resolves a candidate's stored resume blob to plain
// text for the screening orchestrator.
func (s *CandidateService) ExtractResumeText(ctx context.Context, candidateID string) (string, error) {
	candidate, err := s.repo.GetByID(ctx, candidateID)
	if err != nil {
		return "", err
	}
	if candidate.ResumeBlobRef == nil {
		return "", apperr.Validation("candidate has no resume on file")
	}

	data, err := s.blobs.Read(ctx, *candidate.ResumeBlobRef)
	if err != nil {
		return "", apperr.Internal("failed to read resume blob", err)
	}
	return s.extractor.Extract(ctx, *candidate.ResumeBlobRef, data)
}
