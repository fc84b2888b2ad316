package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/llmclient"
	"github.com/jobber-ats/core/internal/platform/logger"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/internal/platform/workerpool"
	"github.com/jobber-ats/core/modules/screenings/model"
	"github.com/jobber-ats/core/modules/screenings/ports"
	"go.uber.org/zap"
)

const minResumeChars = 100

// actorAISystem is the reserved principal the orchestrator authors
// stage transitions under. Mirrors candidates/service.ActorAISystem's
// value without a concrete import of that module.
const actorAISystem = "AI_SYSTEM"

// resumePresenceTokens is the set of which at least one, case
// insensitively, must appear in extracted resume text for it to be
// considered plausible prose rather than extraction noise.
var resumePresenceTokens = []string{"email", "@", "experience", "work", "project", "education", "degree", "university"}

type ScreeningService struct {
	db         *postgres.Client
	repo       ports.ScreeningRepository
	candidates ports.CandidateDriver
	analyzer   llmclient.Analyzer
	pool       *workerpool.Pool
	log        *logger.Logger
}

func NewScreeningService(
	db *postgres.Client,
	repo ports.ScreeningRepository,
	candidates ports.CandidateDriver,
	analyzer llmclient.Analyzer,
	pool *workerpool.Pool,
	log *logger.Logger,
) *ScreeningService {
	return &ScreeningService{db: db, repo: repo, candidates: candidates, analyzer: analyzer, pool: pool, log: log}
}

// Screen runs the pipeline synchronously and returns the persisted
// result.
func (s *ScreeningService) Screen(ctx context.Context, req model.ScreenRequest) (*model.DTO, error) {
	exists, err := s.candidates.Exists(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("candidate not found")
	}

	resumeText, err := s.candidates.ExtractResumeText(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	if err := validateResumeText(resumeText); err != nil {
		return nil, err
	}

	result, modelUsed, processingMs, usedFallback := s.analyze(ctx, resumeText, req.JobDescription)

	screening := &model.AIScreening{
		CandidateID:    req.CandidateID,
		Skills:         result.Skills,
		Experience:     result.Experience,
		Education:      result.Education,
		CulturalFit:    result.CulturalFit,
		MatchScore:     result.MatchScore,
		Analysis:       result.Analysis,
		Recommendation: result.Recommendation,
		ModelUsed:      modelUsed,
		ProcessingMs:   processingMs,
		Fallback:       usedFallback,
	}

	if err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.Create(ctx, tx, screening); err != nil {
			return err
		}

		stage, err := s.candidates.CurrentStage(ctx, req.CandidateID)
		if err != nil {
			return err
		}
		if stage == "APPLIED" {
			if err := s.candidates.AdvanceStage(ctx, tx, req.CandidateID, "SCREENING", actorAISystem); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return screening.ToDTO(), nil
}

// ScreenAsync submits the screening pipeline to the bounded worker
// pool and returns immediately. Errors are logged, not surfaced: the
// caller has already moved on.
func (s *ScreeningService) ScreenAsync(req model.ScreenRequest) {
	s.pool.Submit(func(ctx context.Context) {
		if _, err := s.Screen(ctx, req); err != nil {
			s.log.WithAction("screen-async").WithEntity(req.CandidateID).Error("async screening failed", zap.Error(err))
		}
	})
}

// BulkAsync fans a batch of candidates out across the worker pool,
// sharing one job description.
func (s *ScreeningService) BulkAsync(req model.BulkScreenRequest) {
	for _, candidateID := range req.CandidateIDs {
		s.ScreenAsync(model.ScreenRequest{CandidateID: candidateID, JobDescription: req.JobDescription})
	}
}

func (s *ScreeningService) GetByID(ctx context.Context, id string) (*model.DTO, error) {
	screening, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return screening.ToDTO(), nil
}

func (s *ScreeningService) ListByCandidate(ctx context.Context, candidateID string) ([]*model.DTO, error) {
	screenings, err := s.repo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*model.DTO, 0, len(screenings))
	for _, sc := range screenings {
		dtos = append(dtos, sc.ToDTO())
	}
	return dtos, nil
}

// DeleteByCandidate satisfies candidates/ports.ScreeningCascade.
func (s *ScreeningService) DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error {
	return s.repo.DeleteByCandidate(ctx, q, candidateID)
}

// analyze calls the external model and falls back to the keyword
// heuristic on any transport or parse failure. The screening always
// produces a result, per the orchestrator's swallow-and-log policy.
func (s *ScreeningService) analyze(ctx context.Context, resumeText string, jobDescription *string) (result *parsedResult, modelUsed string, processingMs int64, usedFallback bool) {
	if s.analyzer == nil {
		return fallbackAnalysis(resumeText), "keyword-heuristic", 0, true
	}

	prompt := buildPrompt(resumeText, jobDescription)

	start := time.Now()
	text, modelName, err := s.analyzer.Analyze(ctx, prompt)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		s.log.WithAction("screen").Warn("llm call failed, using fallback analyzer", zap.Error(err))
		return fallbackAnalysis(resumeText), modelName, elapsed, true
	}

	parsed, err := parseResponse(text)
	if err != nil {
		s.log.WithAction("screen").Warn("llm response unparseable, using fallback analyzer", zap.Error(err))
		return fallbackAnalysis(resumeText), modelName, elapsed, true
	}

	return parsed, modelName, elapsed, false
}

func validateResumeText(text string) error {
	if len(text) < minResumeChars {
		return apperr.Validation("resume text is too short to screen")
	}

	lower := strings.ToLower(text)
	for _, token := range resumePresenceTokens {
		if strings.Contains(lower, token) {
			return nil
		}
	}
	return apperr.Validation("resume text does not look like a resume")
}
