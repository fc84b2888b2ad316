package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/feedback/model"
	"github.com/jobber-ats/core/modules/feedback/ports"
)

const (
	minScore = 1
	maxScore = 5
)

type FeedbackService struct {
	db           *postgres.Client
	repo         ports.FeedbackRepository
	interviews   ports.InterviewLookup
	interviewers ports.InterviewerExistence
}

func NewFeedbackService(db *postgres.Client, repo ports.FeedbackRepository, interviews ports.InterviewLookup, interviewers ports.InterviewerExistence) *FeedbackService {
	return &FeedbackService{db: db, repo: repo, interviews: interviews, interviewers: interviewers}
}

// Submit records one interviewer's structured assessment of a completed
// interview. It validates the interview is COMPLETED, that the submitter
// is the interviewer of record, that the pair (interview, interviewer)
// has not already submitted feedback, and that every required score is
// present and in range.
func (s *FeedbackService) Submit(ctx context.Context, interviewID string, req model.SubmitFeedbackRequest) (*model.DTO, error) {
	exists, err := s.interviewers.Exists(ctx, req.InterviewerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("interviewer not found")
	}

	status, interviewerOfRecord, _, err := s.interviews.InterviewStatusAndInterviewer(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if status != "COMPLETED" {
		return nil, apperr.IllegalTransition("feedback can only be submitted for a completed interview")
	}
	if interviewerOfRecord != req.InterviewerID {
		return nil, apperr.Forbidden("only the interviewer of record may submit feedback for this interview")
	}

	duplicate, err := s.repo.ExistsForInterviewAndInterviewer(ctx, interviewID, req.InterviewerID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, apperr.DuplicateFeedback("feedback already submitted by this interviewer for this interview")
	}

	if err := validateScores(req); err != nil {
		return nil, err
	}

	f := &model.Feedback{
		InterviewID:    interviewID,
		InterviewerID:  req.InterviewerID,
		Technical:      *req.Technical,
		Communication:  *req.Communication,
		ProblemSolving: *req.ProblemSolving,
		CulturalFit:    req.CulturalFit,
		Strengths:      req.Strengths,
		Weaknesses:     req.Weaknesses,
		Comments:       req.Comments,
		Recommendation: req.Recommendation,
	}

	if err := s.db.WithTx(ctx, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, f)
	}); err != nil {
		return nil, err
	}

	return f.ToDTO(), nil
}

func validateScores(req model.SubmitFeedbackRequest) error {
	var fieldErrs []apperr.FieldError

	checkRequired := func(name string, v *int) {
		if v == nil {
			fieldErrs = append(fieldErrs, apperr.FieldError{Field: name, Message: "is required"})
			return
		}
		if *v < minScore || *v > maxScore {
			fieldErrs = append(fieldErrs, apperr.FieldError{Field: name, RejectedValue: *v, Message: "must be between 1 and 5"})
		}
	}
	checkRequired("technical", req.Technical)
	checkRequired("communication", req.Communication)
	checkRequired("problemSolving", req.ProblemSolving)

	if req.CulturalFit != nil && (*req.CulturalFit < minScore || *req.CulturalFit > maxScore) {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "culturalFit", RejectedValue: *req.CulturalFit, Message: "must be between 1 and 5"})
	}

	if req.Recommendation == "" || !model.ValidRecommendation(req.Recommendation) {
		fieldErrs = append(fieldErrs, apperr.FieldError{Field: "recommendation", Message: "must be one of STRONG_HIRE, HIRE, MAYBE, NO_HIRE"})
	}

	if len(fieldErrs) > 0 {
		return apperr.Validation("feedback validation failed", fieldErrs...)
	}
	return nil
}

func (s *FeedbackService) ListByInterview(ctx context.Context, interviewID string) ([]*model.DTO, error) {
	list, err := s.repo.ListByInterview(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

func (s *FeedbackService) ListByInterviewer(ctx context.Context, interviewerID string) ([]*model.DTO, error) {
	list, err := s.repo.ListByInterviewer(ctx, interviewerID)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

func (s *FeedbackService) ListPositive(ctx context.Context) ([]*model.DTO, error) {
	list, err := s.repo.ListPositive(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(list), nil
}

func (s *FeedbackService) CandidateAverage(ctx context.Context, candidateID string) (*model.CandidateAverage, error) {
	return s.repo.CandidateAverage(ctx, candidateID)
}

func (s *FeedbackService) InterviewerStats(ctx context.Context, interviewerID string) (*model.InterviewerStats, error) {
	return s.repo.InterviewerStats(ctx, interviewerID)
}

// DeleteByCandidate satisfies the candidates module's ScreeningCascade-style
// cascade surface for feedback tied to a candidate's interviews.
func (s *FeedbackService) DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error {
	return s.repo.DeleteByCandidate(ctx, q, candidateID)
}

func toDTOs(list []*model.Feedback) []*model.DTO {
	dtos := make([]*model.DTO, 0, len(list))
	for _, f := range list {
		dtos = append(dtos, f.ToDTO())
	}
	return dtos
}
