package service

import (
	"context"
	"errors"
	"time"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/postgres"
	auditPorts "github.com/jobber-ats/core/modules/audit/ports"
	"github.com/jobber-ats/core/modules/interviews/model"
	"github.com/jobber-ats/core/modules/interviews/ports"
	"github.com/jackc/pgx/v5"
)

const (
	minDurationMin = 15
	maxDurationMin = 480
	overlapWindow  = 2 * time.Hour
)

// candidateStagesEligibleForScheduling are the candidate stages a new
// interview may be scheduled against.
var candidateStagesEligibleForScheduling = map[string]bool{
	"SCREENING":           true,
	"INTERVIEW_SCHEDULED": true,
	"INTERVIEW_COMPLETED": true,
}

type InterviewService struct {
	db                *postgres.Client
	repo              ports.InterviewRepository
	auditRepo         auditPorts.AuditRepository
	interviewerExists func(ctx context.Context, id string) (bool, error)
	candidates        ports.CandidateStageDriver
}

func NewInterviewService(
	db *postgres.Client,
	repo ports.InterviewRepository,
	auditRepo auditPorts.AuditRepository,
	interviewerExists func(ctx context.Context, id string) (bool, error),
	candidates ports.CandidateStageDriver,
) *InterviewService {
	return &InterviewService{
		db:                db,
		repo:              repo,
		auditRepo:         auditRepo,
		interviewerExists: interviewerExists,
		candidates:        candidates,
	}
}

// Schedule books a new interview, serializing the conflict check and
// insert per interviewer under a Postgres advisory lock so two
// concurrent schedule attempts for the same interviewer cannot both
// observe a conflict-free window.
func (s *InterviewService) Schedule(ctx context.Context, req *model.ScheduleRequest) (*model.DTO, error) {
	exists, err := s.candidates.Exists(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("candidate not found")
	}

	interviewerOK, err := s.interviewerExists(ctx, req.InterviewerID)
	if err != nil {
		return nil, err
	}
	if !interviewerOK {
		return nil, apperr.NotFound("interviewer not found")
	}

	if !req.ScheduledAt.After(time.Now()) {
		return nil, apperr.Validation("scheduledAt must be in the future",
			apperr.FieldError{Field: "scheduledAt", Message: "must be in the future"})
	}
	if req.DurationMin < minDurationMin || req.DurationMin > maxDurationMin {
		return nil, apperr.Validation("duration must be between 15 and 480 minutes",
			apperr.FieldError{Field: "durationMin", RejectedValue: req.DurationMin, Message: "must be between 15 and 480"})
	}

	stage, err := s.candidates.CurrentStage(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}
	if !candidateStagesEligibleForScheduling[stage] {
		return nil, apperr.IllegalTransition("candidate is not in a stage eligible for scheduling an interview")
	}

	interview := &model.Interview{
		CandidateID:   req.CandidateID,
		InterviewerID: req.InterviewerID,
		ScheduledAt:   req.ScheduledAt,
		DurationMin:   req.DurationMin,
		Type:          req.Type,
		Location:      req.Location,
		Notes:         req.Notes,
		Status:        model.StatusScheduled,
	}

	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.LockInterviewer(ctx, tx, req.InterviewerID); err != nil {
			return err
		}
		if err := s.checkConflict(ctx, tx, interview, ""); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, tx, interview); err != nil {
			return err
		}
		if _, err := s.auditRepo.RecordStatusChange(ctx, tx, interview.ID, string(model.StatusScheduled), req.Who, nil); err != nil {
			return err
		}
		if stage == "SCREENING" {
			return s.candidates.AdvanceStage(ctx, tx, req.CandidateID, "INTERVIEW_SCHEDULED", req.Who)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return interview.ToDTO(), nil
}

// checkConflict loads the non-terminal interviews for the interviewer
// in a window around the proposed slot and applies the exact half-open
// overlap test. excludeID omits the interview being rescheduled.
func (s *InterviewService) checkConflict(ctx context.Context, q postgres.Querier, candidate *model.Interview, excludeID string) error {
	windowStart := candidate.ScheduledAt.Add(-overlapWindow)
	windowEnd := candidate.EndsAt().Add(overlapWindow)

	existing, err := s.repo.NonTerminalForInterviewer(ctx, q, candidate.InterviewerID, windowStart, windowEnd, excludeID)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if candidate.Overlaps(other) {
			return apperr.SchedulingConflict(candidate.InterviewerID, other.ScheduledAt)
		}
	}
	return nil
}

// Reschedule moves an interview to a new time, re-running the conflict
// check against the interviewer's other interviews. The history
// retains a transition to RESCHEDULED immediately followed, in the same
// transaction, by a synthetic transition back to SCHEDULED.
func (s *InterviewService) Reschedule(ctx context.Context, interviewID string, req *model.RescheduleRequest) (*model.DTO, error) {
	interview, err := s.repo.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status == model.StatusCompleted || interview.Status == model.StatusCancelled {
		return nil, apperr.IllegalTransition("cannot reschedule a completed or cancelled interview")
	}
	if !req.NewScheduledAt.After(time.Now()) {
		return nil, apperr.Validation("newScheduledAt must be in the future",
			apperr.FieldError{Field: "newScheduledAt", Message: "must be in the future"})
	}
	duration := interview.DurationMin
	if req.NewDurationMin != nil {
		duration = *req.NewDurationMin
	}
	if duration < minDurationMin || duration > maxDurationMin {
		return nil, apperr.Validation("duration must be between 15 and 480 minutes",
			apperr.FieldError{Field: "newDurationMin", RejectedValue: duration, Message: "must be between 15 and 480"})
	}

	candidate := &model.Interview{InterviewerID: interview.InterviewerID, ScheduledAt: req.NewScheduledAt, DurationMin: duration}

	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.LockInterviewer(ctx, tx, interview.InterviewerID); err != nil {
			return err
		}
		if err := s.checkConflict(ctx, tx, candidate, interview.ID); err != nil {
			return err
		}
		if err := s.repo.UpdateSchedule(ctx, tx, interview.ID, req.NewScheduledAt, duration); err != nil {
			return err
		}
		reason := req.Reason
		if _, err := s.auditRepo.RecordStatusChange(ctx, tx, interview.ID, string(model.StatusRescheduled), req.Who, &reason); err != nil {
			return err
		}
		if err := s.repo.UpdateStatus(ctx, tx, interview.ID, model.StatusScheduled); err != nil {
			return err
		}
		_, err := s.auditRepo.RecordStatusChange(ctx, tx, interview.ID, string(model.StatusScheduled), req.Who, &reason)
		return err
	})
	if err != nil {
		return nil, err
	}

	interview.ScheduledAt = req.NewScheduledAt
	interview.DurationMin = duration
	interview.Status = model.StatusScheduled
	return interview.ToDTO(), nil
}

// Cancel transitions an interview to CANCELLED.
func (s *InterviewService) Cancel(ctx context.Context, interviewID string, req *model.CancelRequest) (*model.DTO, error) {
	interview, err := s.repo.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status == model.StatusCompleted || interview.Status == model.StatusCancelled {
		return nil, apperr.IllegalTransition("interview is already completed or cancelled")
	}

	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.UpdateStatus(ctx, tx, interviewID, model.StatusCancelled); err != nil {
			return err
		}
		reason := req.Reason
		_, err := s.auditRepo.RecordStatusChange(ctx, tx, interviewID, string(model.StatusCancelled), req.Who, &reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	interview.Status = model.StatusCancelled
	return interview.ToDTO(), nil
}

// TransitionStatus drives the general status machine (SCHEDULED ->
// IN_PROGRESS -> COMPLETED, or straight to CANCELLED). On a transition
// to COMPLETED it advances the candidate from INTERVIEW_SCHEDULED to
// INTERVIEW_COMPLETED in the same transaction.
func (s *InterviewService) TransitionStatus(ctx context.Context, interviewID string, req *model.TransitionStatusRequest) (*model.DTO, error) {
	interview, err := s.repo.GetByID(ctx, interviewID)
	if err != nil {
		return nil, err
	}
	if interview.Status == req.Status {
		return nil, apperr.NoOpTransition("interview already has this status")
	}
	if !model.CanTransitionStatus(interview.Status, req.Status) {
		return nil, apperr.IllegalTransition("cannot move interview from " + string(interview.Status) + " to " + string(req.Status))
	}

	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.repo.UpdateStatus(ctx, tx, interviewID, req.Status); err != nil {
			return err
		}
		if _, err := s.auditRepo.RecordStatusChange(ctx, tx, interviewID, string(req.Status), req.Who, req.Notes); err != nil {
			return err
		}
		if req.Status == model.StatusCompleted {
			stage, err := s.candidates.CurrentStage(ctx, interview.CandidateID)
			if err != nil {
				return err
			}
			if stage == "INTERVIEW_SCHEDULED" {
				return s.candidates.AdvanceStage(ctx, tx, interview.CandidateID, "INTERVIEW_COMPLETED", req.Who)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	interview.Status = req.Status
	return interview.ToDTO(), nil
}

// Exists reports whether an interview with the given id is on file,
// letting the history endpoint 404 on an unknown interview rather than
// returning an empty transition list.
func (s *InterviewService) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, id)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) && appErr.Kind == apperr.KindNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *InterviewService) GetByID(ctx context.Context, id string) (*model.DTO, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return i.ToDTO(), nil
}

// InterviewStatusAndInterviewer satisfies the feedback module's
// InterviewLookup interface: feedback submission needs to know whether
// the interview is COMPLETED and who its interviewer of record is,
// without importing this package's concrete Interview type.
func (s *InterviewService) InterviewStatusAndInterviewer(ctx context.Context, interviewID string) (string, string, string, error) {
	i, err := s.repo.GetByID(ctx, interviewID)
	if err != nil {
		return "", "", "", err
	}
	return string(i.Status), i.InterviewerID, i.CandidateID, nil
}

func (s *InterviewService) List(ctx context.Context, opts ports.ListOptions) ([]*model.DTO, int, error) {
	interviews, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	return toDTOs(interviews), total, nil
}

func (s *InterviewService) ListByCandidate(ctx context.Context, candidateID string) ([]*model.DTO, error) {
	interviews, err := s.repo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	return toDTOs(interviews), nil
}

// FindAvailable returns all interviewer ids with no non-terminal
// interview overlapping [start, end) from the candidate pool supplied
// by the caller (the interviewers module owns the roster).
func (s *InterviewService) FindAvailable(ctx context.Context, interviewerIDs []string, start, end time.Time) ([]string, error) {
	var available []string
	for _, id := range interviewerIDs {
		ok, err := s.IsAvailable(ctx, id, start, end)
		if err != nil {
			return nil, err
		}
		if ok {
			available = append(available, id)
		}
	}
	return available, nil
}

// IsAvailable reports whether interviewerID has no non-terminal
// interview overlapping [start, end).
func (s *InterviewService) IsAvailable(ctx context.Context, interviewerID string, start, end time.Time) (bool, error) {
	probe := &model.Interview{InterviewerID: interviewerID, ScheduledAt: start, DurationMin: int(end.Sub(start).Minutes())}
	existing, err := s.repo.NonTerminalForInterviewer(ctx, s.poolQuerier(), interviewerID, start.Add(-overlapWindow), end.Add(overlapWindow), "")
	if err != nil {
		return false, err
	}
	for _, other := range existing {
		if probe.Overlaps(other) {
			return false, nil
		}
	}
	return true, nil
}

// poolQuerier lets read-only helpers reuse the repository's querier-
// accepting methods outside of a transaction.
func (s *InterviewService) poolQuerier() postgres.Querier {
	return s.db.Pool
}

func (s *InterviewService) ScheduledToday(ctx context.Context, dayStart, dayEnd time.Time) ([]*model.DTO, error) {
	interviews, err := s.repo.ScheduledToday(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	return toDTOs(interviews), nil
}

func (s *InterviewService) CompletedWithoutFeedback(ctx context.Context) ([]*model.DTO, error) {
	interviews, err := s.repo.CompletedWithoutFeedback(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(interviews), nil
}

func (s *InterviewService) HasInterviewsForInterviewer(ctx context.Context, interviewerID string) (bool, error) {
	return s.repo.HasInterviewsForInterviewer(ctx, interviewerID)
}

func (s *InterviewService) DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error {
	return s.repo.DeleteByCandidate(ctx, q, candidateID)
}

func toDTOs(interviews []*model.Interview) []*model.DTO {
	dtos := make([]*model.DTO, 0, len(interviews))
	for _, i := range interviews {
		dtos = append(dtos, i.ToDTO())
	}
	return dtos
}
