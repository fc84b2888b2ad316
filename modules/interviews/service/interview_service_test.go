package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/interviews/model"
	"github.com/jobber-ats/core/modules/interviews/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockInterviewRepo struct {
	CreateFunc                    func(ctx context.Context, q postgres.Querier, i *model.Interview) error
	GetByIDFunc                   func(ctx context.Context, id string) (*model.Interview, error)
	GetByIDForUpdateFunc          func(ctx context.Context, q postgres.Querier, id string) (*model.Interview, error)
	NonTerminalForInterviewerFunc func(ctx context.Context, q postgres.Querier, interviewerID string, windowStart, windowEnd time.Time, excludeID string) ([]*model.Interview, error)
	LockInterviewerFunc           func(ctx context.Context, q postgres.Querier, interviewerID string) error
	UpdateStatusFunc              func(ctx context.Context, q postgres.Querier, id string, status model.Status) error
	UpdateScheduleFunc            func(ctx context.Context, q postgres.Querier, id string, scheduledAt time.Time, durationMin int) error
	ListFunc                      func(ctx context.Context, opts ports.ListOptions) ([]*model.Interview, int, error)
	ListByCandidateFunc           func(ctx context.Context, candidateID string) ([]*model.Interview, error)
	ListByInterviewerFunc         func(ctx context.Context, interviewerID string, from, to time.Time) ([]*model.Interview, error)
	ScheduledTodayFunc            func(ctx context.Context, dayStart, dayEnd time.Time) ([]*model.Interview, error)
	CompletedWithoutFeedbackFunc  func(ctx context.Context) ([]*model.Interview, error)
	HasInterviewsForInterviewerFunc func(ctx context.Context, interviewerID string) (bool, error)
	DeleteByCandidateFunc         func(ctx context.Context, q postgres.Querier, candidateID string) error
}

func (m *mockInterviewRepo) Create(ctx context.Context, q postgres.Querier, i *model.Interview) error {
	return m.CreateFunc(ctx, q, i)
}
func (m *mockInterviewRepo) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockInterviewRepo) GetByIDForUpdate(ctx context.Context, q postgres.Querier, id string) (*model.Interview, error) {
	return m.GetByIDForUpdateFunc(ctx, q, id)
}
func (m *mockInterviewRepo) NonTerminalForInterviewer(ctx context.Context, q postgres.Querier, interviewerID string, windowStart, windowEnd time.Time, excludeID string) ([]*model.Interview, error) {
	return m.NonTerminalForInterviewerFunc(ctx, q, interviewerID, windowStart, windowEnd, excludeID)
}
func (m *mockInterviewRepo) LockInterviewer(ctx context.Context, q postgres.Querier, interviewerID string) error {
	return m.LockInterviewerFunc(ctx, q, interviewerID)
}
func (m *mockInterviewRepo) UpdateStatus(ctx context.Context, q postgres.Querier, id string, status model.Status) error {
	return m.UpdateStatusFunc(ctx, q, id, status)
}
func (m *mockInterviewRepo) UpdateSchedule(ctx context.Context, q postgres.Querier, id string, scheduledAt time.Time, durationMin int) error {
	return m.UpdateScheduleFunc(ctx, q, id, scheduledAt, durationMin)
}
func (m *mockInterviewRepo) List(ctx context.Context, opts ports.ListOptions) ([]*model.Interview, int, error) {
	return m.ListFunc(ctx, opts)
}
func (m *mockInterviewRepo) ListByCandidate(ctx context.Context, candidateID string) ([]*model.Interview, error) {
	return m.ListByCandidateFunc(ctx, candidateID)
}
func (m *mockInterviewRepo) ListByInterviewer(ctx context.Context, interviewerID string, from, to time.Time) ([]*model.Interview, error) {
	return m.ListByInterviewerFunc(ctx, interviewerID, from, to)
}
func (m *mockInterviewRepo) ScheduledToday(ctx context.Context, dayStart, dayEnd time.Time) ([]*model.Interview, error) {
	return m.ScheduledTodayFunc(ctx, dayStart, dayEnd)
}
func (m *mockInterviewRepo) CompletedWithoutFeedback(ctx context.Context) ([]*model.Interview, error) {
	return m.CompletedWithoutFeedbackFunc(ctx)
}
func (m *mockInterviewRepo) HasInterviewsForInterviewer(ctx context.Context, interviewerID string) (bool, error) {
	return m.HasInterviewsForInterviewerFunc(ctx, interviewerID)
}
func (m *mockInterviewRepo) DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error {
	return m.DeleteByCandidateFunc(ctx, q, candidateID)
}

type mockCandidateStageDriver struct {
	exists  bool
	stage   string
	existsErr error
}

func (m *mockCandidateStageDriver) Exists(ctx context.Context, candidateID string) (bool, error) {
	return m.exists, m.existsErr
}
func (m *mockCandidateStageDriver) CurrentStage(ctx context.Context, candidateID string) (string, error) {
	return m.stage, nil
}
func (m *mockCandidateStageDriver) AdvanceStage(ctx context.Context, q postgres.Querier, candidateID, toStage, actor string) error {
	return nil
}

func alwaysExists(ctx context.Context, id string) (bool, error) { return true, nil }

func TestInterviewService_Schedule_CandidateNotFound(t *testing.T) {
	candidates := &mockCandidateStageDriver{exists: false}
	svc := NewInterviewService(nil, &mockInterviewRepo{}, nil, alwaysExists, candidates)

	_, err := svc.Schedule(context.Background(), &model.ScheduleRequest{
		CandidateID: "c1", InterviewerID: "i1", ScheduledAt: time.Now().Add(24 * time.Hour), DurationMin: 60,
	})

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}

func TestInterviewService_Schedule_InterviewerNotFound(t *testing.T) {
	candidates := &mockCandidateStageDriver{exists: true, stage: "SCREENING"}
	neverExists := func(ctx context.Context, id string) (bool, error) { return false, nil }
	svc := NewInterviewService(nil, &mockInterviewRepo{}, nil, neverExists, candidates)

	_, err := svc.Schedule(context.Background(), &model.ScheduleRequest{
		CandidateID: "c1", InterviewerID: "i1", ScheduledAt: time.Now().Add(24 * time.Hour), DurationMin: 60,
	})

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}

func TestInterviewService_Schedule_RejectsPastTime(t *testing.T) {
	candidates := &mockCandidateStageDriver{exists: true, stage: "SCREENING"}
	svc := NewInterviewService(nil, &mockInterviewRepo{}, nil, alwaysExists, candidates)

	_, err := svc.Schedule(context.Background(), &model.ScheduleRequest{
		CandidateID: "c1", InterviewerID: "i1", ScheduledAt: time.Now().Add(-time.Hour), DurationMin: 60,
	})

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindValidationError, appErr.Kind)
}

func TestInterviewService_Schedule_RejectsOutOfRangeDuration(t *testing.T) {
	candidates := &mockCandidateStageDriver{exists: true, stage: "SCREENING"}
	svc := NewInterviewService(nil, &mockInterviewRepo{}, nil, alwaysExists, candidates)

	_, err := svc.Schedule(context.Background(), &model.ScheduleRequest{
		CandidateID: "c1", InterviewerID: "i1", ScheduledAt: time.Now().Add(24 * time.Hour), DurationMin: 5,
	})

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindValidationError, appErr.Kind)
}

func TestInterviewService_Schedule_RejectsIneligibleStage(t *testing.T) {
	candidates := &mockCandidateStageDriver{exists: true, stage: "APPLIED"}
	svc := NewInterviewService(nil, &mockInterviewRepo{}, nil, alwaysExists, candidates)

	_, err := svc.Schedule(context.Background(), &model.ScheduleRequest{
		CandidateID: "c1", InterviewerID: "i1", ScheduledAt: time.Now().Add(24 * time.Hour), DurationMin: 60,
	})

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindIllegalTransition, appErr.Kind)
}

func TestInterviewService_TransitionStatus_NoOp(t *testing.T) {
	repo := &mockInterviewRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Interview, error) {
			return &model.Interview{ID: id, Status: model.StatusScheduled}, nil
		},
	}
	svc := NewInterviewService(nil, repo, nil, alwaysExists, nil)

	_, err := svc.TransitionStatus(context.Background(), "i1", &model.TransitionStatusRequest{Status: model.StatusScheduled})

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindNoOpTransition, appErr.Kind)
}

func TestInterviewService_TransitionStatus_IllegalMove(t *testing.T) {
	repo := &mockInterviewRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Interview, error) {
			return &model.Interview{ID: id, Status: model.StatusCompleted}, nil
		},
	}
	svc := NewInterviewService(nil, repo, nil, alwaysExists, nil)

	_, err := svc.TransitionStatus(context.Background(), "i1", &model.TransitionStatusRequest{Status: model.StatusScheduled})

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindIllegalTransition, appErr.Kind)
}

func TestInterviewService_Reschedule_RejectsTerminalInterview(t *testing.T) {
	repo := &mockInterviewRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Interview, error) {
			return &model.Interview{ID: id, Status: model.StatusCancelled}, nil
		},
	}
	svc := NewInterviewService(nil, repo, nil, alwaysExists, nil)

	_, err := svc.Reschedule(context.Background(), "i1", &model.RescheduleRequest{NewScheduledAt: time.Now().Add(48 * time.Hour)})

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindIllegalTransition, appErr.Kind)
}

func TestInterviewService_Cancel_RejectsAlreadyTerminal(t *testing.T) {
	repo := &mockInterviewRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Interview, error) {
			return &model.Interview{ID: id, Status: model.StatusCompleted}, nil
		},
	}
	svc := NewInterviewService(nil, repo, nil, alwaysExists, nil)

	_, err := svc.Cancel(context.Background(), "i1", &model.CancelRequest{})

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindIllegalTransition, appErr.Kind)
}

func TestInterviewService_GetByID(t *testing.T) {
	repo := &mockInterviewRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Interview, error) {
			return &model.Interview{ID: id, Status: model.StatusScheduled}, nil
		},
	}
	svc := NewInterviewService(nil, repo, nil, alwaysExists, nil)

	dto, err := svc.GetByID(context.Background(), "i1")

	require.NoError(t, err)
	assert.Equal(t, "i1", dto.ID)
}

func TestInterviewService_IsAvailable(t *testing.T) {
	start := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	repo := &mockInterviewRepo{
		NonTerminalForInterviewerFunc: func(ctx context.Context, q postgres.Querier, interviewerID string, windowStart, windowEnd time.Time, excludeID string) ([]*model.Interview, error) {
			return nil, nil
		},
	}
	svc := NewInterviewService(&postgres.Client{}, repo, nil, alwaysExists, nil)

	available, err := svc.IsAvailable(context.Background(), "int-1", start, end)

	require.NoError(t, err)
	assert.True(t, available)
}

func TestInterviewService_IsAvailable_ConflictingWindow(t *testing.T) {
	start := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	repo := &mockInterviewRepo{
		NonTerminalForInterviewerFunc: func(ctx context.Context, q postgres.Querier, interviewerID string, windowStart, windowEnd time.Time, excludeID string) ([]*model.Interview, error) {
			return []*model.Interview{{InterviewerID: interviewerID, ScheduledAt: start.Add(30 * time.Minute), DurationMin: 60}}, nil
		},
	}
	svc := NewInterviewService(&postgres.Client{}, repo, nil, alwaysExists, nil)

	available, err := svc.IsAvailable(context.Background(), "int-1", start, end)

	require.NoError(t, err)
	assert.False(t, available)
}
