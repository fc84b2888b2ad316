package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/feedback/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFeedbackRepo struct {
	CreateFunc                            func(ctx context.Context, q postgres.Querier, f *model.Feedback) error
	ExistsForInterviewAndInterviewerFunc  func(ctx context.Context, interviewID, interviewerID string) (bool, error)
	ListByInterviewFunc                   func(ctx context.Context, interviewID string) ([]*model.Feedback, error)
	ListByInterviewerFunc                 func(ctx context.Context, interviewerID string) ([]*model.Feedback, error)
	ListPositiveFunc                      func(ctx context.Context) ([]*model.Feedback, error)
	CandidateAverageFunc                  func(ctx context.Context, candidateID string) (*model.CandidateAverage, error)
	InterviewerStatsFunc                  func(ctx context.Context, interviewerID string) (*model.InterviewerStats, error)
	DeleteByCandidateFunc                 func(ctx context.Context, q postgres.Querier, candidateID string) error
}

func (m *mockFeedbackRepo) Create(ctx context.Context, q postgres.Querier, f *model.Feedback) error {
	return m.CreateFunc(ctx, q, f)
}
func (m *mockFeedbackRepo) ExistsForInterviewAndInterviewer(ctx context.Context, interviewID, interviewerID string) (bool, error) {
	return m.ExistsForInterviewAndInterviewerFunc(ctx, interviewID, interviewerID)
}
func (m *mockFeedbackRepo) ListByInterview(ctx context.Context, interviewID string) ([]*model.Feedback, error) {
	return m.ListByInterviewFunc(ctx, interviewID)
}
func (m *mockFeedbackRepo) ListByInterviewer(ctx context.Context, interviewerID string) ([]*model.Feedback, error) {
	return m.ListByInterviewerFunc(ctx, interviewerID)
}
func (m *mockFeedbackRepo) ListPositive(ctx context.Context) ([]*model.Feedback, error) {
	return m.ListPositiveFunc(ctx)
}
func (m *mockFeedbackRepo) CandidateAverage(ctx context.Context, candidateID string) (*model.CandidateAverage, error) {
	return m.CandidateAverageFunc(ctx, candidateID)
}
func (m *mockFeedbackRepo) InterviewerStats(ctx context.Context, interviewerID string) (*model.InterviewerStats, error) {
	return m.InterviewerStatsFunc(ctx, interviewerID)
}
func (m *mockFeedbackRepo) DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error {
	return m.DeleteByCandidateFunc(ctx, q, candidateID)
}

type mockInterviewLookup struct {
	status        string
	interviewerID string
	candidateID   string
	err           error
}

func (m *mockInterviewLookup) InterviewStatusAndInterviewer(ctx context.Context, interviewID string) (string, string, string, error) {
	return m.status, m.interviewerID, m.candidateID, m.err
}

type mockInterviewerExistence struct {
	exists bool
	err    error
}

func (m *mockInterviewerExistence) Exists(ctx context.Context, id string) (bool, error) {
	return m.exists, m.err
}

func validSubmitRequest() model.SubmitFeedbackRequest {
	technical, communication, problemSolving := 4, 5, 3
	return model.SubmitFeedbackRequest{
		InterviewerID:  "interviewer-1",
		Technical:      &technical,
		Communication:  &communication,
		ProblemSolving: &problemSolving,
		Recommendation: model.RecommendationHire,
	}
}

func TestFeedbackService_Submit_InterviewerNotFound(t *testing.T) {
	svc := NewFeedbackService(nil, &mockFeedbackRepo{}, &mockInterviewLookup{}, &mockInterviewerExistence{exists: false})

	_, err := svc.Submit(context.Background(), "interview-1", validSubmitRequest())

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}

func TestFeedbackService_Submit_InterviewNotCompleted(t *testing.T) {
	lookup := &mockInterviewLookup{status: "SCHEDULED", interviewerID: "interviewer-1"}
	svc := NewFeedbackService(nil, &mockFeedbackRepo{}, lookup, &mockInterviewerExistence{exists: true})

	_, err := svc.Submit(context.Background(), "interview-1", validSubmitRequest())

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindIllegalTransition, appErr.Kind)
}

func TestFeedbackService_Submit_WrongInterviewer(t *testing.T) {
	lookup := &mockInterviewLookup{status: "COMPLETED", interviewerID: "someone-else"}
	svc := NewFeedbackService(nil, &mockFeedbackRepo{}, lookup, &mockInterviewerExistence{exists: true})

	_, err := svc.Submit(context.Background(), "interview-1", validSubmitRequest())

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindForbidden, appErr.Kind)
}

func TestFeedbackService_Submit_Duplicate(t *testing.T) {
	lookup := &mockInterviewLookup{status: "COMPLETED", interviewerID: "interviewer-1"}
	repo := &mockFeedbackRepo{
		ExistsForInterviewAndInterviewerFunc: func(ctx context.Context, interviewID, interviewerID string) (bool, error) {
			return true, nil
		},
	}
	svc := NewFeedbackService(nil, repo, lookup, &mockInterviewerExistence{exists: true})

	_, err := svc.Submit(context.Background(), "interview-1", validSubmitRequest())

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindDuplicateFeedback, appErr.Kind)
}

func TestFeedbackService_Submit_ScoreOutOfRange(t *testing.T) {
	lookup := &mockInterviewLookup{status: "COMPLETED", interviewerID: "interviewer-1"}
	repo := &mockFeedbackRepo{
		ExistsForInterviewAndInterviewerFunc: func(ctx context.Context, interviewID, interviewerID string) (bool, error) {
			return false, nil
		},
	}
	svc := NewFeedbackService(nil, repo, lookup, &mockInterviewerExistence{exists: true})

	req := validSubmitRequest()
	badScore := 9
	req.Technical = &badScore

	_, err := svc.Submit(context.Background(), "interview-1", req)

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindValidationError, appErr.Kind)
}

func TestFeedbackService_Submit_InvalidRecommendation(t *testing.T) {
	lookup := &mockInterviewLookup{status: "COMPLETED", interviewerID: "interviewer-1"}
	repo := &mockFeedbackRepo{
		ExistsForInterviewAndInterviewerFunc: func(ctx context.Context, interviewID, interviewerID string) (bool, error) {
			return false, nil
		},
	}
	svc := NewFeedbackService(nil, repo, lookup, &mockInterviewerExistence{exists: true})

	req := validSubmitRequest()
	req.Recommendation = model.Recommendation("UNSURE")

	_, err := svc.Submit(context.Background(), "interview-1", req)

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindValidationError, appErr.Kind)
}

func TestFeedbackService_ListPositive(t *testing.T) {
	expected := []*model.Feedback{{ID: "f1", Recommendation: model.RecommendationHire}}
	repo := &mockFeedbackRepo{
		ListPositiveFunc: func(ctx context.Context) ([]*model.Feedback, error) {
			return expected, nil
		},
	}
	svc := NewFeedbackService(nil, repo, &mockInterviewLookup{}, &mockInterviewerExistence{})

	dtos, err := svc.ListPositive(context.Background())

	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "f1", dtos[0].ID)
}
