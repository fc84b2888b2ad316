package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jobber-ats/core/internal/platform/logger"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/screenings/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAnalyzer struct {
	text  string
	model string
	err   error
}

func (m *mockAnalyzer) Analyze(ctx context.Context, prompt string) (string, string, error) {
	return m.text, m.model, m.err
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New("error", "console")
	require.NoError(t, err)
	return l
}

type mockScreeningRepo struct {
	CreateFunc            func(ctx context.Context, q postgres.Querier, s *model.AIScreening) error
	GetByIDFunc           func(ctx context.Context, id string) (*model.AIScreening, error)
	ListByCandidateFunc   func(ctx context.Context, candidateID string) ([]*model.AIScreening, error)
	DeleteByCandidateFunc func(ctx context.Context, q postgres.Querier, candidateID string) error
}

func (m *mockScreeningRepo) Create(ctx context.Context, q postgres.Querier, s *model.AIScreening) error {
	return m.CreateFunc(ctx, q, s)
}
func (m *mockScreeningRepo) GetByID(ctx context.Context, id string) (*model.AIScreening, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockScreeningRepo) ListByCandidate(ctx context.Context, candidateID string) ([]*model.AIScreening, error) {
	return m.ListByCandidateFunc(ctx, candidateID)
}
func (m *mockScreeningRepo) DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error {
	return m.DeleteByCandidateFunc(ctx, q, candidateID)
}

type mockCandidateDriver struct{}

func (m *mockCandidateDriver) Exists(ctx context.Context, candidateID string) (bool, error) {
	return true, nil
}
func (m *mockCandidateDriver) ExtractResumeText(ctx context.Context, candidateID string) (string, error) {
	return "", nil
}
func (m *mockCandidateDriver) CurrentStage(ctx context.Context, candidateID string) (string, error) {
	return "APPLIED", nil
}
func (m *mockCandidateDriver) AdvanceStage(ctx context.Context, q postgres.Querier, candidateID, toStage, actor string) error {
	return nil
}

func TestScreeningService_GetByID(t *testing.T) {
	expected := &model.AIScreening{ID: "screening-1", CandidateID: "candidate-1", MatchScore: 80}
	repo := &mockScreeningRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*model.AIScreening, error) {
			return expected, nil
		},
	}
	svc := NewScreeningService(nil, repo, &mockCandidateDriver{}, nil, nil, nil)

	dto, err := svc.GetByID(context.Background(), "screening-1")

	require.NoError(t, err)
	assert.Equal(t, "screening-1", dto.ID)
	assert.Equal(t, 80, dto.MatchScore)
}

func TestScreeningService_ListByCandidate(t *testing.T) {
	repo := &mockScreeningRepo{
		ListByCandidateFunc: func(ctx context.Context, candidateID string) ([]*model.AIScreening, error) {
			return []*model.AIScreening{
				{ID: "s1", CandidateID: candidateID},
				{ID: "s2", CandidateID: candidateID},
			}, nil
		},
	}
	svc := NewScreeningService(nil, repo, &mockCandidateDriver{}, nil, nil, nil)

	dtos, err := svc.ListByCandidate(context.Background(), "candidate-1")

	require.NoError(t, err)
	assert.Len(t, dtos, 2)
}

func TestScreeningService_Analyze_FallbackOnTransportError_ReportsConfiguredModel(t *testing.T) {
	analyzer := &mockAnalyzer{model: "claude-3-5-sonnet-20241022", err: errors.New("connection refused")}
	svc := NewScreeningService(nil, nil, &mockCandidateDriver{}, analyzer, nil, newTestLogger(t))

	_, modelUsed, _, usedFallback := svc.analyze(context.Background(), "a resume with plenty of experience and education", nil)

	assert.True(t, usedFallback)
	assert.Equal(t, "claude-3-5-sonnet-20241022", modelUsed)
}

func TestScreeningService_Analyze_FallbackOnUnparseableResponse_ReportsConfiguredModel(t *testing.T) {
	analyzer := &mockAnalyzer{text: "not valid json", model: "claude-3-5-sonnet-20241022"}
	svc := NewScreeningService(nil, nil, &mockCandidateDriver{}, analyzer, nil, newTestLogger(t))

	_, modelUsed, _, usedFallback := svc.analyze(context.Background(), "a resume with plenty of experience and education", nil)

	assert.True(t, usedFallback)
	assert.Equal(t, "claude-3-5-sonnet-20241022", modelUsed)
}

func TestValidateResumeText(t *testing.T) {
	t.Run("rejects text shorter than the minimum", func(t *testing.T) {
		err := validateResumeText("too short")
		assert.Error(t, err)
	})

	t.Run("rejects long text with none of the presence tokens", func(t *testing.T) {
		long := ""
		for i := 0; i < 20; i++ {
			long += "lorem ipsum dolor sit amet "
		}
		err := validateResumeText(long)
		assert.Error(t, err)
	})

	t.Run("accepts text containing a presence token", func(t *testing.T) {
		resume := "Jane Doe has five years of experience building backend systems for payment, logistics and analytics teams. jane@example.com"
		err := validateResumeText(resume)
		assert.NoError(t, err)
	})
}
