package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/candidates/model"
	"github.com/jobber-ats/core/modules/candidates/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCandidateRepo struct {
	CreateFunc          func(ctx context.Context, q postgres.Querier, c *model.Candidate) error
	GetByIDFunc         func(ctx context.Context, id string) (*model.Candidate, error)
	GetByEmailFunc      func(ctx context.Context, email string) (*model.Candidate, error)
	ExistsByEmailFunc   func(ctx context.Context, email string) (bool, error)
	ExistsFunc          func(ctx context.Context, id string) (bool, error)
	ListFunc            func(ctx context.Context, opts ports.ListOptions) ([]*model.Candidate, int, error)
	SearchFunc          func(ctx context.Context, filter model.SearchFilter, opts ports.ListOptions) ([]*model.Candidate, int, error)
	UpdateStageFunc     func(ctx context.Context, q postgres.Querier, id string, stage model.Stage) error
	UpdateProfileFunc   func(ctx context.Context, q postgres.Querier, id string, name, phone *string) error
	SetResumeBlobRefFunc func(ctx context.Context, q postgres.Querier, id string, ref string) error
	DeleteFunc          func(ctx context.Context, q postgres.Querier, id string) error
	ByStageFunc         func(ctx context.Context, stage model.Stage) ([]*model.Candidate, error)
}

func (m *mockCandidateRepo) Create(ctx context.Context, q postgres.Querier, c *model.Candidate) error {
	return m.CreateFunc(ctx, q, c)
}
func (m *mockCandidateRepo) GetByID(ctx context.Context, id string) (*model.Candidate, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockCandidateRepo) GetByEmail(ctx context.Context, email string) (*model.Candidate, error) {
	return m.GetByEmailFunc(ctx, email)
}
func (m *mockCandidateRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.ExistsByEmailFunc(ctx, email)
}
func (m *mockCandidateRepo) Exists(ctx context.Context, id string) (bool, error) {
	return m.ExistsFunc(ctx, id)
}
func (m *mockCandidateRepo) List(ctx context.Context, opts ports.ListOptions) ([]*model.Candidate, int, error) {
	return m.ListFunc(ctx, opts)
}
func (m *mockCandidateRepo) Search(ctx context.Context, filter model.SearchFilter, opts ports.ListOptions) ([]*model.Candidate, int, error) {
	return m.SearchFunc(ctx, filter, opts)
}
func (m *mockCandidateRepo) UpdateStage(ctx context.Context, q postgres.Querier, id string, stage model.Stage) error {
	return m.UpdateStageFunc(ctx, q, id, stage)
}
func (m *mockCandidateRepo) UpdateProfile(ctx context.Context, q postgres.Querier, id string, name, phone *string) error {
	return m.UpdateProfileFunc(ctx, q, id, name, phone)
}
func (m *mockCandidateRepo) SetResumeBlobRef(ctx context.Context, q postgres.Querier, id string, ref string) error {
	return m.SetResumeBlobRefFunc(ctx, q, id, ref)
}
func (m *mockCandidateRepo) Delete(ctx context.Context, q postgres.Querier, id string) error {
	return m.DeleteFunc(ctx, q, id)
}
func (m *mockCandidateRepo) ByStage(ctx context.Context, stage model.Stage) ([]*model.Candidate, error) {
	return m.ByStageFunc(ctx, stage)
}

func TestValidateStageTransition(t *testing.T) {
	t.Run("rejects a no-op move", func(t *testing.T) {
		err := validateStageTransition(model.StageApplied, model.StageApplied)
		require.Error(t, err)
		var appErr *apperr.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperr.KindNoOpTransition, appErr.Kind)
	})

	t.Run("rejects an illegal move", func(t *testing.T) {
		err := validateStageTransition(model.StageApplied, model.StageHired)
		require.Error(t, err)
		var appErr *apperr.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperr.KindIllegalTransition, appErr.Kind)
	})

	t.Run("accepts a legal move", func(t *testing.T) {
		assert.NoError(t, validateStageTransition(model.StageApplied, model.StageScreening))
	})
}

func TestCandidateService_TransitionStage_RejectsIllegalMove(t *testing.T) {
	repo := &mockCandidateRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Candidate, error) {
			return &model.Candidate{ID: id, CurrentStage: model.StageApplied}, nil
		},
	}
	svc := NewCandidateService(nil, repo, nil, nil, nil, nil)

	_, err := svc.TransitionStage(context.Background(), "c1", model.StageHired, "hr@example.com", nil)

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindIllegalTransition, appErr.Kind)
}

func TestCandidateService_Delete_RejectsHiredCandidate(t *testing.T) {
	repo := &mockCandidateRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Candidate, error) {
			return &model.Candidate{ID: id, CurrentStage: model.StageHired}, nil
		},
	}
	svc := NewCandidateService(nil, repo, nil, nil, nil, nil)

	err := svc.Delete(context.Background(), "c1")

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindForbidden, appErr.Kind)
}

func TestCandidateService_CurrentStage(t *testing.T) {
	repo := &mockCandidateRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Candidate, error) {
			return &model.Candidate{ID: id, CurrentStage: model.StageScreening}, nil
		},
	}
	svc := NewCandidateService(nil, repo, nil, nil, nil, nil)

	stage, err := svc.CurrentStage(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, "SCREENING", stage)
}

func TestCandidateService_Exists(t *testing.T) {
	repo := &mockCandidateRepo{
		ExistsFunc: func(ctx context.Context, id string) (bool, error) { return true, nil },
	}
	svc := NewCandidateService(nil, repo, nil, nil, nil, nil)

	exists, err := svc.Exists(context.Background(), "c1")

	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCandidateService_ExtractResumeText_NoResumeOnFile(t *testing.T) {
	repo := &mockCandidateRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Candidate, error) {
			return &model.Candidate{ID: id, ResumeBlobRef: nil}, nil
		},
	}
	svc := NewCandidateService(nil, repo, nil, nil, nil, nil)

	_, err := svc.ExtractResumeText(context.Background(), "c1")

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindValidationError, appErr.Kind)
}

func TestCandidateService_ByStage(t *testing.T) {
	repo := &mockCandidateRepo{
		ByStageFunc: func(ctx context.Context, stage model.Stage) ([]*model.Candidate, error) {
			return []*model.Candidate{{ID: "c1", CurrentStage: stage}}, nil
		},
	}
	svc := NewCandidateService(nil, repo, nil, nil, nil, nil)

	dtos, err := svc.ByStage(context.Background(), model.StageScreening)

	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, model.StageScreening, dtos[0].CurrentStage)
}
