package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/interviewers/model"
	"github.com/jobber-ats/core/modules/interviewers/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockInterviewerRepo struct {
	CreateFunc        func(ctx context.Context, q postgres.Querier, i *model.Interviewer) error
	GetByIDFunc       func(ctx context.Context, id string) (*model.Interviewer, error)
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	ExistsFunc        func(ctx context.Context, id string) (bool, error)
	ListFunc          func(ctx context.Context, opts ports.ListOptions) ([]*model.Interviewer, int, error)
	SearchFunc        func(ctx context.Context, filter model.SearchFilter, opts ports.ListOptions) ([]*model.Interviewer, int, error)
	UpdateFunc        func(ctx context.Context, q postgres.Querier, id string, name, department, title *string, expertise []string) error
	SetArchivedFunc   func(ctx context.Context, q postgres.Querier, id string, archived bool) error
	DeleteFunc        func(ctx context.Context, q postgres.Querier, id string) error
}

func (m *mockInterviewerRepo) Create(ctx context.Context, q postgres.Querier, i *model.Interviewer) error {
	return m.CreateFunc(ctx, q, i)
}
func (m *mockInterviewerRepo) GetByID(ctx context.Context, id string) (*model.Interviewer, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockInterviewerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.ExistsByEmailFunc(ctx, email)
}
func (m *mockInterviewerRepo) Exists(ctx context.Context, id string) (bool, error) {
	return m.ExistsFunc(ctx, id)
}
func (m *mockInterviewerRepo) List(ctx context.Context, opts ports.ListOptions) ([]*model.Interviewer, int, error) {
	return m.ListFunc(ctx, opts)
}
func (m *mockInterviewerRepo) Search(ctx context.Context, filter model.SearchFilter, opts ports.ListOptions) ([]*model.Interviewer, int, error) {
	return m.SearchFunc(ctx, filter, opts)
}
func (m *mockInterviewerRepo) Update(ctx context.Context, q postgres.Querier, id string, name, department, title *string, expertise []string) error {
	return m.UpdateFunc(ctx, q, id, name, department, title, expertise)
}
func (m *mockInterviewerRepo) SetArchived(ctx context.Context, q postgres.Querier, id string, archived bool) error {
	return m.SetArchivedFunc(ctx, q, id, archived)
}
func (m *mockInterviewerRepo) Delete(ctx context.Context, q postgres.Querier, id string) error {
	return m.DeleteFunc(ctx, q, id)
}

type mockScheduleChecker struct {
	referenced bool
	err        error
}

func (m *mockScheduleChecker) HasInterviewsForInterviewer(ctx context.Context, interviewerID string) (bool, error) {
	return m.referenced, m.err
}

func TestInterviewerService_Create_RejectsDuplicateEmail(t *testing.T) {
	repo := &mockInterviewerRepo{
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}
	svc := NewInterviewerService(nil, repo)

	_, err := svc.Create(context.Background(), &model.CreateInterviewerRequest{Name: "Ada", Email: "ada@example.com"})

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
}

func TestInterviewerService_Delete_RejectsWhenScheduled(t *testing.T) {
	repo := &mockInterviewerRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Interviewer, error) {
			return &model.Interviewer{ID: id}, nil
		},
	}
	svc := NewInterviewerService(nil, repo)
	svc.SetScheduleChecker(&mockScheduleChecker{referenced: true})

	err := svc.Delete(context.Background(), "int-1")

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindForbidden, appErr.Kind)
}

func TestInterviewerService_Delete_NotFound(t *testing.T) {
	repo := &mockInterviewerRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Interviewer, error) {
			return nil, apperr.NotFound("interviewer not found")
		},
	}
	svc := NewInterviewerService(nil, repo)

	err := svc.Delete(context.Background(), "missing")

	require.Error(t, err)
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}

func TestInterviewerService_GetByID(t *testing.T) {
	repo := &mockInterviewerRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*model.Interviewer, error) {
			return &model.Interviewer{ID: id, Name: "Ada", Email: "ada@example.com"}, nil
		},
	}
	svc := NewInterviewerService(nil, repo)

	dto, err := svc.GetByID(context.Background(), "int-1")

	require.NoError(t, err)
	assert.Equal(t, "Ada", dto.Name)
}

func TestInterviewerService_Search(t *testing.T) {
	repo := &mockInterviewerRepo{
		SearchFunc: func(ctx context.Context, filter model.SearchFilter, opts ports.ListOptions) ([]*model.Interviewer, int, error) {
			require.NotNil(t, filter.Expertise)
			assert.Equal(t, "golang", *filter.Expertise)
			return []*model.Interviewer{{ID: "int-1", Name: "Ada", Expertise: []string{"golang", "distributed systems"}}}, 1, nil
		},
	}
	svc := NewInterviewerService(nil, repo)

	expertise := "golang"
	dtos, total, err := svc.Search(context.Background(), model.SearchFilter{Expertise: &expertise}, ports.ListOptions{Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, dtos, 1)
	assert.Contains(t, dtos[0].Expertise, "golang")
}

func TestInterviewerService_Exists(t *testing.T) {
	repo := &mockInterviewerRepo{
		ExistsFunc: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}
	svc := NewInterviewerService(nil, repo)

	exists, err := svc.Exists(context.Background(), "int-1")

	require.NoError(t, err)
	assert.False(t, exists)
}
