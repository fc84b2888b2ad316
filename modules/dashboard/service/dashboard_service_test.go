package service

import (
	"context"
	"testing"
	"time"

	auditModel "github.com/jobber-ats/core/modules/audit/model"
	"github.com/jobber-ats/core/modules/dashboard/model"
	interviewsModel "github.com/jobber-ats/core/modules/interviews/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDashboardRepo struct {
	total       int
	thisMonth   int
	byStage     []model.StageCount
	top         []model.TopCandidate
	avgByStage  []model.StageAverageScore
	hired       int
}

func (m *mockDashboardRepo) TotalCandidates(ctx context.Context) (int, error) { return m.total, nil }
func (m *mockDashboardRepo) CandidatesCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return m.thisMonth, nil
}
func (m *mockDashboardRepo) CandidatesByStage(ctx context.Context) ([]model.StageCount, error) {
	return m.byStage, nil
}
func (m *mockDashboardRepo) TopCandidatesByScore(ctx context.Context, limit int) ([]model.TopCandidate, error) {
	return m.top, nil
}
func (m *mockDashboardRepo) AverageScoreByStage(ctx context.Context) ([]model.StageAverageScore, error) {
	return m.avgByStage, nil
}
func (m *mockDashboardRepo) HiredCount(ctx context.Context) (int, error) { return m.hired, nil }

type mockInterviewLookup struct {
	scheduledToday      []*interviewsModel.DTO
	completedNoFeedback []*interviewsModel.DTO
}

func (m *mockInterviewLookup) ScheduledToday(ctx context.Context, dayStart, dayEnd time.Time) ([]*interviewsModel.DTO, error) {
	return m.scheduledToday, nil
}
func (m *mockInterviewLookup) CompletedWithoutFeedback(ctx context.Context) ([]*interviewsModel.DTO, error) {
	return m.completedNoFeedback, nil
}

type mockAuditLookup struct {
	recent []*auditModel.StageChange
}

func (m *mockAuditLookup) RecentStageChangesSince(ctx context.Context, since time.Time) ([]*auditModel.StageChange, error) {
	return m.recent, nil
}

func TestDashboardService_Overview_ComputesFunnelConversion(t *testing.T) {
	repo := &mockDashboardRepo{
		total:      20,
		thisMonth:  4,
		byStage:    []model.StageCount{{Stage: "APPLIED", Count: 10}, {Stage: "HIRED", Count: 5}},
		top:        []model.TopCandidate{{CandidateID: "c1", Name: "Ada", MatchScore: 91}},
		avgByStage: []model.StageAverageScore{{Stage: "APPLIED", AverageScore: 72.5, Count: 10}},
		hired:      5,
	}
	interviews := &mockInterviewLookup{
		scheduledToday:      []*interviewsModel.DTO{{ID: "i1"}, {ID: "i2"}},
		completedNoFeedback: []*interviewsModel.DTO{{ID: "i3"}},
	}
	audit := &mockAuditLookup{recent: []*auditModel.StageChange{{ID: "sc1", CandidateID: "c1"}}}

	svc := NewDashboardService(repo, interviews, audit, nil, nil)

	overview, err := svc.Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 20, overview.TotalCandidates)
	assert.Equal(t, 4, overview.CandidatesThisMonth)
	assert.Equal(t, 2, overview.InterviewsScheduledToday)
	assert.Equal(t, 1, overview.CompletedWithoutFeedback)
	assert.Equal(t, 5, overview.Funnel.Hired)
	assert.InDelta(t, 0.25, overview.Funnel.OverallConversion, 0.0001)
	require.Len(t, overview.RecentStageChanges, 1)
	assert.Equal(t, "sc1", overview.RecentStageChanges[0].ID)
}

func TestDashboardService_Overview_ZeroCandidatesHasZeroConversion(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := NewDashboardService(repo, &mockInterviewLookup{}, &mockAuditLookup{}, nil, nil)

	overview, err := svc.Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0.0, overview.Funnel.OverallConversion)
}
