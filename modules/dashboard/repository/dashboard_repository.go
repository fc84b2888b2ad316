package repository

import (
	"context"
	"time"

	"github.com/jobber-ats/core/modules/dashboard/model"
	"github.com/jobber-ats/core/modules/dashboard/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DashboardRepository struct {
	pool *pgxpool.Pool
}

func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

func (r *DashboardRepository) TotalCandidates(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&count)
	return count, err
}

func (r *DashboardRepository) CandidatesCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM candidates WHERE created_at >= $1`, since).Scan(&count)
	return count, err
}

func (r *DashboardRepository) CandidatesByStage(ctx context.Context) ([]model.StageCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT current_stage, COUNT(*) FROM candidates GROUP BY current_stage ORDER BY current_stage
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []model.StageCount
	for rows.Next() {
		var c model.StageCount
		if err := rows.Scan(&c.Stage, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// TopCandidatesByScore ranks candidates by the highest matchScore among
// all of their AIScreening records.
func (r *DashboardRepository) TopCandidatesByScore(ctx context.Context, limit int) ([]model.TopCandidate, error) {
	query := `
		SELECT c.id, c.name, MAX(s.match_score) AS best_score
		FROM candidates c
		JOIN ai_screenings s ON s.candidate_id = c.id
		GROUP BY c.id, c.name
		ORDER BY best_score DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []model.TopCandidate
	for rows.Next() {
		var t model.TopCandidate
		if err := rows.Scan(&t.CandidateID, &t.Name, &t.MatchScore); err != nil {
			return nil, err
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

// AverageScoreByStage is the mean AIScreening.matchScore grouped by the
// current stage of the candidate that screening belongs to.
func (r *DashboardRepository) AverageScoreByStage(ctx context.Context) ([]model.StageAverageScore, error) {
	query := `
		SELECT c.current_stage, AVG(s.match_score), COUNT(*)
		FROM candidates c
		JOIN ai_screenings s ON s.candidate_id = c.id
		GROUP BY c.current_stage
		ORDER BY c.current_stage
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var averages []model.StageAverageScore
	for rows.Next() {
		var a model.StageAverageScore
		if err := rows.Scan(&a.Stage, &a.AverageScore, &a.Count); err != nil {
			return nil, err
		}
		averages = append(averages, a)
	}
	return averages, rows.Err()
}

func (r *DashboardRepository) HiredCount(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM candidates WHERE current_stage = 'HIRED'`).Scan(&count)
	return count, err
}

var _ ports.DashboardRepository = (*DashboardRepository)(nil)
