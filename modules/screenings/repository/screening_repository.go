package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/screenings/model"
	"github.com/jobber-ats/core/modules/screenings/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScreeningRepository struct {
	pool *pgxpool.Pool
}

func NewScreeningRepository(pool *pgxpool.Pool) *ScreeningRepository {
	return &ScreeningRepository{pool: pool}
}

const screeningColumns = "id, candidate_id, skills, experience, education, cultural_fit, match_score, analysis, recommendation, model_used, processing_ms, fallback, created_at"

func scanScreening(row pgx.Row) (*model.AIScreening, error) {
	s := &model.AIScreening{}
	err := row.Scan(&s.ID, &s.CandidateID, &s.Skills, &s.Experience, &s.Education, &s.CulturalFit,
		&s.MatchScore, &s.Analysis, &s.Recommendation, &s.ModelUsed, &s.ProcessingMs, &s.Fallback, &s.CreatedAt)
	return s, err
}

func (r *ScreeningRepository) Create(ctx context.Context, q postgres.Querier, s *model.AIScreening) error {
	s.ID = uuid.New().String()
	s.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO ai_screenings (id, candidate_id, skills, experience, education, cultural_fit, match_score, analysis, recommendation, model_used, processing_ms, fallback, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := q.Exec(ctx, query, s.ID, s.CandidateID, s.Skills, s.Experience, s.Education, s.CulturalFit,
		s.MatchScore, s.Analysis, s.Recommendation, s.ModelUsed, s.ProcessingMs, s.Fallback, s.CreatedAt)
	return err
}

func (r *ScreeningRepository) GetByID(ctx context.Context, id string) (*model.AIScreening, error) {
	query := "SELECT " + screeningColumns + " FROM ai_screenings WHERE id = $1"
	s, err := scanScreening(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("screening not found")
		}
		return nil, err
	}
	return s, nil
}

func (r *ScreeningRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*model.AIScreening, error) {
	query := "SELECT " + screeningColumns + " FROM ai_screenings WHERE candidate_id = $1 ORDER BY created_at DESC"
	rows, err := r.pool.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var screenings []*model.AIScreening
	for rows.Next() {
		s, err := scanScreening(rows)
		if err != nil {
			return nil, err
		}
		screenings = append(screenings, s)
	}
	return screenings, rows.Err()
}

func (r *ScreeningRepository) DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error {
	_, err := q.Exec(ctx, `DELETE FROM ai_screenings WHERE candidate_id = $1`, candidateID)
	return err
}

var _ ports.ScreeningRepository = (*ScreeningRepository)(nil)
