package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/feedback/model"
	"github.com/jobber-ats/core/modules/feedback/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

const feedbackColumns = "id, interview_id, interviewer_id, technical, communication, problem_solving, cultural_fit, strengths, weaknesses, comments, recommendation, created_at, updated_at"

func scanFeedback(row pgx.Row) (*model.Feedback, error) {
	f := &model.Feedback{}
	err := row.Scan(&f.ID, &f.InterviewID, &f.InterviewerID, &f.Technical, &f.Communication, &f.ProblemSolving,
		&f.CulturalFit, &f.Strengths, &f.Weaknesses, &f.Comments, &f.Recommendation, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func (r *FeedbackRepository) Create(ctx context.Context, q postgres.Querier, f *model.Feedback) error {
	f.ID = uuid.New().String()
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now

	query := `
		INSERT INTO feedback (id, interview_id, interviewer_id, technical, communication, problem_solving, cultural_fit, strengths, weaknesses, comments, recommendation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := q.Exec(ctx, query, f.ID, f.InterviewID, f.InterviewerID, f.Technical, f.Communication, f.ProblemSolving,
		f.CulturalFit, f.Strengths, f.Weaknesses, f.Comments, f.Recommendation, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.DuplicateFeedback("feedback already exists for this interview and interviewer")
		}
		return err
	}
	return nil
}

func (r *FeedbackRepository) ExistsForInterviewAndInterviewer(ctx context.Context, interviewID, interviewerID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM feedback WHERE interview_id = $1 AND interviewer_id = $2)`,
		interviewID, interviewerID).Scan(&exists)
	return exists, err
}

func (r *FeedbackRepository) ListByInterview(ctx context.Context, interviewID string) ([]*model.Feedback, error) {
	query := fmt.Sprintf(`SELECT %s FROM feedback WHERE interview_id = $1 ORDER BY created_at ASC`, feedbackColumns)
	return r.queryList(ctx, query, interviewID)
}

func (r *FeedbackRepository) ListByInterviewer(ctx context.Context, interviewerID string) ([]*model.Feedback, error) {
	query := fmt.Sprintf(`SELECT %s FROM feedback WHERE interviewer_id = $1 ORDER BY created_at DESC`, feedbackColumns)
	return r.queryList(ctx, query, interviewerID)
}

func (r *FeedbackRepository) ListPositive(ctx context.Context) ([]*model.Feedback, error) {
	query := fmt.Sprintf(`SELECT %s FROM feedback WHERE recommendation IN ('STRONG_HIRE', 'HIRE') ORDER BY created_at DESC`, feedbackColumns)
	return r.queryList(ctx, query)
}

func (r *FeedbackRepository) queryList(ctx context.Context, query string, args ...interface{}) ([]*model.Feedback, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedback []*model.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}

// CandidateAverage is the mean overall score across all feedback
// attached to a candidate's completed interviews.
func (r *FeedbackRepository) CandidateAverage(ctx context.Context, candidateID string) (*model.CandidateAverage, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(
				(f.technical + f.communication + f.problem_solving + COALESCE(f.cultural_fit, 0))::float
				/ CASE WHEN f.cultural_fit IS NULL THEN 3 ELSE 4 END
			), 0)
		FROM feedback f
		JOIN interviews i ON i.id = f.interview_id
		WHERE i.candidate_id = $1 AND i.status = 'COMPLETED'
	`
	avg := &model.CandidateAverage{CandidateID: candidateID}
	if err := r.pool.QueryRow(ctx, query, candidateID).Scan(&avg.Count, &avg.AverageScore); err != nil {
		return nil, err
	}
	return avg, nil
}

func (r *FeedbackRepository) InterviewerStats(ctx context.Context, interviewerID string) (*model.InterviewerStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(AVG(technical), 0),
			COALESCE(AVG(communication), 0),
			COUNT(*) FILTER (WHERE recommendation = 'STRONG_HIRE')
		FROM feedback
		WHERE interviewer_id = $1
	`
	stats := &model.InterviewerStats{InterviewerID: interviewerID}
	err := r.pool.QueryRow(ctx, query, interviewerID).Scan(&stats.Count, &stats.MeanTechnical, &stats.MeanCommunication, &stats.StrongHireCount)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *FeedbackRepository) DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error {
	_, err := q.Exec(ctx, `
		DELETE FROM feedback WHERE interview_id IN (SELECT id FROM interviews WHERE candidate_id = $1)
	`, candidateID)
	return err
}

var _ ports.FeedbackRepository = (*FeedbackRepository)(nil)
