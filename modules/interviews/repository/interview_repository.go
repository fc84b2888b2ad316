package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/interviews/model"
	"github.com/jobber-ats/core/modules/interviews/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InterviewRepository struct {
	pool *pgxpool.Pool
}

func NewInterviewRepository(pool *pgxpool.Pool) *InterviewRepository {
	return &InterviewRepository{pool: pool}
}

const interviewColumns = "id, candidate_id, interviewer_id, scheduled_at, duration_min, type, location, notes, status, created_at, updated_at"

func scanInterview(row pgx.Row) (*model.Interview, error) {
	i := &model.Interview{}
	err := row.Scan(&i.ID, &i.CandidateID, &i.InterviewerID, &i.ScheduledAt, &i.DurationMin, &i.Type, &i.Location, &i.Notes, &i.Status, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

func (r *InterviewRepository) Create(ctx context.Context, q postgres.Querier, i *model.Interview) error {
	i.ID = uuid.New().String()
	now := time.Now().UTC()
	i.CreatedAt = now
	i.UpdatedAt = now

	query := `
		INSERT INTO interviews (id, candidate_id, interviewer_id, scheduled_at, duration_min, type, location, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := q.Exec(ctx, query, i.ID, i.CandidateID, i.InterviewerID, i.ScheduledAt, i.DurationMin, i.Type, i.Location, i.Notes, i.Status, i.CreatedAt, i.UpdatedAt)
	return err
}

func (r *InterviewRepository) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	query := fmt.Sprintf(`SELECT %s FROM interviews WHERE id = $1`, interviewColumns)
	i, err := scanInterview(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("interview not found")
		}
		return nil, err
	}
	return i, nil
}

func (r *InterviewRepository) GetByIDForUpdate(ctx context.Context, q postgres.Querier, id string) (*model.Interview, error) {
	query := fmt.Sprintf(`SELECT %s FROM interviews WHERE id = $1 FOR UPDATE`, interviewColumns)
	i, err := scanInterview(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("interview not found")
		}
		return nil, err
	}
	return i, nil
}

// LockInterviewer takes a transaction-scoped advisory lock keyed on the
// interviewer id, serializing conflict-check+insert so two concurrent
// schedule calls for the same interviewer cannot both observe a
// conflict-free window.
func (r *InterviewRepository) LockInterviewer(ctx context.Context, q postgres.Querier, interviewerID string) error {
	_, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, interviewerID)
	return err
}

// NonTerminalForInterviewer returns the non-terminal (not COMPLETED or
// CANCELLED) interviews for an interviewer overlapping a broadened
// window, the candidate set the exact half-open overlap test runs
// against. excludeID, when non-empty, omits that interview (used by
// reschedule, which must not conflict with itself).
func (r *InterviewRepository) NonTerminalForInterviewer(ctx context.Context, q postgres.Querier, interviewerID string, windowStart, windowEnd time.Time, excludeID string) ([]*model.Interview, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM interviews
		WHERE interviewer_id = $1
		  AND status NOT IN ('COMPLETED', 'CANCELLED')
		  AND scheduled_at < $3
		  AND scheduled_at + (duration_min || ' minutes')::interval > $2
		  AND id != $4
	`, interviewColumns)

	rows, err := q.Query(ctx, query, interviewerID, windowStart, windowEnd, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []*model.Interview
	for rows.Next() {
		i, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, i)
	}
	return interviews, rows.Err()
}

func (r *InterviewRepository) UpdateStatus(ctx context.Context, q postgres.Querier, id string, status model.Status) error {
	tag, err := q.Exec(ctx, `UPDATE interviews SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("interview not found")
	}
	return nil
}

func (r *InterviewRepository) UpdateSchedule(ctx context.Context, q postgres.Querier, id string, scheduledAt time.Time, durationMin int) error {
	tag, err := q.Exec(ctx, `UPDATE interviews SET scheduled_at = $2, duration_min = $3, updated_at = $4 WHERE id = $1`,
		id, scheduledAt, durationMin, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("interview not found")
	}
	return nil
}

func (r *InterviewRepository) List(ctx context.Context, opts ports.ListOptions) ([]*model.Interview, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM interviews`).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortBy := opts.SortBy
	switch sortBy {
	case "scheduled_at", "status", "created_at":
	default:
		sortBy = "scheduled_at"
	}
	sortDir := "ASC"
	if opts.SortDir == "desc" {
		sortDir = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM interviews ORDER BY %s %s LIMIT $1 OFFSET $2`, interviewColumns, sortBy, sortDir)
	rows, err := r.pool.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var interviews []*model.Interview
	for rows.Next() {
		i, err := scanInterview(rows)
		if err != nil {
			return nil, 0, err
		}
		interviews = append(interviews, i)
	}
	return interviews, total, rows.Err()
}

func (r *InterviewRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*model.Interview, error) {
	query := fmt.Sprintf(`SELECT %s FROM interviews WHERE candidate_id = $1 ORDER BY scheduled_at ASC`, interviewColumns)
	rows, err := r.pool.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []*model.Interview
	for rows.Next() {
		i, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, i)
	}
	return interviews, rows.Err()
}

func (r *InterviewRepository) ListByInterviewer(ctx context.Context, interviewerID string, from, to time.Time) ([]*model.Interview, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM interviews
		WHERE interviewer_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3
		ORDER BY scheduled_at ASC
	`, interviewColumns)
	rows, err := r.pool.Query(ctx, query, interviewerID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []*model.Interview
	for rows.Next() {
		i, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, i)
	}
	return interviews, rows.Err()
}

func (r *InterviewRepository) ScheduledToday(ctx context.Context, dayStart, dayEnd time.Time) ([]*model.Interview, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM interviews
		WHERE scheduled_at >= $1 AND scheduled_at < $2 AND status NOT IN ('CANCELLED')
		ORDER BY scheduled_at ASC
	`, interviewColumns)
	rows, err := r.pool.Query(ctx, query, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []*model.Interview
	for rows.Next() {
		i, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, i)
	}
	return interviews, rows.Err()
}

func (r *InterviewRepository) CompletedWithoutFeedback(ctx context.Context) ([]*model.Interview, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM interviews i
		WHERE i.status = 'COMPLETED'
		  AND NOT EXISTS (SELECT 1 FROM feedback f WHERE f.interview_id = i.id)
		ORDER BY i.scheduled_at DESC
	`, interviewColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []*model.Interview
	for rows.Next() {
		i, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, i)
	}
	return interviews, rows.Err()
}

func (r *InterviewRepository) HasInterviewsForInterviewer(ctx context.Context, interviewerID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM interviews WHERE interviewer_id = $1)`, interviewerID).Scan(&exists)
	return exists, err
}

func (r *InterviewRepository) DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error {
	_, err := q.Exec(ctx, `
		DELETE FROM status_changes WHERE interview_id IN (SELECT id FROM interviews WHERE candidate_id = $1)
	`, candidateID)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, `DELETE FROM feedback WHERE interview_id IN (SELECT id FROM interviews WHERE candidate_id = $1)`, candidateID)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, `DELETE FROM interviews WHERE candidate_id = $1`, candidateID)
	return err
}

var _ ports.InterviewRepository = (*InterviewRepository)(nil)
