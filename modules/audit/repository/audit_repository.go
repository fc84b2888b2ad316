package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/audit/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) RecordStageChange(ctx context.Context, q postgres.Querier, candidateID string, from *string, to, changedBy string, reason *string) (*model.StageChange, error) {
	change := &model.StageChange{
		ID:          uuid.New().String(),
		CandidateID: candidateID,
		FromState:   from,
		ToState:     to,
		ChangedBy:   changedBy,
		Reason:      reason,
		ChangedAt:   time.Now().UTC(),
	}

	query := `
		INSERT INTO stage_changes (id, candidate_id, from_state, to_state, changed_by, reason, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query, change.ID, change.CandidateID, change.FromState, change.ToState, change.ChangedBy, change.Reason, change.ChangedAt)
	if err != nil {
		return nil, err
	}
	return change, nil
}

func (r *AuditRepository) RecordStatusChange(ctx context.Context, q postgres.Querier, interviewID string, to, changedBy string, notes *string) (*model.StatusChange, error) {
	change := &model.StatusChange{
		ID:          uuid.New().String(),
		InterviewID: interviewID,
		ToState:     to,
		ChangedBy:   changedBy,
		Notes:       notes,
		ChangedAt:   time.Now().UTC(),
	}

	// The from_state is derived inside the query from whatever the
	// previous latest row for this interview was, so two concurrent
	// appends inside different transactions can never disagree about it.
	query := `
		INSERT INTO status_changes (id, interview_id, from_state, to_state, changed_by, notes, changed_at)
		VALUES ($1, $2, (SELECT to_state FROM status_changes WHERE interview_id = $2 ORDER BY changed_at DESC LIMIT 1), $3, $4, $5, $6)
	`
	_, err := q.Exec(ctx, query, change.ID, change.InterviewID, change.ToState, change.ChangedBy, change.Notes, change.ChangedAt)
	if err != nil {
		return nil, err
	}
	return change, nil
}

func (r *AuditRepository) StageHistory(ctx context.Context, candidateID string) ([]*model.StageChange, error) {
	query := `
		SELECT id, candidate_id, from_state, to_state, changed_by, reason, changed_at
		FROM stage_changes WHERE candidate_id = $1 ORDER BY changed_at ASC
	`
	rows, err := r.pool.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []*model.StageChange
	for rows.Next() {
		c := &model.StageChange{}
		if err := rows.Scan(&c.ID, &c.CandidateID, &c.FromState, &c.ToState, &c.ChangedBy, &c.Reason, &c.ChangedAt); err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

func (r *AuditRepository) StatusHistory(ctx context.Context, interviewID string) ([]*model.StatusChange, error) {
	query := `
		SELECT id, interview_id, from_state, to_state, changed_by, notes, changed_at
		FROM status_changes WHERE interview_id = $1 ORDER BY changed_at ASC
	`
	rows, err := r.pool.Query(ctx, query, interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []*model.StatusChange
	for rows.Next() {
		c := &model.StatusChange{}
		if err := rows.Scan(&c.ID, &c.InterviewID, &c.FromState, &c.ToState, &c.ChangedBy, &c.Notes, &c.ChangedAt); err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

func (r *AuditRepository) RecentStageChangesSince(ctx context.Context, since time.Time) ([]*model.StageChange, error) {
	query := `
		SELECT id, candidate_id, from_state, to_state, changed_by, reason, changed_at
		FROM stage_changes WHERE changed_at >= $1 ORDER BY changed_at DESC
	`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []*model.StageChange
	for rows.Next() {
		c := &model.StageChange{}
		if err := rows.Scan(&c.ID, &c.CandidateID, &c.FromState, &c.ToState, &c.ChangedBy, &c.Reason, &c.ChangedAt); err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

// AverageTimeInStage computes, per stage, the mean time a candidate
// spent in it before the next transition out, using LEAD() to pair each
// transition with the one that follows it for the same candidate.
func (r *AuditRepository) AverageTimeInStage(ctx context.Context) ([]*model.StageDuration, error) {
	query := `
		WITH ordered AS (
			SELECT
				candidate_id,
				to_state,
				changed_at,
				LEAD(changed_at) OVER (PARTITION BY candidate_id ORDER BY changed_at) AS next_changed_at
			FROM stage_changes
		)
		SELECT
			to_state,
			AVG(EXTRACT(EPOCH FROM (next_changed_at - changed_at))) AS avg_seconds,
			COUNT(*) AS samples
		FROM ordered
		WHERE next_changed_at IS NOT NULL
		GROUP BY to_state
		ORDER BY to_state
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var durations []*model.StageDuration
	for rows.Next() {
		d := &model.StageDuration{}
		if err := rows.Scan(&d.Stage, &d.AverageSeconds, &d.Samples); err != nil {
			return nil, err
		}
		durations = append(durations, d)
	}
	return durations, rows.Err()
}

func (r *AuditRepository) DeleteByCandidate(ctx context.Context, q postgres.Querier, candidateID string) error {
	_, err := q.Exec(ctx, `DELETE FROM stage_changes WHERE candidate_id = $1`, candidateID)
	return err
}
