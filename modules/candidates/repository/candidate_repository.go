package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/candidates/model"
	"github.com/jobber-ats/core/modules/candidates/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CandidateRepository struct {
	pool *pgxpool.Pool
}

func NewCandidateRepository(pool *pgxpool.Pool) *CandidateRepository {
	return &CandidateRepository{pool: pool}
}

const candidateColumns = "id, name, email, phone, resume_blob_ref, current_stage, created_at, updated_at"

func scanCandidate(row pgx.Row) (*model.Candidate, error) {
	c := &model.Candidate{}
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.ResumeBlobRef, &c.CurrentStage, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *CandidateRepository) Create(ctx context.Context, q postgres.Querier, c *model.Candidate) error {
	c.ID = uuid.New().String()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.CurrentStage == "" {
		c.CurrentStage = model.StageApplied
	}

	query := `
		INSERT INTO candidates (id, name, email, phone, resume_blob_ref, current_stage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.Exec(ctx, query, c.ID, c.Name, c.Email, c.Phone, c.ResumeBlobRef, c.CurrentStage, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.DuplicateEmail(fmt.Sprintf("a candidate with email %s already exists", c.Email))
		}
		return err
	}
	return nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, id string) (*model.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE id = $1`, candidateColumns)
	c, err := scanCandidate(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("candidate not found")
		}
		return nil, err
	}
	return c, nil
}

func (r *CandidateRepository) GetByEmail(ctx context.Context, email string) (*model.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE email = $1`, candidateColumns)
	c, err := scanCandidate(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("candidate not found")
		}
		return nil, err
	}
	return c, nil
}

func (r *CandidateRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM candidates WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *CandidateRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func sortColumn(sortBy string) string {
	switch sortBy {
	case "name", "email", "current_stage", "created_at", "updated_at":
		return sortBy
	default:
		return "created_at"
	}
}

func sortDirection(dir string) string {
	if strings.EqualFold(dir, "asc") {
		return "ASC"
	}
	return "DESC"
}

func (r *CandidateRepository) List(ctx context.Context, opts ports.ListOptions) ([]*model.Candidate, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := fmt.Sprintf("%s %s", sortColumn(opts.SortBy), sortDirection(opts.SortDir))
	query := fmt.Sprintf(`SELECT %s FROM candidates ORDER BY %s LIMIT $1 OFFSET $2`, candidateColumns, orderBy)

	rows, err := r.pool.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var candidates []*model.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, err
		}
		candidates = append(candidates, c)
	}
	return candidates, total, rows.Err()
}

func (r *CandidateRepository) Search(ctx context.Context, filter model.SearchFilter, opts ports.ListOptions) ([]*model.Candidate, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	argN := 1

	if filter.Name != nil && *filter.Name != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", argN))
		args = append(args, "%"+*filter.Name+"%")
		argN++
	}
	if filter.Email != nil && *filter.Email != "" {
		where = append(where, fmt.Sprintf("email ILIKE $%d", argN))
		args = append(args, "%"+*filter.Email+"%")
		argN++
	}
	if filter.Stage != nil && *filter.Stage != "" {
		where = append(where, fmt.Sprintf("current_stage = $%d", argN))
		args = append(args, *filter.Stage)
		argN++
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM candidates WHERE %s`, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := fmt.Sprintf("%s %s", sortColumn(opts.SortBy), sortDirection(opts.SortDir))
	args = append(args, opts.Limit, opts.Offset)
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		candidateColumns, whereClause, orderBy, argN, argN+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var candidates []*model.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, err
		}
		candidates = append(candidates, c)
	}
	return candidates, total, rows.Err()
}

func (r *CandidateRepository) UpdateStage(ctx context.Context, q postgres.Querier, id string, stage model.Stage) error {
	tag, err := q.Exec(ctx, `UPDATE candidates SET current_stage = $2, updated_at = $3 WHERE id = $1`, id, stage, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("candidate not found")
	}
	return nil
}

func (r *CandidateRepository) UpdateProfile(ctx context.Context, q postgres.Querier, id string, name, phone *string) error {
	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now().UTC()}
	argN := 1

	if name != nil {
		argN++
		sets = append(sets, fmt.Sprintf("name = $%d", argN))
		args = append(args, *name)
	}
	if phone != nil {
		argN++
		sets = append(sets, fmt.Sprintf("phone = $%d", argN))
		args = append(args, *phone)
	}
	argN++
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE candidates SET %s WHERE id = $%d`, strings.Join(sets, ", "), argN)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("candidate not found")
	}
	return nil
}

func (r *CandidateRepository) SetResumeBlobRef(ctx context.Context, q postgres.Querier, id string, ref string) error {
	tag, err := q.Exec(ctx, `UPDATE candidates SET resume_blob_ref = $2, updated_at = $3 WHERE id = $1`, id, ref, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("candidate not found")
	}
	return nil
}

func (r *CandidateRepository) Delete(ctx context.Context, q postgres.Querier, id string) error {
	tag, err := q.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("candidate not found")
	}
	return nil
}

func (r *CandidateRepository) ByStage(ctx context.Context, stage model.Stage) ([]*model.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE current_stage = $1`, candidateColumns)
	rows, err := r.pool.Query(ctx, query, stage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []*model.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

var _ ports.CandidateRepository = (*CandidateRepository)(nil)
