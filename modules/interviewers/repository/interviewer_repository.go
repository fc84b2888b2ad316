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
	"github.com/jobber-ats/core/modules/interviewers/model"
	"github.com/jobber-ats/core/modules/interviewers/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InterviewerRepository struct {
	pool *pgxpool.Pool
}

func NewInterviewerRepository(pool *pgxpool.Pool) *InterviewerRepository {
	return &InterviewerRepository{pool: pool}
}

const interviewerColumns = "id, name, email, department, title, expertise, archived, created_at, updated_at"

func scanInterviewer(row pgx.Row) (*model.Interviewer, error) {
	i := &model.Interviewer{}
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.Department, &i.Title, &i.Expertise, &i.Archived, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

func (r *InterviewerRepository) Create(ctx context.Context, q postgres.Querier, i *model.Interviewer) error {
	i.ID = uuid.New().String()
	now := time.Now().UTC()
	i.CreatedAt = now
	i.UpdatedAt = now

	query := `
		INSERT INTO interviewers (id, name, email, department, title, expertise, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := q.Exec(ctx, query, i.ID, i.Name, i.Email, i.Department, i.Title, i.Expertise, i.Archived, i.CreatedAt, i.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Validation("an interviewer with this email already exists",
				apperr.FieldError{Field: "email", RejectedValue: i.Email, Message: "already in use"})
		}
		return err
	}
	return nil
}

func (r *InterviewerRepository) GetByID(ctx context.Context, id string) (*model.Interviewer, error) {
	query := fmt.Sprintf(`SELECT %s FROM interviewers WHERE id = $1`, interviewerColumns)
	i, err := scanInterviewer(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("interviewer not found")
		}
		return nil, err
	}
	return i, nil
}

func (r *InterviewerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM interviewers WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

func (r *InterviewerRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM interviewers WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *InterviewerRepository) List(ctx context.Context, opts ports.ListOptions) ([]*model.Interviewer, int, error) {
	where := ""
	if !opts.IncludeArchived {
		where = "WHERE archived = false"
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM interviewers %s`, where)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortBy := opts.SortBy
	switch sortBy {
	case "name", "email", "created_at", "updated_at":
	default:
		sortBy = "name"
	}
	sortDir := "ASC"
	if opts.SortDir == "desc" {
		sortDir = "DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM interviewers %s ORDER BY %s %s LIMIT $1 OFFSET $2`,
		interviewerColumns, where, sortBy, sortDir)

	rows, err := r.pool.Query(ctx, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var interviewers []*model.Interviewer
	for rows.Next() {
		i, err := scanInterviewer(rows)
		if err != nil {
			return nil, 0, err
		}
		interviewers = append(interviewers, i)
	}
	return interviewers, total, rows.Err()
}

func (r *InterviewerRepository) Update(ctx context.Context, q postgres.Querier, id string, name, department, title *string, expertise []string) error {
	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now().UTC()}
	argN := 1

	if name != nil {
		argN++
		sets = append(sets, fmt.Sprintf("name = $%d", argN))
		args = append(args, *name)
	}
	if department != nil {
		argN++
		sets = append(sets, fmt.Sprintf("department = $%d", argN))
		args = append(args, *department)
	}
	if title != nil {
		argN++
		sets = append(sets, fmt.Sprintf("title = $%d", argN))
		args = append(args, *title)
	}
	if expertise != nil {
		argN++
		sets = append(sets, fmt.Sprintf("expertise = $%d", argN))
		args = append(args, expertise)
	}
	argN++
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE interviewers SET %s WHERE id = $%d`, strings.Join(sets, ", "), argN)
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("interviewer not found")
	}
	return nil
}

// Search filters interviewers by name, email, department, or a
// free-text match against any entry in expertise.
func (r *InterviewerRepository) Search(ctx context.Context, filter model.SearchFilter, opts ports.ListOptions) ([]*model.Interviewer, int, error) {
	where := []string{"1=1"}
	if !opts.IncludeArchived {
		where = append(where, "archived = false")
	}
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
	if filter.Department != nil && *filter.Department != "" {
		where = append(where, fmt.Sprintf("department ILIKE $%d", argN))
		args = append(args, "%"+*filter.Department+"%")
		argN++
	}
	if filter.Expertise != nil && *filter.Expertise != "" {
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM unnest(expertise) e WHERE e ILIKE $%d)", argN))
		args = append(args, "%"+*filter.Expertise+"%")
		argN++
	}

	whereClause := strings.Join(where, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM interviewers WHERE %s`, whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortBy := opts.SortBy
	switch sortBy {
	case "name", "email", "created_at", "updated_at":
	default:
		sortBy = "name"
	}
	sortDir := "ASC"
	if opts.SortDir == "desc" {
		sortDir = "DESC"
	}

	args = append(args, opts.Limit, opts.Offset)
	query := fmt.Sprintf(`SELECT %s FROM interviewers WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		interviewerColumns, whereClause, sortBy, sortDir, argN, argN+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var interviewers []*model.Interviewer
	for rows.Next() {
		i, err := scanInterviewer(rows)
		if err != nil {
			return nil, 0, err
		}
		interviewers = append(interviewers, i)
	}
	return interviewers, total, rows.Err()
}

func (r *InterviewerRepository) SetArchived(ctx context.Context, q postgres.Querier, id string, archived bool) error {
	tag, err := q.Exec(ctx, `UPDATE interviewers SET archived = $2, updated_at = $3 WHERE id = $1`, id, archived, time.Now().UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("interviewer not found")
	}
	return nil
}

func (r *InterviewerRepository) Delete(ctx context.Context, q postgres.Querier, id string) error {
	tag, err := q.Exec(ctx, `DELETE FROM interviewers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("interviewer not found")
	}
	return nil
}

var _ ports.InterviewerRepository = (*InterviewerRepository)(nil)
