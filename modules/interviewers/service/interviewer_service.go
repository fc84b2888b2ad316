package service

import (
	"context"

	"github.com/jobber-ats/core/internal/platform/apperr"
	"github.com/jobber-ats/core/internal/platform/postgres"
	"github.com/jobber-ats/core/modules/interviewers/model"
	"github.com/jobber-ats/core/modules/interviewers/ports"
	"github.com/jackc/pgx/v5"
)

type InterviewerService struct {
	db   *postgres.Client
	repo ports.InterviewerRepository

	schedule ports.ScheduleReferenceChecker
}

func NewInterviewerService(db *postgres.Client, repo ports.InterviewerRepository) *InterviewerService {
	return &InterviewerService{db: db, repo: repo}
}

// SetScheduleChecker wires the interviews module's schedule-reference
// check so Delete can refuse to remove an interviewer who still has
// interviews booked, once the interviews module is constructed.
func (s *InterviewerService) SetScheduleChecker(checker ports.ScheduleReferenceChecker) {
	s.schedule = checker
}

func (s *InterviewerService) Create(ctx context.Context, req *model.CreateInterviewerRequest) (*model.DTO, error) {
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Validation("an interviewer with this email already exists",
			apperr.FieldError{Field: "email", RejectedValue: req.Email, Message: "already in use"})
	}

	interviewer := &model.Interviewer{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Title:      req.Title,
		Expertise:  req.Expertise,
	}

	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		return s.repo.Create(ctx, tx, interviewer)
	})
	if err != nil {
		return nil, err
	}
	return interviewer.ToDTO(), nil
}

func (s *InterviewerService) GetByID(ctx context.Context, id string) (*model.DTO, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return i.ToDTO(), nil
}

func (s *InterviewerService) List(ctx context.Context, opts ports.ListOptions) ([]*model.DTO, int, error) {
	interviewers, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*model.DTO, 0, len(interviewers))
	for _, i := range interviewers {
		dtos = append(dtos, i.ToDTO())
	}
	return dtos, total, nil
}

func (s *InterviewerService) Update(ctx context.Context, id string, req *model.UpdateInterviewerRequest) (*model.DTO, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.db.WithTx(ctx, func(tx pgx.Tx) error {
		return s.repo.Update(ctx, tx, id, req.Name, req.Department, req.Title, req.Expertise)
	})
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		i.Name = *req.Name
	}
	if req.Department != nil {
		i.Department = req.Department
	}
	if req.Title != nil {
		i.Title = req.Title
	}
	if req.Expertise != nil {
		i.Expertise = req.Expertise
	}
	return i.ToDTO(), nil
}

// Search filters interviewers by name, email, department, or expertise.
func (s *InterviewerService) Search(ctx context.Context, filter model.SearchFilter, opts ports.ListOptions) ([]*model.DTO, int, error) {
	interviewers, total, err := s.repo.Search(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*model.DTO, 0, len(interviewers))
	for _, i := range interviewers {
		dtos = append(dtos, i.ToDTO())
	}
	return dtos, total, nil
}

func (s *InterviewerService) Archive(ctx context.Context, id string) error {
	return s.db.WithTx(ctx, func(tx pgx.Tx) error {
		return s.repo.SetArchived(ctx, tx, id, true)
	})
}

func (s *InterviewerService) Unarchive(ctx context.Context, id string) error {
	return s.db.WithTx(ctx, func(tx pgx.Tx) error {
		return s.repo.SetArchived(ctx, tx, id, false)
	})
}

// Delete removes an interviewer that has no interviews scheduled
// against them, past or future. Interviewers with a schedule history
// should be archived instead, to keep that history's foreign key intact.
func (s *InterviewerService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if s.schedule != nil {
		referenced, err := s.schedule.HasInterviewsForInterviewer(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return apperr.Forbidden("interviewer has scheduled interviews and cannot be deleted; archive instead")
		}
	}

	return s.db.WithTx(ctx, func(tx pgx.Tx) error {
		return s.repo.Delete(ctx, tx, id)
	})
}

func (s *InterviewerService) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}
