package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/placement-backend/internal/metrics"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/repository"
)

// ApplicationService handles student applications to jobs.
type ApplicationService struct {
	appRepo *repository.ApplicationRepository
	jobRepo *repository.JobRepository
	paging  Paging
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(appRepo *repository.ApplicationRepository, jobRepo *repository.JobRepository, paging Paging, m *metrics.Metrics, log zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		appRepo: appRepo,
		jobRepo: jobRepo,
		paging:  paging,
		metrics: m,
		log:     log.With().Str("component", "application_service").Logger(),
	}
}

// Apply files a pending application for a job of the student's institute.
// A student can apply to each job once.
func (s *ApplicationService) Apply(ctx context.Context, studentEmail string, instituteID int, jobID string, req model.ApplyRequest) (*model.Application, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.InstituteID != instituteID {
		return nil, ErrJobNotInInstitute
	}

	_, err = s.appRepo.FindByStudentAndJob(ctx, studentEmail, jobID)
	if err == nil {
		return nil, ErrAlreadyApplied
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find application: %w", err)
	}

	app := &model.Application{
		ID:                uuid.NewString(),
		StudentEmail:      studentEmail,
		JobID:             jobID,
		InstituteID:       job.InstituteID,
		Status:            model.ApplicationPending,
		ApplicationFields: req.ApplicationFields,
		DateApplied:       time.Now().UTC().Truncate(time.Second),
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}

	s.log.Info().Str("application_id", app.ID).Str("job_id", jobID).Str("student", studentEmail).Msg("Application submitted")
	return app, nil
}

// ListByStudent returns one page of the student's applications.
func (s *ApplicationService) ListByStudent(ctx context.Context, studentEmail string, q model.PageQuery) ([]model.Application, string, error) {
	defer s.metrics.ObservePageFetch(model.CollectionApplications, time.Now())
	return s.appRepo.ListByStudent(ctx, studentEmail, s.paging.Params(q))
}

// ListByInstitute returns one page of applications to the institute's jobs.
func (s *ApplicationService) ListByInstitute(ctx context.Context, instituteID int, q model.PageQuery) ([]model.Application, string, error) {
	defer s.metrics.ObservePageFetch(model.CollectionApplications, time.Now())
	return s.appRepo.ListByInstitute(ctx, instituteID, s.paging.Params(q))
}

// UpdateStatus moves an application to status. Only the recruiter who posted
// the job may do so.
func (s *ApplicationService) UpdateStatus(ctx context.Context, recruiterEmail, applicationID string, status model.ApplicationStatus) (*model.Application, error) {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if job.RecruiterEmail != recruiterEmail {
		return nil, ErrNotJobOwner
	}

	if err := s.appRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	app.Status = status

	s.log.Info().Str("application_id", applicationID).Str("status", string(status)).Msg("Application status updated")
	return app, nil
}
