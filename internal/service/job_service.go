package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/metrics"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/repository"
)

// JobService handles job postings.
type JobService struct {
	jobRepo    *repository.JobRepository
	institutes *InstituteService
	paging     Paging
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewJobService creates a new JobService.
func NewJobService(jobRepo *repository.JobRepository, institutes *InstituteService, paging Paging, m *metrics.Metrics, log zerolog.Logger) *JobService {
	return &JobService{
		jobRepo:    jobRepo,
		institutes: institutes,
		paging:     paging,
		metrics:    m,
		log:        log.With().Str("component", "job_service").Logger(),
	}
}

// Create posts a job to an existing institute.
func (s *JobService) Create(ctx context.Context, recruiterEmail string, req model.CreateJobRequest) (*model.Job, error) {
	if _, err := s.institutes.GetByID(ctx, req.InstituteID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidInstitute
		}
		return nil, fmt.Errorf("get institute: %w", err)
	}

	job := &model.Job{
		ID:             uuid.NewString(),
		JobTitle:       req.JobTitle,
		Description:    req.Description,
		Eligibility:    req.Eligibility,
		Location:       req.Location,
		Salary:         req.Salary,
		InstituteID:    req.InstituteID,
		RecruiterEmail: recruiterEmail,
		// Whole seconds keep the stored timestamps the same length, so they
		// sort chronologically.
		DatePosted: time.Now().UTC().Truncate(time.Second),
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.log.Info().Str("job_id", job.ID).Int("institute_id", job.InstituteID).Str("recruiter", recruiterEmail).Msg("Job posted")
	return job, nil
}

// GetByID retrieves a job by id.
func (s *JobService) GetByID(ctx context.Context, id string) (*model.Job, error) {
	return s.jobRepo.GetByID(ctx, id)
}

// ListByInstitute returns one page of the institute's jobs.
func (s *JobService) ListByInstitute(ctx context.Context, instituteID int, q model.PageQuery) ([]model.Job, string, error) {
	defer s.metrics.ObservePageFetch(model.CollectionJobs, time.Now())
	return s.jobRepo.ListByInstitute(ctx, instituteID, s.paging.Params(q))
}

// ListPosts returns one page of all jobs ordered by posting date.
func (s *JobService) ListPosts(ctx context.Context, dir docstore.Direction, q model.PageQuery) ([]model.Job, string, error) {
	defer s.metrics.ObservePageFetch(model.CollectionJobs, time.Now())
	return s.jobRepo.ListByDatePosted(ctx, dir, s.paging.Params(q))
}
