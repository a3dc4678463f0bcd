package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/placement-backend/internal/metrics"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/repository"
)

// RecruiterService handles recruiters as seen by an institute admin.
type RecruiterService struct {
	recruiterRepo *repository.RecruiterRepository
	paging        Paging
	metrics       *metrics.Metrics
	log           zerolog.Logger
}

// NewRecruiterService creates a new RecruiterService.
func NewRecruiterService(recruiterRepo *repository.RecruiterRepository, paging Paging, m *metrics.Metrics, log zerolog.Logger) *RecruiterService {
	return &RecruiterService{
		recruiterRepo: recruiterRepo,
		paging:        paging,
		metrics:       m,
		log:           log.With().Str("component", "recruiter_service").Logger(),
	}
}

// ListByInstitute returns one page of recruiters recruiting from the institute.
func (s *RecruiterService) ListByInstitute(ctx context.Context, instituteID int, q model.PageQuery) ([]model.Recruiter, string, error) {
	defer s.metrics.ObservePageFetch(model.CollectionRecruiters, time.Now())
	return s.recruiterRepo.ListByInstitute(ctx, instituteID, s.paging.Params(q))
}

// Approve approves a recruiter that recruits from the institute.
func (s *RecruiterService) Approve(ctx context.Context, instituteID int, email string) error {
	rec, err := s.recruiterRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !slices.Contains(rec.InstituteIDs, instituteID) {
		return ErrNotInInstitute
	}
	if err := s.recruiterRepo.SetApproved(ctx, email, true); err != nil {
		return fmt.Errorf("approve recruiter: %w", err)
	}
	s.log.Info().Str("email", email).Int("institute_id", instituteID).Msg("Recruiter approved")
	return nil
}
