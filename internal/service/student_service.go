package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/placement-backend/internal/metrics"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/repository"
)

// StudentService handles the institute admin's view of its students.
type StudentService struct {
	studentRepo *repository.StudentRepository
	requestRepo *repository.VerificationRequestRepository
	paging      Paging
	metrics     *metrics.Metrics
	log         zerolog.Logger
}

// NewStudentService creates a new StudentService.
func NewStudentService(
	studentRepo *repository.StudentRepository,
	requestRepo *repository.VerificationRequestRepository,
	paging Paging,
	m *metrics.Metrics,
	log zerolog.Logger,
) *StudentService {
	return &StudentService{
		studentRepo: studentRepo,
		requestRepo: requestRepo,
		paging:      paging,
		metrics:     m,
		log:         log.With().Str("component", "student_service").Logger(),
	}
}

// GetByEmail retrieves a student by their email.
func (s *StudentService) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return s.studentRepo.GetByEmail(ctx, email)
}

// ListByInstitute returns one page of the institute's students.
func (s *StudentService) ListByInstitute(ctx context.Context, instituteID int, q model.PageQuery) ([]model.Student, string, error) {
	defer s.metrics.ObservePageFetch(model.CollectionStudents, time.Now())
	return s.studentRepo.ListByInstitute(ctx, instituteID, s.paging.Params(q))
}

// ListVerificationRequests returns one page of the institute's open requests.
func (s *StudentService) ListVerificationRequests(ctx context.Context, instituteID int, q model.PageQuery) ([]model.VerificationRequest, string, error) {
	defer s.metrics.ObservePageFetch(model.CollectionAdminRequests, time.Now())
	return s.requestRepo.ListByInstitute(ctx, instituteID, s.paging.Params(q))
}

// Verify marks a student of the institute as verified and closes their
// verification requests.
func (s *StudentService) Verify(ctx context.Context, instituteID int, email string) error {
	if _, err := s.ownStudent(ctx, instituteID, email); err != nil {
		return err
	}
	if err := s.studentRepo.SetVerified(ctx, email, true); err != nil {
		return fmt.Errorf("verify student: %w", err)
	}
	if err := s.requestRepo.DeleteForStudent(ctx, email); err != nil {
		return fmt.Errorf("close verification requests: %w", err)
	}
	s.log.Info().Str("email", email).Int("institute_id", instituteID).Msg("Student verified")
	return nil
}

// Remove deletes a student of the institute along with their open requests.
func (s *StudentService) Remove(ctx context.Context, instituteID int, email string) error {
	if _, err := s.ownStudent(ctx, instituteID, email); err != nil {
		return err
	}
	if err := s.studentRepo.Delete(ctx, email); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if err := s.requestRepo.DeleteForStudent(ctx, email); err != nil {
		return fmt.Errorf("close verification requests: %w", err)
	}
	s.log.Info().Str("email", email).Int("institute_id", instituteID).Msg("Student removed")
	return nil
}

func (s *StudentService) ownStudent(ctx context.Context, instituteID int, email string) (*model.Student, error) {
	st, err := s.studentRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if st.InstituteID != instituteID {
		return nil, ErrNotInInstitute
	}
	return st, nil
}
