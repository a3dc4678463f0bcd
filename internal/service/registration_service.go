package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/placement-backend/internal/metrics"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/repository"
	"github.com/stemsi/placement-backend/internal/validator"
)

// Password limits. bcrypt reads at most 72 bytes, so the upper bound is in
// bytes; the lower bound counts characters.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

// RegistrationService validates sign-up forms and writes the new account
// into its role's partition. It keeps no state between calls.
type RegistrationService struct {
	institutes *InstituteService
	admins     *repository.AdminRepository
	recruiters *repository.RecruiterRepository
	students   *repository.StudentRepository
	requests   *repository.VerificationRequestRepository
	bcryptCost int
	validate   *govalidator.Validate
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// RegistrationDeps groups the repositories the registrar writes to.
type RegistrationDeps struct {
	Institutes *InstituteService
	Admins     *repository.AdminRepository
	Recruiters *repository.RecruiterRepository
	Students   *repository.StudentRepository
	Requests   *repository.VerificationRequestRepository
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(deps RegistrationDeps, bcryptCost int, m *metrics.Metrics, log zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		institutes: deps.Institutes,
		admins:     deps.Admins,
		recruiters: deps.Recruiters,
		students:   deps.Students,
		requests:   deps.Requests,
		bcryptCost: bcryptCost,
		validate:   validator.New(),
		metrics:    m,
		log:        log.With().Str("component", "registration_service").Logger(),
	}
}

// Register creates an account for req.Role.
//
// Checks run in a fixed order and stop at the first failure: password
// confirmation, password length, the role's required name field, contact formats, then (for
// students) the institute reference. Nothing is written until all pass.
// Failures are *ValidationError; store failures are *PersistenceError.
func (s *RegistrationService) Register(ctx context.Context, req model.RegisterRequest) (*model.Registration, error) {
	if req.Password != req.ConfirmPassword {
		return nil, s.reject(req.Role, ErrPasswordMismatch)
	}
	if utf8.RuneCountInString(req.Password) < MinPasswordLength {
		return nil, s.reject(req.Role, ErrPasswordTooShort)
	}
	if len(req.Password) > MaxPasswordBytes {
		return nil, s.reject(req.Role, ErrPasswordTooLong)
	}

	var (
		reg *model.Registration
		err error
	)
	switch req.Role {
	case model.RoleAdmin:
		reg, err = s.registerAdmin(ctx, req)
	case model.RoleRecruiter:
		reg, err = s.registerRecruiter(ctx, req)
	case model.RoleStudent:
		reg, err = s.registerStudent(ctx, req)
	default:
		return nil, s.reject(req.Role, ErrUnknownRole)
	}
	if err != nil {
		return nil, err
	}

	s.metrics.IncrementRegistration(string(reg.Role))
	s.log.Info().
		Str("role", string(reg.Role)).
		Str("email", reg.AccountID).
		Int("institute_id", reg.InstituteID).
		Msg("Account registered")
	return reg, nil
}

func (s *RegistrationService) registerAdmin(ctx context.Context, req model.RegisterRequest) (*model.Registration, error) {
	collegeName := InstituteKey(req.CollegeName)
	if collegeName == "" {
		return nil, s.reject(req.Role, ErrMissingCollegeName)
	}
	if err := s.checkContact(req.Email, req.Phone, true); err != nil {
		return nil, s.reject(req.Role, err)
	}

	hash, err := hashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	instituteID, err := s.institutes.Resolve(ctx, collegeName)
	if err != nil {
		return nil, &PersistenceError{Op: "resolve institute", Err: err}
	}

	if _, err := s.admins.GetByEmail(ctx, req.Email); err == nil {
		s.warnOverwrite(req.Role, req.Email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, &PersistenceError{Op: "get admin", Err: err}
	}

	admin := &model.Admin{
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		InstituteID:  instituteID,
		CollegeName:  collegeName,
		Address:      req.Address,
		AdminName:    req.AdminName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.admins.Save(ctx, admin); err != nil {
		return nil, &PersistenceError{Op: "save admin", Err: err}
	}

	return &model.Registration{
		AccountID:   admin.Email,
		Role:        model.RoleAdmin,
		InstituteID: instituteID,
		CollegeName: collegeName,
		Dashboard:   model.RoleAdmin.Dashboard(),
	}, nil
}

func (s *RegistrationService) registerRecruiter(ctx context.Context, req model.RegisterRequest) (*model.Registration, error) {
	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		return nil, s.reject(req.Role, ErrMissingCompanyName)
	}
	if err := s.checkContact(req.Email, req.Phone, false); err != nil {
		return nil, s.reject(req.Role, err)
	}

	hash, err := hashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.recruiters.GetByEmail(ctx, req.Email); err == nil {
		s.warnOverwrite(req.Role, req.Email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, &PersistenceError{Op: "get recruiter", Err: err}
	}

	recruiter := &model.Recruiter{
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         model.RoleRecruiter,
		CompanyName:  companyName,
		InstituteIDs: dedupeIDs(req.InstituteIDs),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.recruiters.Save(ctx, recruiter); err != nil {
		return nil, &PersistenceError{Op: "save recruiter", Err: err}
	}

	return &model.Registration{
		AccountID: recruiter.Email,
		Role:      model.RoleRecruiter,
		Dashboard: model.RoleRecruiter.Dashboard(),
	}, nil
}

func (s *RegistrationService) registerStudent(ctx context.Context, req model.RegisterRequest) (*model.Registration, error) {
	if err := s.checkContact(req.Email, req.Phone, true); err != nil {
		return nil, s.reject(req.Role, err)
	}

	inst, err := s.studentInstitute(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, s.reject(req.Role, ErrInvalidInstitute)
		}
		return nil, &PersistenceError{Op: "get institute", Err: err}
	}

	hash, err := hashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.students.GetByEmail(ctx, req.Email); err == nil {
		s.warnOverwrite(req.Role, req.Email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, &PersistenceError{Op: "get student", Err: err}
	}

	now := time.Now().UTC()
	student := &model.Student{
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         model.RoleStudent,
		InstituteID:  inst.InstituteID,
		CollegeName:  inst.Name,
		Age:          req.Age,
		StudentName:  req.StudentName,
		Verified:     false,
		CreatedAt:    now,
	}
	if err := s.students.Save(ctx, student); err != nil {
		return nil, &PersistenceError{Op: "save student", Err: err}
	}

	vr := &model.VerificationRequest{
		ID:           uuid.NewString(),
		Type:         model.VerificationStudent,
		StudentEmail: student.Email,
		InstituteID:  inst.InstituteID,
		CreatedAt:    now,
	}
	if err := s.requests.Create(ctx, vr); err != nil {
		return nil, &PersistenceError{Op: "file verification request", Err: err}
	}

	return &model.Registration{
		AccountID:   student.Email,
		Role:        model.RoleStudent,
		InstituteID: inst.InstituteID,
		CollegeName: inst.Name,
		Dashboard:   model.RoleStudent.Dashboard(),
	}, nil
}

// studentInstitute resolves the student's institute reference. The numeric
// id is canonical; the campus name is accepted as a legacy form and never
// creates an institute.
func (s *RegistrationService) studentInstitute(ctx context.Context, req model.RegisterRequest) (*model.Institute, error) {
	switch {
	case req.InstituteID != 0:
		return s.institutes.GetByID(ctx, req.InstituteID)
	case InstituteKey(req.CampusName) != "":
		return s.institutes.Lookup(ctx, req.CampusName)
	}
	return nil, repository.ErrNotFound
}

// checkContact validates the email and, when required or present, the phone.
func (s *RegistrationService) checkContact(email, phone string, phoneRequired bool) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return ErrInvalidEmail
	}
	if phone == "" && !phoneRequired {
		return nil
	}
	if err := s.validate.Var(phone, "required,"+validator.PhoneTag); err != nil {
		return ErrInvalidPhone
	}
	return nil
}

func (s *RegistrationService) reject(role model.Role, reason error) error {
	s.metrics.IncrementRegistrationReject(rejectReason(reason))
	s.log.Debug().Str("role", string(role)).Err(reason).Msg("Registration rejected")
	return &ValidationError{Err: reason}
}

func (s *RegistrationService) warnOverwrite(role model.Role, email string) {
	s.log.Warn().Str("role", string(role)).Str("email", email).Msg("Re-registration overwrites existing account")
}

func dedupeIDs(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
