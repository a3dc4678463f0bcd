package service

import (
	"context"

	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/repository"
)

// AccountService reads accounts across the role partitions.
type AccountService struct {
	adminRepo     *repository.AdminRepository
	recruiterRepo *repository.RecruiterRepository
	studentRepo   *repository.StudentRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(adminRepo *repository.AdminRepository, recruiterRepo *repository.RecruiterRepository, studentRepo *repository.StudentRepository) *AccountService {
	return &AccountService{adminRepo: adminRepo, recruiterRepo: recruiterRepo, studentRepo: studentRepo}
}

// Profile returns the account identified by role and email.
func (s *AccountService) Profile(ctx context.Context, role model.Role, email string) (*model.Profile, error) {
	switch role {
	case model.RoleAdmin:
		a, err := s.adminRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &model.Profile{
			Role:        role,
			Email:       a.Email,
			Phone:       a.Phone,
			Name:        a.AdminName,
			InstituteID: a.InstituteID,
			CollegeName: a.CollegeName,
			Dashboard:   role.Dashboard(),
		}, nil
	case model.RoleRecruiter:
		r, err := s.recruiterRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &model.Profile{
			Role:        role,
			Email:       r.Email,
			Phone:       r.Phone,
			CompanyName: r.CompanyName,
			Approved:    &r.Approved,
			Dashboard:   role.Dashboard(),
		}, nil
	case model.RoleStudent:
		st, err := s.studentRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return &model.Profile{
			Role:        role,
			Email:       st.Email,
			Phone:       st.Phone,
			Name:        st.StudentName,
			InstituteID: st.InstituteID,
			CollegeName: st.CollegeName,
			Verified:    &st.Verified,
			Dashboard:   role.Dashboard(),
		}, nil
	}
	return nil, repository.ErrNotFound
}
