package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stretchr/testify/suite"
)

type RegistrationSuite struct {
	suite.Suite
	ctx context.Context
	env *testEnv
}

func TestRegistrationSuite(t *testing.T) {
	suite.Run(t, new(RegistrationSuite))
}

func (s *RegistrationSuite) SetupTest() {
	s.ctx = context.Background()
	s.env = newTestEnv(s.T(), nil)
}

func adminRequest() model.RegisterRequest {
	return model.RegisterRequest{
		Role:            model.RoleAdmin,
		Email:           "admin@tech.example",
		Phone:           "9876543210",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		CollegeName:     "Tech U",
		Address:         "1 Campus Road",
		AdminName:       "Ada",
	}
}

func studentRequest(instituteID int) model.RegisterRequest {
	return model.RegisterRequest{
		Role:            model.RoleStudent,
		Email:           "student@tech.example",
		Phone:           "9123456780",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		InstituteID:     instituteID,
		Age:             21,
		StudentName:     "Sam",
	}
}

func (s *RegistrationSuite) requireRejected(err, reason error) {
	s.T().Helper()
	var ve *ValidationError
	s.Require().ErrorAs(err, &ve)
	s.ErrorIs(err, reason)
}

func (s *RegistrationSuite) TestAdminCreatesInstitute() {
	reg, err := s.env.registration.Register(s.ctx, adminRequest())
	s.Require().NoError(err)

	s.Equal("admin@tech.example", reg.AccountID)
	s.Equal(model.RoleAdmin, reg.Role)
	s.Equal("Tech U", reg.CollegeName)
	s.Equal("/admin", reg.Dashboard)
	s.GreaterOrEqual(reg.InstituteID, MinInstituteID)
	s.LessOrEqual(reg.InstituteID, MaxInstituteID)

	inst, err := s.env.institutes.Lookup(s.ctx, "Tech U")
	s.Require().NoError(err)
	s.Equal(reg.InstituteID, inst.InstituteID)

	profile, err := s.env.accounts.Profile(s.ctx, model.RoleAdmin, "admin@tech.example")
	s.Require().NoError(err)
	s.Equal(reg.InstituteID, profile.InstituteID)
	s.Equal("Ada", profile.Name)
}

func (s *RegistrationSuite) TestSecondAdminJoinsExistingInstitute() {
	first, err := s.env.registration.Register(s.ctx, adminRequest())
	s.Require().NoError(err)

	req := adminRequest()
	req.Email = "dean@tech.example"
	req.CollegeName = "  Tech U  "
	second, err := s.env.registration.Register(s.ctx, req)
	s.Require().NoError(err)

	s.Equal(first.InstituteID, second.InstituteID)
	docs, err := s.env.store.Query(s.ctx, docstore.Query{Collection: model.CollectionInstitutes})
	s.Require().NoError(err)
	s.Len(docs, 1)
}

func (s *RegistrationSuite) TestStudentJoinsByID() {
	admin, err := s.env.registration.Register(s.ctx, adminRequest())
	s.Require().NoError(err)

	reg, err := s.env.registration.Register(s.ctx, studentRequest(admin.InstituteID))
	s.Require().NoError(err)
	s.Equal(admin.InstituteID, reg.InstituteID)
	s.Equal("Tech U", reg.CollegeName)
	s.Equal("/student", reg.Dashboard)

	st, err := s.env.studentRepo.GetByEmail(s.ctx, "student@tech.example")
	s.Require().NoError(err)
	s.False(st.Verified)
	s.Equal("Tech U", st.CollegeName)

	requests, next, err := s.env.requestRepo.ListByInstitute(s.ctx, admin.InstituteID, pageOf(10))
	s.Require().NoError(err)
	s.Require().Len(requests, 1)
	s.NotEmpty(next)
	s.Equal(model.VerificationStudent, requests[0].Type)
	s.Equal("student@tech.example", requests[0].StudentEmail)
}

func (s *RegistrationSuite) TestStudentJoinsByCampusName() {
	admin, err := s.env.registration.Register(s.ctx, adminRequest())
	s.Require().NoError(err)

	req := studentRequest(0)
	req.CampusName = "Tech U"
	reg, err := s.env.registration.Register(s.ctx, req)
	s.Require().NoError(err)
	s.Equal(admin.InstituteID, reg.InstituteID)
}

func (s *RegistrationSuite) TestStudentUnknownInstitute() {
	s.Run("unknown id", func() {
		_, err := s.env.registration.Register(s.ctx, studentRequest(12345))
		s.requireRejected(err, ErrInvalidInstitute)
	})

	s.Run("unknown campus name is never created", func() {
		req := studentRequest(0)
		req.CampusName = "Nowhere College"
		_, err := s.env.registration.Register(s.ctx, req)
		s.requireRejected(err, ErrInvalidInstitute)

		docs, err := s.env.store.Query(s.ctx, docstore.Query{Collection: model.CollectionInstitutes})
		s.Require().NoError(err)
		s.Empty(docs)
	})

	s.Run("no reference", func() {
		_, err := s.env.registration.Register(s.ctx, studentRequest(0))
		s.requireRejected(err, ErrInvalidInstitute)
	})

	_, err := s.env.studentRepo.GetByEmail(s.ctx, "student@tech.example")
	s.Error(err, "rejected registrations write nothing")
}

func (s *RegistrationSuite) TestRecruiter() {
	s.Run("phone is optional", func() {
		reg, err := s.env.registration.Register(s.ctx, model.RegisterRequest{
			Role:            model.RoleRecruiter,
			Email:           "hr@acme.example",
			Password:        "secret123",
			ConfirmPassword: "secret123",
			CompanyName:     "Acme",
			InstituteIDs:    []int{10001, 10002, 10001},
		})
		s.Require().NoError(err)
		s.Equal("/recruiter", reg.Dashboard)
		s.Zero(reg.InstituteID)

		profile, err := s.env.accounts.Profile(s.ctx, model.RoleRecruiter, "hr@acme.example")
		s.Require().NoError(err)
		s.Equal("Acme", profile.CompanyName)
		s.Require().NotNil(profile.Approved)
		s.False(*profile.Approved)
	})

	s.Run("phone is checked when given", func() {
		_, err := s.env.registration.Register(s.ctx, model.RegisterRequest{
			Role:            model.RoleRecruiter,
			Email:           "hr@acme.example",
			Phone:           "12345",
			Password:        "secret123",
			ConfirmPassword: "secret123",
			CompanyName:     "Acme",
		})
		s.requireRejected(err, ErrInvalidPhone)
	})

	s.Run("company name required", func() {
		_, err := s.env.registration.Register(s.ctx, model.RegisterRequest{
			Role:            model.RoleRecruiter,
			Email:           "hr@acme.example",
			Password:        "secret123",
			ConfirmPassword: "secret123",
			CompanyName:     "   ",
		})
		s.requireRejected(err, ErrMissingCompanyName)
	})
}

func (s *RegistrationSuite) TestValidationOrder() {
	cases := []struct {
		name   string
		mutate func(*model.RegisterRequest)
		want   error
	}{
		{
			name: "password mismatch wins over every other problem",
			mutate: func(r *model.RegisterRequest) {
				r.ConfirmPassword = "other"
				r.CollegeName = ""
				r.Email = "bad"
			},
			want: ErrPasswordMismatch,
		},
		{
			name: "password length checked before role fields",
			mutate: func(r *model.RegisterRequest) {
				r.Password, r.ConfirmPassword = "abc", "abc"
				r.CollegeName = ""
			},
			want: ErrPasswordTooShort,
		},
		{
			name: "missing college name before contact checks",
			mutate: func(r *model.RegisterRequest) {
				r.CollegeName = ""
				r.Email = "bad"
			},
			want: ErrMissingCollegeName,
		},
		{
			name:   "invalid email",
			mutate: func(r *model.RegisterRequest) { r.Email = "not-an-email" },
			want:   ErrInvalidEmail,
		},
		{
			name:   "admin phone required",
			mutate: func(r *model.RegisterRequest) { r.Phone = "" },
			want:   ErrInvalidPhone,
		},
		{
			name:   "phone must be ten digits",
			mutate: func(r *model.RegisterRequest) { r.Phone = "98765-4321" },
			want:   ErrInvalidPhone,
		},
		{
			name:   "unknown role",
			mutate: func(r *model.RegisterRequest) { r.Role = "Dean" },
			want:   ErrUnknownRole,
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := adminRequest()
			tc.mutate(&req)
			_, err := s.env.registration.Register(s.ctx, req)
			s.requireRejected(err, tc.want)
		})
	}

	docs, err := s.env.store.Query(s.ctx, docstore.Query{Collection: model.CollectionInstitutes})
	s.Require().NoError(err)
	s.Empty(docs, "no institute is created for a rejected admin")
}

func (s *RegistrationSuite) TestPasswordLength() {
	cases := []struct {
		name     string
		password string
		want     error
	}{
		{"five characters", "abcde", ErrPasswordTooShort},
		{"40 multibyte characters are 80 bytes", strings.Repeat("é", 40), ErrPasswordTooLong},
		{"73 ascii bytes", strings.Repeat("a", 73), ErrPasswordTooLong},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := adminRequest()
			req.Password, req.ConfirmPassword = tc.password, tc.password
			_, err := s.env.registration.Register(s.ctx, req)
			s.requireRejected(err, tc.want)

			var pe *PersistenceError
			s.False(errors.As(err, &pe))
		})
	}

	s.Run("six multibyte characters and 72 bytes are accepted", func() {
		for _, pw := range []string{"éééééé", strings.Repeat("a", 72)} {
			req := adminRequest()
			req.Password, req.ConfirmPassword = pw, pw
			_, err := s.env.registration.Register(s.ctx, req)
			s.Require().NoError(err)
		}
	})
}

func (s *RegistrationSuite) TestReRegistrationOverwrites() {
	_, err := s.env.registration.Register(s.ctx, adminRequest())
	s.Require().NoError(err)

	req := adminRequest()
	req.AdminName = "Grace"
	req.Password = "newsecret1"
	req.ConfirmPassword = "newsecret1"
	_, err = s.env.registration.Register(s.ctx, req)
	s.Require().NoError(err)

	profile, err := s.env.accounts.Profile(s.ctx, model.RoleAdmin, req.Email)
	s.Require().NoError(err)
	s.Equal("Grace", profile.Name)

	_, err = s.env.auth.SignIn(s.ctx, model.RoleAdmin, req.Email, "newsecret1")
	s.NoError(err)
}

func (s *RegistrationSuite) TestPersistenceFailure() {
	store := &flakyStore{InMemory: docstore.NewInMemory(), failPut: map[string]bool{model.CollectionAdmins: true}}
	env := newTestEnv(s.T(), store)

	_, err := env.registration.Register(s.ctx, adminRequest())
	var pe *PersistenceError
	s.Require().ErrorAs(err, &pe)
	s.Equal("save admin", pe.Op)
	s.ErrorIs(err, errStoreDown)

	var ve *ValidationError
	s.False(errors.As(err, &ve))

	// The institute written before the failure stays.
	_, err = env.institutes.Lookup(s.ctx, "Tech U")
	s.NoError(err)
}
