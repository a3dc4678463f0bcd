package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stemsi/placement-backend/internal/config"
	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/handler"
	"github.com/stemsi/placement-backend/internal/metrics"
	"github.com/stemsi/placement-backend/internal/repository"
	"github.com/stemsi/placement-backend/internal/router"
	"github.com/stemsi/placement-backend/internal/service"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type sessionMap struct {
	mu       sync.Mutex
	active   map[string]string
	failures map[string]int64
}

func (m *sessionMap) Save(_ context.Context, role, email, jti string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[role+email] = jti
	return nil
}

func (m *sessionMap) Get(_ context.Context, role, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active[role+email], nil
}

func (m *sessionMap) Delete(_ context.Context, role, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, role+email)
	return nil
}

func (m *sessionMap) FailedSignIns(_ context.Context, role, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures[role+email], nil
}

func (m *sessionMap) RecordFailedSignIn(_ context.Context, role, email string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[role+email]++
	return m.failures[role+email], nil
}

func (m *sessionMap) ResetFailedSignIns(_ context.Context, role, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.failures, role+email)
	return nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
	Pagination *struct {
		Count      int     `json:"count"`
		NextCursor *string `json:"next_cursor"`
	} `json:"pagination"`
}

type RouterSuite struct {
	suite.Suite
	engine *gin.Engine
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	cfg := &config.Config{
		GinMode:           gin.TestMode,
		JWTSecret:         "router-test-secret",
		JWTExpiry:         time.Hour,
		BcryptCost:        bcrypt.MinCost,
		SignInMaxAttempts: 5,
		SignInLockout:     time.Minute,
		AuthRateLimit:     1000,
		DefaultPageSize:   10,
		MaxPageSize:       50,
	}
	log := zerolog.Nop()
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	store := docstore.NewInMemory()
	paging := service.Paging{Default: cfg.DefaultPageSize, Max: cfg.MaxPageSize}

	instituteRepo := repository.NewInstituteRepository(store)
	adminRepo := repository.NewAdminRepository(store)
	recruiterRepo := repository.NewRecruiterRepository(store)
	studentRepo := repository.NewStudentRepository(store)
	jobRepo := repository.NewJobRepository(store)
	requestRepo := repository.NewVerificationRequestRepository(store)
	sessions := &sessionMap{active: map[string]string{}, failures: map[string]int64{}}

	instituteService := service.NewInstituteService(instituteRepo, nil, m, log)
	registrationService := service.NewRegistrationService(service.RegistrationDeps{
		Institutes: instituteService,
		Admins:     adminRepo,
		Recruiters: recruiterRepo,
		Students:   studentRepo,
		Requests:   requestRepo,
	}, cfg.BcryptCost, m, log)
	authService := service.NewAuthService(cfg, sessions, adminRepo, recruiterRepo, studentRepo, m, log)
	jobService := service.NewJobService(jobRepo, instituteService, paging, m, log)
	applicationService := service.NewApplicationService(repository.NewApplicationRepository(store), jobRepo, paging, m, log)

	s.engine = router.SetupRouter(router.Deps{
		Auth:     authService,
		Gatherer: registry,
		Log:      log,
	}, &router.Handlers{
		Auth:      handler.NewAuthHandler(registrationService, authService, service.NewAccountService(adminRepo, recruiterRepo, studentRepo)),
		Institute: handler.NewInstituteHandler(instituteService),
		Admin: handler.NewAdminHandler(
			service.NewStudentService(studentRepo, requestRepo, paging, m, log),
			service.NewRecruiterService(recruiterRepo, paging, m, log),
		),
		Setting:       handler.NewSettingHandler(service.NewSettingService(repository.NewSettingRepository(store), log)),
		Recruiter:     handler.NewRecruiterHandler(jobService, applicationService),
		StudentPortal: handler.NewStudentPortalHandler(jobService, applicationService),
	}, cfg)
}

func (s *RouterSuite) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.T().Helper()
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func (s *RouterSuite) registerAdmin() int {
	w, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"role":             "Admin",
		"email":            "admin@tech.example",
		"phone":            "9876543210",
		"password":         "secret123",
		"confirm_password": "secret123",
		"college_name":     "Tech U",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var reg struct {
		InstituteID int    `json:"institute_id"`
		Dashboard   string `json:"dashboard"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &reg))
	s.Equal("/admin", reg.Dashboard)
	return reg.InstituteID
}

func (s *RouterSuite) registerStudent(email string, instituteID int) {
	w, _ := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"role":             "Student",
		"email":            email,
		"phone":            "9123456780",
		"password":         "secret123",
		"confirm_password": "secret123",
		"institute_id":     instituteID,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (s *RouterSuite) login(role, email string) string {
	w, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"role":     role,
		"email":    email,
		"password": "secret123",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &res))
	return res.Token
}

func (s *RouterSuite) TestHealthAndMetrics() {
	w, _ := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/metrics", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestRegisterRejections() {
	s.Run("password mismatch", func() {
		w, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"role":             "Admin",
			"email":            "admin@tech.example",
			"phone":            "9876543210",
			"password":         "secret123",
			"confirm_password": "secret124",
			"college_name":     "Tech U",
		})
		s.Equal(http.StatusBadRequest, w.Code)
		s.Require().NotNil(env.Error)
		s.Equal("PASSWORD_MISMATCH", env.Error.Code)
	})

	s.Run("password over 72 bytes", func() {
		long := strings.Repeat("é", 40)
		w, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"role":             "Admin",
			"email":            "admin@tech.example",
			"phone":            "9876543210",
			"password":         long,
			"confirm_password": long,
			"college_name":     "Tech U",
		})
		s.Equal(http.StatusBadRequest, w.Code)
		s.Require().NotNil(env.Error)
		s.Equal("PASSWORD_TOO_LONG", env.Error.Code)
	})

	s.Run("password too short", func() {
		w, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"role":             "Admin",
			"email":            "admin@tech.example",
			"phone":            "9876543210",
			"password":         "abc",
			"confirm_password": "abc",
			"college_name":     "Tech U",
		})
		s.Equal(http.StatusBadRequest, w.Code)
		s.Require().NotNil(env.Error)
		s.Equal("PASSWORD_TOO_SHORT", env.Error.Code)
	})

	s.Run("unknown institute", func() {
		w, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"role":             "Student",
			"email":            "s@tech.example",
			"phone":            "9123456780",
			"password":         "secret123",
			"confirm_password": "secret123",
			"institute_id":     12345,
		})
		s.Equal(http.StatusBadRequest, w.Code)
		s.Require().NotNil(env.Error)
		s.Equal("INVALID_INSTITUTE", env.Error.Code)
	})

	s.Run("malformed body", func() {
		w, env := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{"email": "x"})
		s.Equal(http.StatusBadRequest, w.Code)
		s.Require().NotNil(env.Error)
		s.Equal("VALIDATION_ERROR", env.Error.Code)
	})
}

func (s *RouterSuite) TestInstituteLookup() {
	instituteID := s.registerAdmin()

	w, env := s.do(http.MethodGet, "/api/v1/public/institutes?name=Tech%20U", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Cache-Control"), "max-age=300")
	var found struct {
		InstituteID int `json:"institute_id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &found))
	s.Equal(instituteID, found.InstituteID)

	w, _ = s.do(http.MethodGet, "/api/v1/public/institutes?name=Nowhere", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("no-store", w.Header().Get("Cache-Control"))
}

func (s *RouterSuite) TestLoginFailures() {
	s.registerAdmin()

	w, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"role": "Admin", "email": "admin@tech.example", "password": "wrong-one",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Require().NotNil(env.Error)
	s.Equal("WRONG_PASSWORD", env.Error.Code)
	s.Equal("Invalid password. Please try again.", env.Error.Message)

	w, env = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"role": "Student", "email": "admin@tech.example", "password": "secret123",
	})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Require().NotNil(env.Error)
	s.Equal("USER_NOT_FOUND", env.Error.Code)
}

func (s *RouterSuite) TestSessionLifecycle() {
	s.registerAdmin()
	first := s.login("Admin", "admin@tech.example")

	w, env := s.do(http.MethodGet, "/api/v1/auth/me", first, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var me struct {
		Email string `json:"email"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &me))
	s.Equal("admin@tech.example", me.Email)

	second := s.login("Admin", "admin@tech.example")
	w, env = s.do(http.MethodGet, "/api/v1/auth/me", first, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Require().NotNil(env.Error)
	s.Equal("SESSION_INVALIDATED", env.Error.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/auth/logout", second, nil)
	s.Equal(http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, "/api/v1/auth/me", second, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterSuite) TestRoleGuard() {
	instituteID := s.registerAdmin()
	s.registerStudent("s1@tech.example", instituteID)
	token := s.login("Student", "s1@tech.example")

	w, env := s.do(http.MethodGet, "/api/v1/admin/students", token, nil)
	s.Equal(http.StatusForbidden, w.Code)
	s.Require().NotNil(env.Error)
	s.Equal("ADMIN_ACCESS_ONLY", env.Error.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/admin/students", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterSuite) TestAdminPagesStudents() {
	instituteID := s.registerAdmin()
	for _, email := range []string{"s1@tech.example", "s2@tech.example", "s3@tech.example"} {
		s.registerStudent(email, instituteID)
	}
	token := s.login("Admin", "admin@tech.example")

	var counts []int
	path := "/api/v1/admin/students?page_size=2"
	for i := 0; i < 3; i++ {
		w, env := s.do(http.MethodGet, path, token, nil)
		s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		s.Require().NotNil(env.Pagination)
		counts = append(counts, env.Pagination.Count)
		if env.Pagination.NextCursor == nil {
			s.Equal(2, i, "only the empty page ends the stream")
			break
		}
		path = "/api/v1/admin/students?page_size=2&cursor=" + *env.Pagination.NextCursor
	}
	s.Equal([]int{2, 1, 0}, counts)

	w, env := s.do(http.MethodGet, "/api/v1/admin/students?cursor=garbage", token, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Require().NotNil(env.Error)
	s.Equal("INVALID_CURSOR", env.Error.Code)
}

func (s *RouterSuite) TestJobApplicationFlow() {
	instituteID := s.registerAdmin()
	s.registerStudent("s1@tech.example", instituteID)

	w, _ := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"role":             "Recruiter",
		"email":            "hr@acme.example",
		"password":         "secret123",
		"confirm_password": "secret123",
		"company_name":     "Acme",
		"institute_ids":    []int{instituteID},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	recruiter := s.login("Recruiter", "hr@acme.example")
	w, env := s.do(http.MethodPost, "/api/v1/recruiter/jobs", recruiter, map[string]any{
		"job_title":    "Graduate Engineer",
		"description":  "Build things.",
		"institute_id": instituteID,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var job struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &job))

	student := s.login("Student", "s1@tech.example")
	w, env = s.do(http.MethodGet, "/api/v1/student/jobs", student, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(1, env.Pagination.Count)

	w, _ = s.do(http.MethodPost, "/api/v1/student/jobs/"+job.ID+"/apply", student, nil)
	s.Equal(http.StatusCreated, w.Code, w.Body.String())

	w, env = s.do(http.MethodPost, "/api/v1/student/jobs/"+job.ID+"/apply", student, nil)
	s.Equal(http.StatusConflict, w.Code)
	s.Require().NotNil(env.Error)
	s.Equal("ALREADY_APPLIED", env.Error.Code)

	w, env = s.do(http.MethodGet, "/api/v1/recruiter/applications?institute_id="+strconv.Itoa(instituteID), recruiter, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(1, env.Pagination.Count)
}

func (s *RouterSuite) TestSettingsArePublic() {
	instituteID := s.registerAdmin()
	token := s.login("Admin", "admin@tech.example")

	w, _ := s.do(http.MethodPut, "/api/v1/admin/settings", token, map[string]any{
		"branding_color":   "#0a7cff",
		"placement_policy": "One offer per student.",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w, env := s.do(http.MethodGet, "/api/v1/public/institutes/"+strconv.Itoa(instituteID)+"/settings", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var settings struct {
		InstituteID   int    `json:"institute_id"`
		BrandingColor string `json:"branding_color"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &settings))
	s.Equal(instituteID, settings.InstituteID)
	s.Equal("#0a7cff", settings.BrandingColor)

	w, env = s.do(http.MethodGet, "/api/v1/public/institutes/abc/settings", "", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Require().NotNil(env.Error)
	s.Equal("INVALID_PAYLOAD", env.Error.Code)
}
