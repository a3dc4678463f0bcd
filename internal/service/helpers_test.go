package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stemsi/placement-backend/internal/config"
	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/metrics"
	"github.com/stemsi/placement-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var errStoreDown = errors.New("store unavailable")

// flakyStore wraps an in-memory store and fails writes to the listed
// collections.
type flakyStore struct {
	*docstore.InMemory
	failPut map[string]bool
}

func (f *flakyStore) Put(ctx context.Context, collection, key string, fields docstore.Fields) error {
	if f.failPut[collection] {
		return errStoreDown
	}
	return f.InMemory.Put(ctx, collection, key, fields)
}

// failingQueryStore fails every read.
type failingQueryStore struct {
	*docstore.InMemory
}

func (f *failingQueryStore) Get(context.Context, string, string) (*docstore.Document, error) {
	return nil, errStoreDown
}

func (f *failingQueryStore) Query(context.Context, docstore.Query) ([]docstore.Document, error) {
	return nil, errStoreDown
}

// memorySessions is a SessionStore held in a map.
type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]string
	failures map[string]int64
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]string{}, failures: map[string]int64{}}
}

func (m *memorySessions) Save(_ context.Context, role, email, jti string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[role+":"+email] = jti
	return nil
}

func (m *memorySessions) Get(_ context.Context, role, email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[role+":"+email], nil
}

func (m *memorySessions) Delete(_ context.Context, role, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, role+":"+email)
	return nil
}

func (m *memorySessions) FailedSignIns(_ context.Context, role, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures[role+":"+email], nil
}

func (m *memorySessions) RecordFailedSignIn(_ context.Context, role, email string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[role+":"+email]++
	return m.failures[role+":"+email], nil
}

func (m *memorySessions) ResetFailedSignIns(_ context.Context, role, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.failures, role+":"+email)
	return nil
}

// testEnv wires every service over one document store.
type testEnv struct {
	store    docstore.Store
	sessions *memorySessions
	cfg      *config.Config

	institutes   *InstituteService
	registration *RegistrationService
	auth         *AuthService
	accounts     *AccountService
	students     *StudentService
	recruiters   *RecruiterService
	jobs         *JobService
	applications *ApplicationService
	settings     *SettingService

	instituteRepo *repository.InstituteRepository
	studentRepo   *repository.StudentRepository
	requestRepo   *repository.VerificationRequestRepository
}

func newTestEnv(t *testing.T, store docstore.Store) *testEnv {
	t.Helper()
	if store == nil {
		store = docstore.NewInMemory()
	}

	log := zerolog.Nop()
	m := metrics.New(prometheus.NewRegistry())
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
		BcryptCost:        bcrypt.MinCost,
		SignInMaxAttempts: 3,
		SignInLockout:     time.Minute,
	}
	paging := Paging{Default: 10, Max: 50}

	instituteRepo := repository.NewInstituteRepository(store)
	adminRepo := repository.NewAdminRepository(store)
	recruiterRepo := repository.NewRecruiterRepository(store)
	studentRepo := repository.NewStudentRepository(store)
	requestRepo := repository.NewVerificationRequestRepository(store)
	jobRepo := repository.NewJobRepository(store)
	sessions := newMemorySessions()

	institutes := NewInstituteService(instituteRepo, nil, m, log)

	return &testEnv{
		store:    store,
		sessions: sessions,
		cfg:      cfg,

		institutes: institutes,
		registration: NewRegistrationService(RegistrationDeps{
			Institutes: institutes,
			Admins:     adminRepo,
			Recruiters: recruiterRepo,
			Students:   studentRepo,
			Requests:   requestRepo,
		}, cfg.BcryptCost, m, log),
		auth:         NewAuthService(cfg, sessions, adminRepo, recruiterRepo, studentRepo, m, log),
		accounts:     NewAccountService(adminRepo, recruiterRepo, studentRepo),
		students:     NewStudentService(studentRepo, requestRepo, paging, m, log),
		recruiters:   NewRecruiterService(recruiterRepo, paging, m, log),
		jobs:         NewJobService(jobRepo, institutes, paging, m, log),
		applications: NewApplicationService(repository.NewApplicationRepository(store), jobRepo, paging, m, log),
		settings:     NewSettingService(repository.NewSettingRepository(store), log),

		instituteRepo: instituteRepo,
		studentRepo:   studentRepo,
		requestRepo:   requestRepo,
	}
}

func pageOf(size int) repository.PageParams {
	return repository.PageParams{Size: size}
}
