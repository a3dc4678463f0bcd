package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/placement-backend/internal/metrics"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/repository"
	"golang.org/x/sync/singleflight"
)

// InstituteCache is a read-through cache of name → instituteId.
type InstituteCache interface {
	Get(ctx context.Context, name string) (int, bool, error)
	Set(ctx context.Context, name string, instituteID int) error
}

// InstituteService resolves institute names to their 5-digit identifiers,
// creating the institute on first use.
type InstituteService struct {
	repo    *repository.InstituteRepository
	cache   InstituteCache
	metrics *metrics.Metrics
	log     zerolog.Logger

	group singleflight.Group
	newID func() int
}

// NewInstituteService creates a new InstituteService. cache may be nil.
func NewInstituteService(repo *repository.InstituteRepository, cache InstituteCache, m *metrics.Metrics, log zerolog.Logger) *InstituteService {
	return &InstituteService{
		repo:    repo,
		cache:   cache,
		metrics: m,
		log:     log.With().Str("component", "institute_service").Logger(),
		newID:   GenerateInstituteID,
	}
}

// InstituteKey is the stored key for an institute name: surrounding
// whitespace is dropped, case is kept.
func InstituteKey(name string) string {
	return strings.TrimSpace(name)
}

// Resolve returns the id of the institute called name, creating the
// institute if it does not exist. The lookup is case-sensitive on
// InstituteKey(name).
//
// Creation uses the store's create-if-absent write, so two processes racing
// on the same new name still agree on a single id. Concurrent callers inside
// one process share a single lookup, which is detached from any one caller's
// cancellation; each caller still returns when its own ctx is done.
func (s *InstituteService) Resolve(ctx context.Context, name string) (int, error) {
	name = InstituteKey(name)
	if id, ok := s.cached(ctx, name); ok {
		return id, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(name, func() (any, error) {
		return s.lookupOrCreate(shared, name)
	})
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return 0, res.Err
		}
		return res.Val.(int), nil
	}
}

func (s *InstituteService) lookupOrCreate(ctx context.Context, name string) (int, error) {
	inst, err := s.repo.GetByName(ctx, name)
	if err == nil {
		s.remember(ctx, inst)
		return inst.InstituteID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return 0, fmt.Errorf("get institute: %w", err)
	}

	inst = &model.Institute{
		Name:        name,
		InstituteID: s.newID(),
		CreatedAt:   time.Now().UTC(),
	}
	created, err := s.repo.CreateIfAbsent(ctx, inst)
	if err != nil {
		return 0, fmt.Errorf("create institute: %w", err)
	}

	if !created {
		// Another writer created it between our read and write.
		winner, err := s.repo.GetByName(ctx, name)
		if err != nil {
			return 0, fmt.Errorf("get institute: %w", err)
		}
		s.log.Info().Str("name", name).Int("institute_id", winner.InstituteID).Msg("Institute created concurrently, using existing id")
		s.remember(ctx, winner)
		return winner.InstituteID, nil
	}

	s.metrics.IncrementInstituteCreated()
	s.log.Info().Str("name", name).Int("institute_id", inst.InstituteID).Msg("Institute created")
	s.remember(ctx, inst)
	return inst.InstituteID, nil
}

// Lookup returns the institute called name without creating it.
func (s *InstituteService) Lookup(ctx context.Context, name string) (*model.Institute, error) {
	return s.repo.GetByName(ctx, InstituteKey(name))
}

// GetByID returns the institute with the given identifier.
func (s *InstituteService) GetByID(ctx context.Context, instituteID int) (*model.Institute, error) {
	return s.repo.GetByID(ctx, instituteID)
}

func (s *InstituteService) cached(ctx context.Context, name string) (int, bool) {
	if s.cache == nil {
		return 0, false
	}
	id, ok, err := s.cache.Get(ctx, name)
	if err != nil {
		s.metrics.IncrementInstituteCache("error")
		s.log.Warn().Err(err).Str("name", name).Msg("Institute cache read failed")
		return 0, false
	}
	if !ok {
		s.metrics.IncrementInstituteCache("miss")
		return 0, false
	}
	s.metrics.IncrementInstituteCache("hit")
	return id, true
}

func (s *InstituteService) remember(ctx context.Context, inst *model.Institute) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, inst.Name, inst.InstituteID); err != nil {
		s.log.Warn().Err(err).Str("name", inst.Name).Msg("Institute cache write failed")
	}
}
