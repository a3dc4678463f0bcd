package repository

import (
	"context"

	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/model"
)

// RecruiterRepository handles recruiter accounts, keyed by email.
type RecruiterRepository struct {
	store docstore.Store
}

// NewRecruiterRepository creates a new RecruiterRepository.
func NewRecruiterRepository(store docstore.Store) *RecruiterRepository {
	return &RecruiterRepository{store: store}
}

// GetByEmail retrieves a recruiter by their email.
func (r *RecruiterRepository) GetByEmail(ctx context.Context, email string) (*model.Recruiter, error) {
	rec := &model.Recruiter{}
	if err := getDecoded(ctx, r.store, model.CollectionRecruiters, email, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Save upserts the recruiter; an existing account with the same email is replaced.
func (r *RecruiterRepository) Save(ctx context.Context, rec *model.Recruiter) error {
	return put(ctx, r.store, model.CollectionRecruiters, rec.Email, rec)
}

// ListByInstitute pages through recruiters that recruit from an institute.
func (r *RecruiterRepository) ListByInstitute(ctx context.Context, instituteID int, p PageParams) ([]model.Recruiter, string, error) {
	return fetchPage[model.Recruiter](ctx, r.store, docstore.PageRequest{
		Collection: model.CollectionRecruiters,
		Filters:    []docstore.Filter{docstore.Where("instituteIds", docstore.OpArrayContains, instituteID)},
		PageSize:   p.Size,
		Cursor:     p.Cursor,
	})
}

// SetApproved flips the approval flag of an existing recruiter.
func (r *RecruiterRepository) SetApproved(ctx context.Context, email string, approved bool) error {
	return update(ctx, r.store, model.CollectionRecruiters, email, docstore.Fields{"approved": approved})
}
