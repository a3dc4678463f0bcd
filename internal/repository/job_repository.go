package repository

import (
	"context"

	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/model"
)

// JobRepository handles job postings, keyed by generated id.
type JobRepository struct {
	store docstore.Store
}

// NewJobRepository creates a new JobRepository.
func NewJobRepository(store docstore.Store) *JobRepository {
	return &JobRepository{store: store}
}

// Create stores a new job. The caller assigns the id.
func (r *JobRepository) Create(ctx context.Context, j *model.Job) error {
	return put(ctx, r.store, model.CollectionJobs, j.ID, j)
}

// GetByID retrieves a job by id.
func (r *JobRepository) GetByID(ctx context.Context, id string) (*model.Job, error) {
	j := &model.Job{}
	if err := getDecoded(ctx, r.store, model.CollectionJobs, id, j); err != nil {
		return nil, err
	}
	return j, nil
}

// ListByInstitute pages through the jobs posted to one institute.
func (r *JobRepository) ListByInstitute(ctx context.Context, instituteID int, p PageParams) ([]model.Job, string, error) {
	return fetchPage[model.Job](ctx, r.store, docstore.PageRequest{
		Collection: model.CollectionJobs,
		Filters:    []docstore.Filter{docstore.Where("instituteId", docstore.OpEqual, instituteID)},
		PageSize:   p.Size,
		Cursor:     p.Cursor,
	})
}

// ListByDatePosted pages through every job sorted by posting date.
func (r *JobRepository) ListByDatePosted(ctx context.Context, dir docstore.Direction, p PageParams) ([]model.Job, string, error) {
	return fetchPage[model.Job](ctx, r.store, docstore.PageRequest{
		Collection: model.CollectionJobs,
		OrderBy:    &docstore.OrderBy{Field: "datePosted", Direction: dir},
		PageSize:   p.Size,
		Cursor:     p.Cursor,
	})
}
