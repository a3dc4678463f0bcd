package repository

import (
	"context"

	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/model"
)

// ApplicationRepository handles job applications, keyed by generated id.
type ApplicationRepository struct {
	store docstore.Store
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(store docstore.Store) *ApplicationRepository {
	return &ApplicationRepository{store: store}
}

// Create stores a new application. The caller assigns the id.
func (r *ApplicationRepository) Create(ctx context.Context, a *model.Application) error {
	return put(ctx, r.store, model.CollectionApplications, a.ID, a)
}

// GetByID retrieves an application by id.
func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*model.Application, error) {
	a := &model.Application{}
	if err := getDecoded(ctx, r.store, model.CollectionApplications, id, a); err != nil {
		return nil, err
	}
	return a, nil
}

// FindByStudentAndJob returns the student's application to a job, if any.
func (r *ApplicationRepository) FindByStudentAndJob(ctx context.Context, studentEmail, jobID string) (*model.Application, error) {
	a := &model.Application{}
	err := findOne(ctx, r.store, model.CollectionApplications, a,
		docstore.Where("studentEmail", docstore.OpEqual, studentEmail),
		docstore.Where("jobId", docstore.OpEqual, jobID),
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListByStudent pages through one student's applications.
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentEmail string, p PageParams) ([]model.Application, string, error) {
	return fetchPage[model.Application](ctx, r.store, docstore.PageRequest{
		Collection: model.CollectionApplications,
		Filters:    []docstore.Filter{docstore.Where("studentEmail", docstore.OpEqual, studentEmail)},
		PageSize:   p.Size,
		Cursor:     p.Cursor,
	})
}

// ListByInstitute pages through applications to jobs of one institute.
func (r *ApplicationRepository) ListByInstitute(ctx context.Context, instituteID int, p PageParams) ([]model.Application, string, error) {
	return fetchPage[model.Application](ctx, r.store, docstore.PageRequest{
		Collection: model.CollectionApplications,
		Filters:    []docstore.Filter{docstore.Where("instituteId", docstore.OpEqual, instituteID)},
		PageSize:   p.Size,
		Cursor:     p.Cursor,
	})
}

// UpdateStatus moves an existing application to a new status.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status model.ApplicationStatus) error {
	return update(ctx, r.store, model.CollectionApplications, id, docstore.Fields{"status": status})
}
