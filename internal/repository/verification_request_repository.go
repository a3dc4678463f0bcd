package repository

import (
	"context"

	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/model"
)

// VerificationRequestRepository handles pending admin requests.
type VerificationRequestRepository struct {
	store docstore.Store
}

// NewVerificationRequestRepository creates a new VerificationRequestRepository.
func NewVerificationRequestRepository(store docstore.Store) *VerificationRequestRepository {
	return &VerificationRequestRepository{store: store}
}

// Create stores a new request. The caller assigns the id.
func (r *VerificationRequestRepository) Create(ctx context.Context, req *model.VerificationRequest) error {
	return put(ctx, r.store, model.CollectionAdminRequests, req.ID, req)
}

// ListByInstitute pages through the open requests of one institute.
func (r *VerificationRequestRepository) ListByInstitute(ctx context.Context, instituteID int, p PageParams) ([]model.VerificationRequest, string, error) {
	return fetchPage[model.VerificationRequest](ctx, r.store, docstore.PageRequest{
		Collection: model.CollectionAdminRequests,
		Filters:    []docstore.Filter{docstore.Where("instituteId", docstore.OpEqual, instituteID)},
		PageSize:   p.Size,
		Cursor:     p.Cursor,
	})
}

// DeleteForStudent removes every request filed for a student.
func (r *VerificationRequestRepository) DeleteForStudent(ctx context.Context, studentEmail string) error {
	docs, err := r.store.Query(ctx, docstore.Query{
		Collection: model.CollectionAdminRequests,
		Filters:    []docstore.Filter{docstore.Where("studentEmail", docstore.OpEqual, studentEmail)},
	})
	if err != nil {
		return err
	}
	for _, d := range docs {
		if err := r.store.Delete(ctx, model.CollectionAdminRequests, d.Key); err != nil {
			return err
		}
	}
	return nil
}
