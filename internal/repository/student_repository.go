package repository

import (
	"context"

	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/model"
)

// StudentRepository handles student accounts, keyed by email.
type StudentRepository struct {
	store docstore.Store
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(store docstore.Store) *StudentRepository {
	return &StudentRepository{store: store}
}

// GetByEmail retrieves a student by their email.
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	s := &model.Student{}
	if err := getDecoded(ctx, r.store, model.CollectionStudents, email, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save upserts the student; an existing account with the same email is replaced.
func (r *StudentRepository) Save(ctx context.Context, s *model.Student) error {
	return put(ctx, r.store, model.CollectionStudents, s.Email, s)
}

// ListByInstitute pages through the students of one institute.
func (r *StudentRepository) ListByInstitute(ctx context.Context, instituteID int, p PageParams) ([]model.Student, string, error) {
	return fetchPage[model.Student](ctx, r.store, docstore.PageRequest{
		Collection: model.CollectionStudents,
		Filters:    []docstore.Filter{docstore.Where("instituteId", docstore.OpEqual, instituteID)},
		PageSize:   p.Size,
		Cursor:     p.Cursor,
	})
}

// SetVerified flips the verification flag of an existing student.
func (r *StudentRepository) SetVerified(ctx context.Context, email string, verified bool) error {
	return update(ctx, r.store, model.CollectionStudents, email, docstore.Fields{"verified": verified})
}

// Delete removes a student by email.
func (r *StudentRepository) Delete(ctx context.Context, email string) error {
	return r.store.Delete(ctx, model.CollectionStudents, email)
}
