package repository

import (
	"context"

	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/model"
)

// AdminRepository handles admin accounts, keyed by email.
type AdminRepository struct {
	store docstore.Store
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(store docstore.Store) *AdminRepository {
	return &AdminRepository{store: store}
}

// GetByEmail retrieves an admin by their email.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	a := &model.Admin{}
	if err := getDecoded(ctx, r.store, model.CollectionAdmins, email, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Save upserts the admin; an existing account with the same email is replaced.
func (r *AdminRepository) Save(ctx context.Context, a *model.Admin) error {
	return put(ctx, r.store, model.CollectionAdmins, a.Email, a)
}
