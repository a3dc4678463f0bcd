package repository

import (
	"context"

	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/model"
)

// InstituteRepository handles institute documents, keyed by name.
type InstituteRepository struct {
	store docstore.Store
}

// NewInstituteRepository creates a new InstituteRepository.
func NewInstituteRepository(store docstore.Store) *InstituteRepository {
	return &InstituteRepository{store: store}
}

// GetByName looks an institute up by its exact, case-sensitive name.
func (r *InstituteRepository) GetByName(ctx context.Context, name string) (*model.Institute, error) {
	inst := &model.Institute{}
	if err := getDecoded(ctx, r.store, model.CollectionInstitutes, name, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// GetByID looks an institute up by its numeric identifier. If two names ever
// drew the same id, the lexically first name wins.
func (r *InstituteRepository) GetByID(ctx context.Context, instituteID int) (*model.Institute, error) {
	inst := &model.Institute{}
	err := findOne(ctx, r.store, model.CollectionInstitutes, inst,
		docstore.Where("instituteId", docstore.OpEqual, instituteID))
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// CreateIfAbsent writes the institute only if no document exists for its name.
// It reports whether this call created it.
func (r *InstituteRepository) CreateIfAbsent(ctx context.Context, inst *model.Institute) (bool, error) {
	fields, err := docstore.Encode(inst)
	if err != nil {
		return false, err
	}
	return r.store.Create(ctx, model.CollectionInstitutes, inst.Name, fields)
}
