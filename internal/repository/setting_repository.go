package repository

import (
	"context"
	"strconv"

	"github.com/stemsi/placement-backend/internal/docstore"
	"github.com/stemsi/placement-backend/internal/model"
)

// SettingRepository handles per-institute college settings, keyed by id.
type SettingRepository struct {
	store docstore.Store
}

func NewSettingRepository(store docstore.Store) *SettingRepository {
	return &SettingRepository{store: store}
}

func (r *SettingRepository) GetByInstitute(ctx context.Context, instituteID int) (*model.CollegeSettings, error) {
	s := &model.CollegeSettings{}
	if err := getDecoded(ctx, r.store, model.CollectionCollegeSettings, strconv.Itoa(instituteID), s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SettingRepository) Upsert(ctx context.Context, s *model.CollegeSettings) error {
	return put(ctx, r.store, model.CollectionCollegeSettings, strconv.Itoa(s.InstituteID), s)
}
