package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/placement-backend/internal/model"
	"github.com/stemsi/placement-backend/internal/repository"
)

type SettingService struct {
	settingRepo *repository.SettingRepository
	log         zerolog.Logger
}

func NewSettingService(settingRepo *repository.SettingRepository, log zerolog.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		log:         log.With().Str("component", "setting_service").Logger(),
	}
}

// Get returns the institute's settings, or empty defaults if none were saved.
func (s *SettingService) Get(ctx context.Context, instituteID int) (*model.CollegeSettings, error) {
	settings, err := s.settingRepo.GetByInstitute(ctx, instituteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &model.CollegeSettings{InstituteID: instituteID}, nil
		}
		s.log.Error().Err(err).Int("institute_id", instituteID).Msg("failed to get settings")
		return nil, err
	}
	return settings, nil
}

func (s *SettingService) Update(ctx context.Context, instituteID int, req model.UpdateSettingsRequest) (*model.CollegeSettings, error) {
	settings := &model.CollegeSettings{
		InstituteID:     instituteID,
		LogoURL:         req.LogoURL,
		BrandingColor:   req.BrandingColor,
		PlacementPolicy: req.PlacementPolicy,
		UpdatedAt:       time.Now().UTC(),
	}
	if err := s.settingRepo.Upsert(ctx, settings); err != nil {
		s.log.Error().Err(err).Int("institute_id", instituteID).Msg("failed to update settings")
		return nil, err
	}
	return settings, nil
}
