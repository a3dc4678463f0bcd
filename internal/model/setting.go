package model

import "time"

// CollegeSettings is the per-institute branding and placement policy.
type CollegeSettings struct {
	InstituteID     int       `json:"instituteId"`
	LogoURL         string    `json:"logoUrl"`
	BrandingColor   string    `json:"brandingColor"`
	PlacementPolicy string    `json:"placementPolicy"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UpdateSettingsRequest is the payload for updating college settings.
type UpdateSettingsRequest struct {
	LogoURL         string `json:"logo_url" binding:"omitempty,url,max=500"`
	BrandingColor   string `json:"branding_color" binding:"omitempty,hexcolor"`
	PlacementPolicy string `json:"placement_policy" binding:"max=5000"`
}

// CollegeSettingsView is the API shape of the settings.
type CollegeSettingsView struct {
	InstituteID     int    `json:"institute_id"`
	LogoURL         string `json:"logo_url"`
	BrandingColor   string `json:"branding_color"`
	PlacementPolicy string `json:"placement_policy"`
}

// View converts to the API shape.
func (s *CollegeSettings) View() CollegeSettingsView {
	return CollegeSettingsView{
		InstituteID:     s.InstituteID,
		LogoURL:         s.LogoURL,
		BrandingColor:   s.BrandingColor,
		PlacementPolicy: s.PlacementPolicy,
	}
}
