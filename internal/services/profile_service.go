package services

import (
	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/internal/repositories"
	"github.com/rishtahub/rishta_backend/internal/security"
)

// ProfileService wraps profile persistence with input cleanup.
type ProfileService struct {
	profiles *repositories.ProfileRepository
}

func NewProfileService(profiles *repositories.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func (s *ProfileService) Get(userID uint) (*models.Profile, error) {
	return s.profiles.GetByUserID(userID)
}

// Save upserts the user's profile, stripping HTML from free-text fields.
func (s *ProfileService) Save(profile *models.Profile) error {
	profile.FullName = security.SanitizeString(security.SanitizeHTML(profile.FullName))
	profile.AboutMe = security.SanitizeString(security.SanitizeHTML(profile.AboutMe))
	profile.City = security.SanitizeString(profile.City)

	return s.profiles.Save(profile)
}
