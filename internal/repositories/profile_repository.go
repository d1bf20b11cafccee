package repositories

import (
	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/pkg/errors"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ProfileRepository) WithTx(tx *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: tx}
}

func (r *ProfileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile

	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "profile not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load profile")
	}

	return &profile, nil
}

// Save creates the profile on first write and updates it afterwards.
func (r *ProfileRepository) Save(profile *models.Profile) error {
	var existing models.Profile
	err := r.db.Where("user_id = ?", profile.UserID).First(&existing).Error

	if err == gorm.ErrRecordNotFound {
		if err := r.db.Create(profile).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create profile")
		}
		return nil
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check profile")
	}

	profile.ID = existing.ID
	if err := r.db.Save(profile).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update profile")
	}

	return nil
}

// ListCandidates returns every profile except the viewer's, ordered by
// ascending user ID. The fixed order keeps the explore feed deterministic.
func (r *ProfileRepository) ListCandidates(viewerID uint) ([]models.Profile, error) {
	var profiles []models.Profile

	err := r.db.
		Where("user_id <> ?", viewerID).
		Order("user_id ASC").
		Find(&profiles).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list candidates")
	}

	return profiles, nil
}

// ListOppositeGender returns candidates of the opposite gender, ordered by
// ascending user ID. The matchmaking feed starts from this set.
func (r *ProfileRepository) ListOppositeGender(viewerID uint, viewerGender string) ([]models.Profile, error) {
	var profiles []models.Profile

	err := r.db.
		Where("user_id <> ? AND gender <> ? AND gender <> ''", viewerID, viewerGender).
		Order("user_id ASC").
		Find(&profiles).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list candidates")
	}

	return profiles, nil
}

func (r *ProfileRepository) DeleteByUserID(userID uint) error {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Profile{})
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete profile")
	}
	return nil
}
