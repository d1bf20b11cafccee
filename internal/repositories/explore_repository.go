package repositories

import (
	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/pkg/errors"
	"gorm.io/gorm"
)

type ExploreRepository struct {
	db *gorm.DB
}

func NewExploreRepository(db *gorm.DB) *ExploreRepository {
	return &ExploreRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ExploreRepository) WithTx(tx *gorm.DB) *ExploreRepository {
	return &ExploreRepository{db: tx}
}

// History returns the viewer's exposure ledger, most recent first.
func (r *ExploreRepository) History(userID uint) ([]models.ExploreHistory, error) {
	var entries []models.ExploreHistory

	err := r.db.
		Where("user_id = ?", userID).
		Order("viewed_at DESC, id DESC").
		Find(&entries).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load explore history")
	}

	return entries, nil
}

// Append records one exposure of viewedUserID to the viewer.
func (r *ExploreRepository) Append(userID, viewedUserID uint) error {
	entry := &models.ExploreHistory{
		UserID:       userID,
		ViewedUserID: viewedUserID,
	}

	if err := r.db.Create(entry).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to record explore view")
	}

	return nil
}

// Reset wipes the viewer's entire ledger so the pool can be recycled.
func (r *ExploreRepository) Reset(userID uint) error {
	result := r.db.
		Where("user_id = ?", userID).
		Delete(&models.ExploreHistory{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to reset explore history")
	}

	return nil
}
