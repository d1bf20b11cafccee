package repositories

import (
	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RelationRepository struct {
	db *gorm.DB
}

func NewRelationRepository(db *gorm.DB) *RelationRepository {
	return &RelationRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *RelationRepository) WithTx(tx *gorm.DB) *RelationRepository {
	return &RelationRepository{db: tx}
}

// Exists reports whether a (from, to, type) edge is present.
func (r *RelationRepository) Exists(fromID, toID uint, relType string) (bool, error) {
	var count int64
	result := r.db.Model(&models.UserRelation{}).
		Where("from_user_id = ? AND to_user_id = ? AND type = ?", fromID, toID, relType).
		Count(&count)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check relation")
	}

	return count > 0, nil
}

// ExistsEither reports whether an edge of the type exists in either direction.
func (r *RelationRepository) ExistsEither(user1ID, user2ID uint, relType string) (bool, error) {
	var count int64
	result := r.db.Model(&models.UserRelation{}).
		Where(
			"((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)) AND type = ?",
			user1ID, user2ID, user2ID, user1ID, relType,
		).Count(&count)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check relation")
	}

	return count > 0, nil
}

// CreateIfAbsent inserts the edge, relying on the unique (from, to, type)
// index to turn a concurrent duplicate insert into a silent no-op.
func (r *RelationRepository) CreateIfAbsent(rel *models.UserRelation) error {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "from_user_id"}, {Name: "to_user_id"}, {Name: "type"}},
		DoNothing: true,
	}).Create(rel)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to create relation")
	}

	return nil
}

// Delete removes a single directed edge. Missing edges are not an error.
func (r *RelationRepository) Delete(fromID, toID uint, relType string) error {
	result := r.db.
		Where("from_user_id = ? AND to_user_id = ? AND type = ?", fromID, toID, relType).
		Delete(&models.UserRelation{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete relation")
	}

	return nil
}

// PurgeBetween deletes every edge of the given types between the pair, in
// both directions, in a single statement. Used by block's cascade and by
// request consumption so the all-or-nothing contract is testable on its own.
func (r *RelationRepository) PurgeBetween(user1ID, user2ID uint, types []string) error {
	if len(types) == 0 {
		return nil
	}

	result := r.db.
		Where(
			"((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)) AND type IN ?",
			user1ID, user2ID, user2ID, user1ID, types,
		).Delete(&models.UserRelation{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to purge relations")
	}

	return nil
}

// DeleteAllForUser removes every edge touching the user, either side.
func (r *RelationRepository) DeleteAllForUser(userID uint) error {
	result := r.db.
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Delete(&models.UserRelation{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete user relations")
	}

	return nil
}

// ListFrom returns all outgoing edges of a type, newest first.
func (r *RelationRepository) ListFrom(userID uint, relType string) ([]models.UserRelation, error) {
	var relations []models.UserRelation

	err := r.db.
		Where("from_user_id = ? AND type = ?", userID, relType).
		Order("created_at DESC").
		Find(&relations).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list relations")
	}

	return relations, nil
}

// ListAll returns every stored edge of a type. Used by moderation tooling.
func (r *RelationRepository) ListAll(relType string) ([]models.UserRelation, error) {
	var relations []models.UserRelation

	err := r.db.
		Where("type = ?", relType).
		Order("created_at DESC").
		Find(&relations).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list relations")
	}

	return relations, nil
}
