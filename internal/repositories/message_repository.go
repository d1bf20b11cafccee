package repositories

import (
	"time"

	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/pkg/errors"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *MessageRepository) WithTx(tx *gorm.DB) *MessageRepository {
	return &MessageRepository{db: tx}
}

func (r *MessageRepository) Save(msg *models.ChatMessage) error {
	if err := r.db.Create(msg).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to save message")
	}
	return nil
}

func (r *MessageRepository) GetByID(id uint) (*models.ChatMessage, error) {
	var msg models.ChatMessage

	err := r.db.First(&msg, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "message not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load message")
	}

	return &msg, nil
}

// HistoryBetween returns every message exchanged by the pair, both
// directions, ordered by send time ascending. Soft-deleted messages are
// included; the client decides how to render them.
func (r *MessageRepository) HistoryBetween(user1ID, user2ID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage

	err := r.db.
		Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			user1ID, user2ID, user2ID, user1ID,
		).
		Order("sent_at ASC, id ASC").
		Find(&messages).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load chat history")
	}

	return messages, nil
}

func (r *MessageRepository) MarkSeen(id uint, at time.Time) (*models.ChatMessage, error) {
	msg, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	msg.Seen = true
	msg.SeenAt = &at

	if err := r.db.Model(msg).Select("seen", "seen_at").Updates(msg).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to mark message seen")
	}

	return msg, nil
}

func (r *MessageRepository) SoftDelete(id uint) (*models.ChatMessage, error) {
	msg, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	msg.Deleted = true

	if err := r.db.Model(msg).Select("deleted").Updates(msg).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to delete message")
	}

	return msg, nil
}

func (r *MessageRepository) UpdateContent(id uint, content string) (*models.ChatMessage, error) {
	msg, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	msg.Content = content

	if err := r.db.Model(msg).Select("content").Updates(msg).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to edit message")
	}

	return msg, nil
}

// DeleteAllForUser hard-deletes every message the user sent or received.
// Only account deletion uses this.
func (r *MessageRepository) DeleteAllForUser(userID uint) error {
	result := r.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Delete(&models.ChatMessage{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete user messages")
	}

	return nil
}
