package repositories

import (
	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/pkg/errors"
	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

func (r *TicketRepository) Create(ticket *models.SupportTicket) error {
	if err := r.db.Create(ticket).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create ticket")
	}
	return nil
}

func (r *TicketRepository) GetByReference(reference string) (*models.SupportTicket, error) {
	var ticket models.SupportTicket

	err := r.db.Where("reference = ?", reference).First(&ticket).Error
	if err == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "ticket not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load ticket")
	}

	return &ticket, nil
}

func (r *TicketRepository) ListByUser(userID uint) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket

	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list tickets")
	}

	return tickets, nil
}

func (r *TicketRepository) UpdateStatus(reference, status string) error {
	result := r.db.Model(&models.SupportTicket{}).
		Where("reference = ?", reference).
		Update("status", status)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update ticket")
	}

	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "ticket not found")
	}

	return nil
}
