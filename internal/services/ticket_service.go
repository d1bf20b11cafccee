package services

import (
	"github.com/google/uuid"
	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/internal/repositories"
	"github.com/rishtahub/rishta_backend/internal/security"
	"github.com/rishtahub/rishta_backend/pkg/errors"
	"github.com/rishtahub/rishta_backend/pkg/utils"
)

// TicketService is the thin support-ticket layer: user-facing free text is
// stripped of HTML and every ticket gets a stable reference for follow-ups.
type TicketService struct {
	tickets *repositories.TicketRepository
}

func NewTicketService(tickets *repositories.TicketRepository) *TicketService {
	return &TicketService{tickets: tickets}
}

func (s *TicketService) Create(userID uint, subject, message, priority string) (*models.SupportTicket, error) {
	subject = utils.CollapseWhitespace(security.SanitizeHTML(subject))
	if subject == "" {
		return nil, errors.New(errors.ErrCodeValidationFailed, "subject is required")
	}
	subject = utils.Truncate(subject, 200)

	if priority == "" {
		priority = models.TicketPriorityNormal
	}
	switch priority {
	case models.TicketPriorityLow, models.TicketPriorityNormal, models.TicketPriorityHigh:
	default:
		return nil, errors.New(errors.ErrCodeValidationFailed, "unknown ticket priority")
	}

	ticket := &models.SupportTicket{
		Reference: uuid.NewString(),
		UserID:    userID,
		Subject:   subject,
		Message:   security.SanitizeHTML(message),
		Status:    models.TicketStatusOpen,
		Priority:  priority,
	}

	if err := s.tickets.Create(ticket); err != nil {
		return nil, err
	}

	return ticket, nil
}

func (s *TicketService) ListForUser(userID uint) ([]models.SupportTicket, error) {
	return s.tickets.ListByUser(userID)
}

// Get returns the ticket only to its owner.
func (s *TicketService) Get(reference string, userID uint) (*models.SupportTicket, error) {
	ticket, err := s.tickets.GetByReference(reference)
	if err != nil {
		return nil, err
	}

	if ticket.UserID != userID {
		return nil, errors.New(errors.ErrCodeForbidden, "not your ticket")
	}

	return ticket, nil
}

// Close marks the owner's ticket closed.
func (s *TicketService) Close(reference string, userID uint) error {
	if _, err := s.Get(reference, userID); err != nil {
		return err
	}

	return s.tickets.UpdateStatus(reference, models.TicketStatusClosed)
}
