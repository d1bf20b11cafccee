package services

import (
	"testing"

	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/internal/repositories"
	"github.com/rishtahub/rishta_backend/pkg/errors"
)

func newTicketService(t *testing.T) *TicketService {
	t.Helper()
	return NewTicketService(repositories.NewTicketRepository(newTestDB(t)))
}

func TestCreateTicketSanitizesAndDefaults(t *testing.T) {
	svc := newTicketService(t)

	ticket, err := svc.Create(1, "  <b>Payment</b>   issue ", "charged twice", "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if ticket.Subject != "Payment issue" {
		t.Fatalf("expected sanitized subject, got %q", ticket.Subject)
	}
	if ticket.Priority != models.TicketPriorityNormal {
		t.Fatalf("expected default priority, got %q", ticket.Priority)
	}
	if ticket.Status != models.TicketStatusOpen {
		t.Fatalf("expected open status, got %q", ticket.Status)
	}
	if ticket.Reference == "" {
		t.Fatal("reference must be assigned")
	}
}

func TestCreateTicketValidation(t *testing.T) {
	svc := newTicketService(t)

	if _, err := svc.Create(1, "   ", "body", ""); err == nil {
		t.Fatal("blank subject must be rejected")
	}

	if _, err := svc.Create(1, "subject", "body", "URGENT"); err == nil {
		t.Fatal("unknown priority must be rejected")
	} else if errors.Code(err) != errors.ErrCodeValidationFailed {
		t.Fatalf("expected VALIDATION_FAILED, got %s", errors.Code(err))
	}
}

func TestTicketOwnerOnlyAccess(t *testing.T) {
	svc := newTicketService(t)

	ticket, err := svc.Create(1, "Login problem", "cannot sign in", models.TicketPriorityHigh)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Get(ticket.Reference, 2); err == nil {
		t.Fatal("other users must not read the ticket")
	} else if errors.Code(err) != errors.ErrCodeForbidden {
		t.Fatalf("expected FORBIDDEN, got %s", errors.Code(err))
	}

	if err := svc.Close(ticket.Reference, 2); err == nil {
		t.Fatal("other users must not close the ticket")
	}

	if err := svc.Close(ticket.Reference, 1); err != nil {
		t.Fatalf("owner close failed: %v", err)
	}

	closed, err := svc.Get(ticket.Reference, 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if closed.Status != models.TicketStatusClosed {
		t.Fatalf("expected closed status, got %q", closed.Status)
	}
}
