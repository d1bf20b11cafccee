package services

import (
	"testing"

	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/internal/repositories"
	"gorm.io/gorm"
)

func newExploreService(t *testing.T) (*ExploreService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	svc := NewExploreService(
		repositories.NewProfileRepository(db),
		repositories.NewExploreRepository(db),
		repositories.NewRelationRepository(db),
	)
	return svc, db
}

func TestNextWalksPoolInOrderAndRecycles(t *testing.T) {
	svc, db := newExploreService(t)

	seedProfile(t, db, 1, models.GenderFemale, "Mumbai", "Hindu", 1996, "p1.jpg")
	seedProfile(t, db, 2, models.GenderFemale, "Delhi", "Hindu", 1994, "p2.jpg")
	seedProfile(t, db, 3, models.GenderFemale, "Pune", "Hindu", 1998, "p3.jpg")
	seedProfile(t, db, 100, models.GenderMale, "Mumbai", "Hindu", 1995, "me.jpg")

	for _, want := range []uint{1, 2, 3} {
		card, err := svc.Next(100)
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if card == nil {
			t.Fatalf("expected candidate %d, got nil", want)
		}
		if card.UserID != want {
			t.Fatalf("expected candidate %d, got %d", want, card.UserID)
		}
	}

	// Pool exhausted: the history resets and the walk starts over
	card, err := svc.Next(100)
	if err != nil {
		t.Fatalf("Next after exhaustion failed: %v", err)
	}
	if card == nil || card.UserID != 1 {
		t.Fatalf("expected recycled candidate 1, got %+v", card)
	}
}

func TestNextSkipsIneligibleCandidates(t *testing.T) {
	svc, db := newExploreService(t)

	seedProfile(t, db, 100, models.GenderMale, "Mumbai", "Hindu", 1995, "me.jpg")
	seedProfile(t, db, 1, models.GenderMale, "Delhi", "Hindu", 1994, "p1.jpg")   // same gender
	seedProfile(t, db, 2, models.GenderFemale, "Delhi", "Hindu", 0, "p2.jpg")   // no date of birth
	seedProfile(t, db, 3, models.GenderFemale, "Delhi", "Hindu", 1994, "")      // no photo
	seedProfile(t, db, 4, models.GenderFemale, "Delhi", "Hindu", 1994, "p4.jpg") // blocked below
	seedProfile(t, db, 5, models.GenderFemale, "Delhi", "Hindu", 1994, "p5.jpg") // eligible

	relations := repositories.NewRelationRepository(db)
	err := relations.CreateIfAbsent(&models.UserRelation{
		FromUserID: 4,
		ToUserID:   100,
		Type:       models.RelationBlock,
	})
	if err != nil {
		t.Fatalf("seed block failed: %v", err)
	}

	card, err := svc.Next(100)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if card == nil || card.UserID != 5 {
		t.Fatalf("expected candidate 5, got %+v", card)
	}
}

func TestNextEmptyPoolIsTerminal(t *testing.T) {
	svc, db := newExploreService(t)

	seedProfile(t, db, 100, models.GenderMale, "Mumbai", "Hindu", 1995, "me.jpg")
	seedProfile(t, db, 1, models.GenderMale, "Delhi", "Hindu", 1994, "p1.jpg")

	card, err := svc.Next(100)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if card != nil {
		t.Fatalf("expected no candidate, got %+v", card)
	}
}

func TestNextRequiresViewerGender(t *testing.T) {
	svc, db := newExploreService(t)

	seedProfile(t, db, 100, "", "Mumbai", "Hindu", 1995, "me.jpg")
	seedProfile(t, db, 1, models.GenderFemale, "Delhi", "Hindu", 1994, "p1.jpg")

	card, err := svc.Next(100)
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if card != nil {
		t.Fatalf("viewer without gender must see nobody, got %+v", card)
	}
}

func TestPreviousCursorSemantics(t *testing.T) {
	svc, db := newExploreService(t)

	seedProfile(t, db, 1, models.GenderFemale, "Mumbai", "Hindu", 1996, "p1.jpg")
	seedProfile(t, db, 2, models.GenderFemale, "Delhi", "Hindu", 1994, "p2.jpg")
	seedProfile(t, db, 100, models.GenderMale, "Mumbai", "Hindu", 1995, "me.jpg")

	// Empty history
	card, err := svc.Previous(100)
	if err != nil {
		t.Fatalf("Previous failed: %v", err)
	}
	if card != nil {
		t.Fatalf("expected nil on empty history, got %+v", card)
	}

	// Single entry: previous re-shows it
	if _, err := svc.Next(100); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	card, err = svc.Previous(100)
	if err != nil {
		t.Fatalf("Previous failed: %v", err)
	}
	if card == nil || card.UserID != 1 {
		t.Fatalf("expected candidate 1, got %+v", card)
	}

	// Two entries: previous is the second-most-recent
	if _, err := svc.Next(100); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	card, err = svc.Previous(100)
	if err != nil {
		t.Fatalf("Previous failed: %v", err)
	}
	if card == nil || card.UserID != 1 {
		t.Fatalf("expected candidate 1 as second-most-recent, got %+v", card)
	}
}
