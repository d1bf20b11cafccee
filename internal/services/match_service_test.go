package services

import (
	"testing"
	"time"

	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/internal/repositories"
)

func TestMatchScore(t *testing.T) {
	dob := func(year int) *time.Time {
		d := time.Date(year, time.June, 15, 0, 0, 0, 0, time.UTC)
		return &d
	}

	me := &models.Profile{City: "Mumbai", Religion: "Hindu", DateOfBirth: dob(1995)}

	tests := []struct {
		name  string
		other models.Profile
		want  float64
	}{
		{
			name:  "same age city and religion",
			other: models.Profile{City: "Mumbai", Religion: "Hindu", DateOfBirth: dob(1995)},
			want:  90,
		},
		{
			name:  "two year gap same city and religion",
			other: models.Profile{City: "Mumbai", Religion: "Hindu", DateOfBirth: dob(1993)},
			want:  80,
		},
		{
			name:  "five year gap only",
			other: models.Profile{City: "Delhi", Religion: "Sikh", DateOfBirth: dob(1990)},
			want:  20,
		},
		{
			name:  "large gap shared city only",
			other: models.Profile{City: "mumbai", Religion: "Sikh", DateOfBirth: dob(1985)},
			want:  30,
		},
		{
			name:  "nothing in common",
			other: models.Profile{City: "Delhi", Religion: "Sikh", DateOfBirth: dob(1985)},
			want:  0,
		},
	}

	now := time.Now()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchScore(me, &tt.other, me.Age(now), tt.other.Age(now))
			if got != tt.want {
				t.Fatalf("expected score %.0f, got %.0f", tt.want, got)
			}
		})
	}
}

func TestGetMatchesAppliesThresholdAndOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(repositories.NewProfileRepository(db), 40)

	seedProfile(t, db, 100, models.GenderMale, "Mumbai", "Hindu", 1995, "me.jpg")
	seedProfile(t, db, 1, models.GenderFemale, "Mumbai", "Hindu", 1995, "p1.jpg") // 90
	seedProfile(t, db, 2, models.GenderFemale, "Delhi", "Hindu", 1993, "p2.jpg")  // 50
	seedProfile(t, db, 3, models.GenderFemale, "Delhi", "Sikh", 1985, "p3.jpg")   // 0

	results, err := svc.GetMatches(100, MatchFilters{})
	if err != nil {
		t.Fatalf("GetMatches failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results above threshold, got %d", len(results))
	}
	if results[0].UserID != 1 || results[1].UserID != 2 {
		t.Fatalf("expected order [1 2], got [%d %d]", results[0].UserID, results[1].UserID)
	}
}

func TestSearchMatchesIgnoresThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(repositories.NewProfileRepository(db), 40)

	seedProfile(t, db, 100, models.GenderMale, "Mumbai", "Hindu", 1995, "me.jpg")
	seedProfile(t, db, 1, models.GenderFemale, "Delhi", "Sikh", 1985, "p1.jpg") // scores 0

	results, err := svc.SearchMatches(100, MatchFilters{})
	if err != nil {
		t.Fatalf("SearchMatches failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("search must return candidates below the feed threshold, got %d", len(results))
	}
}

func TestSearchMatchesFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewMatchService(repositories.NewProfileRepository(db), 40)

	seedProfile(t, db, 100, models.GenderMale, "Mumbai", "Hindu", 1995, "me.jpg")
	seedProfile(t, db, 1, models.GenderFemale, "Mumbai", "Hindu", 1995, "p1.jpg")
	seedProfile(t, db, 2, models.GenderFemale, "Delhi", "Hindu", 1995, "p2.jpg")
	seedProfile(t, db, 3, models.GenderFemale, "Mumbai", "Jain", 1970, "p3.jpg")

	results, err := svc.SearchMatches(100, MatchFilters{City: "mumbai"})
	if err != nil {
		t.Fatalf("SearchMatches failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 Mumbai candidates, got %d", len(results))
	}

	maxAge := 40
	results, err = svc.SearchMatches(100, MatchFilters{City: "mumbai", MaxAge: &maxAge})
	if err != nil {
		t.Fatalf("SearchMatches failed: %v", err)
	}
	if len(results) != 1 || results[0].UserID != 1 {
		t.Fatalf("expected only candidate 1 after age filter, got %+v", results)
	}
}
