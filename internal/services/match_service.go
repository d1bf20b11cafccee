package services

import (
	"sort"
	"strings"
	"time"

	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/internal/repositories"
)

// MatchResult is one scored entry of the matchmaking feed.
type MatchResult struct {
	UserID     uint    `json:"userId"`
	FullName   string  `json:"fullName"`
	Age        int     `json:"age"`
	City       string  `json:"city"`
	Religion   string  `json:"religion"`
	PhotoURL   string  `json:"photoUrl"`
	MatchScore float64 `json:"matchScore"`
}

// MatchFilters narrows the candidate set before scoring. Nil and empty
// values mean "no preference".
type MatchFilters struct {
	MinAge        *int
	MaxAge        *int
	Religion      string
	City          string
	MaritalStatus string
}

// MatchService produces the scored matchmaking feed: opposite-gender
// profiles ranked by age proximity, shared city and shared religion.
type MatchService struct {
	profiles *repositories.ProfileRepository
	minScore float64
}

func NewMatchService(profiles *repositories.ProfileRepository, minScore float64) *MatchService {
	return &MatchService{
		profiles: profiles,
		minScore: minScore,
	}
}

// GetMatches returns the default feed: filtered candidates scoring at or
// above the threshold, best first.
func (s *MatchService) GetMatches(viewerID uint, filters MatchFilters) ([]MatchResult, error) {
	return s.matches(viewerID, filters, true)
}

// SearchMatches is the user-controlled search: the same filters and scoring
// but no score threshold, so every surviving candidate is returned.
func (s *MatchService) SearchMatches(viewerID uint, filters MatchFilters) ([]MatchResult, error) {
	return s.matches(viewerID, filters, false)
}

func (s *MatchService) matches(viewerID uint, filters MatchFilters, applyThreshold bool) ([]MatchResult, error) {
	me, err := s.profiles.GetByUserID(viewerID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.profiles.ListOppositeGender(viewerID, me.Gender)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	myAge := me.Age(now)

	results := make([]MatchResult, 0, len(candidates))
	for i := range candidates {
		candidate := &candidates[i]

		if candidate.DateOfBirth == nil {
			continue
		}
		candidateAge := candidate.Age(now)

		if filters.MinAge != nil && candidateAge < *filters.MinAge {
			continue
		}
		if filters.MaxAge != nil && candidateAge > *filters.MaxAge {
			continue
		}
		if filters.City != "" && !strings.EqualFold(filters.City, candidate.City) {
			continue
		}
		if filters.Religion != "" && !strings.EqualFold(filters.Religion, candidate.Religion) {
			continue
		}
		if filters.MaritalStatus != "" && candidate.ManglikStatus != "" &&
			!strings.EqualFold(filters.MaritalStatus, candidate.ManglikStatus) {
			continue
		}

		score := matchScore(me, candidate, myAge, candidateAge)
		if applyThreshold && score < s.minScore {
			continue
		}

		results = append(results, MatchResult{
			UserID:     candidate.UserID,
			FullName:   candidate.FullName,
			Age:        candidateAge,
			City:       candidate.City,
			Religion:   candidate.Religion,
			PhotoURL:   candidate.PhotoURL,
			MatchScore: score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	return results, nil
}

// matchScore weights age proximity (up to 40), shared city (30) and shared
// religion (20).
func matchScore(me, other *models.Profile, myAge, otherAge int) float64 {
	var score float64

	ageDiff := myAge - otherAge
	if ageDiff < 0 {
		ageDiff = -ageDiff
	}
	switch {
	case ageDiff <= 1:
		score += 40
	case ageDiff <= 3:
		score += 30
	case ageDiff <= 5:
		score += 20
	}

	if me.City != "" && strings.EqualFold(me.City, other.City) {
		score += 30
	}

	if me.Religion != "" && strings.EqualFold(me.Religion, other.Religion) {
		score += 20
	}

	return score
}
