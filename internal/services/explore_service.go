package services

import (
	"time"

	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/internal/repositories"
)

// ExploreCard is the discovery view of a candidate profile.
type ExploreCard struct {
	UserID   uint    `json:"userId"`
	FullName string  `json:"fullName"`
	Age      int     `json:"age"`
	City     string  `json:"city"`
	Religion string  `json:"religion"`
	PhotoURL string  `json:"photoUrl"`
	AboutMe  string  `json:"aboutMe"`
	Height   float64 `json:"height,omitempty"`
}

// ExploreService drives the one-candidate-at-a-time discovery feed. The
// view-history ledger is the only cursor state; when every eligible
// candidate has been shown, the ledger is wiped and the pool recycles.
type ExploreService struct {
	profiles  *repositories.ProfileRepository
	explore   *repositories.ExploreRepository
	relations *repositories.RelationRepository
}

func NewExploreService(
	profiles *repositories.ProfileRepository,
	explore *repositories.ExploreRepository,
	relations *repositories.RelationRepository,
) *ExploreService {
	return &ExploreService{
		profiles:  profiles,
		explore:   explore,
		relations: relations,
	}
}

// Next returns the next unseen eligible candidate for the viewer, recording
// the exposure. When the pool is exhausted the history is reset and scanned
// once more; a nil card after that means there is genuinely nobody to show,
// which is a valid terminal state rather than an error.
func (s *ExploreService) Next(viewerID uint) (*ExploreCard, error) {
	viewer, err := s.profiles.GetByUserID(viewerID)
	if err != nil {
		return nil, err
	}

	history, err := s.explore.History(viewerID)
	if err != nil {
		return nil, err
	}
	viewed := make(map[uint]struct{}, len(history))
	for _, entry := range history {
		viewed[entry.ViewedUserID] = struct{}{}
	}

	candidates, err := s.profiles.ListCandidates(viewerID)
	if err != nil {
		return nil, err
	}

	card, err := s.scan(viewer, candidates, viewed)
	if err != nil {
		return nil, err
	}
	if card != nil {
		return card, nil
	}

	// Pool exhausted: wipe the ledger and scan once more. The single retry
	// keeps us out of a loop when the pool genuinely has nothing to offer.
	if err := s.explore.Reset(viewerID); err != nil {
		return nil, err
	}

	return s.scan(viewer, candidates, map[uint]struct{}{})
}

// Previous re-shows recently seen candidates: the second-most-recent entry
// when there are two or more, the sole entry when there is exactly one, and
// nothing when the history is empty.
func (s *ExploreService) Previous(viewerID uint) (*ExploreCard, error) {
	history, err := s.explore.History(viewerID)
	if err != nil {
		return nil, err
	}

	if len(history) == 0 {
		return nil, nil
	}

	target := history[0]
	if len(history) >= 2 {
		target = history[1]
	}

	profile, err := s.profiles.GetByUserID(target.ViewedUserID)
	if err != nil {
		return nil, err
	}

	return cardFromProfile(profile), nil
}

func (s *ExploreService) scan(viewer *models.Profile, candidates []models.Profile, viewed map[uint]struct{}) (*ExploreCard, error) {
	for i := range candidates {
		candidate := &candidates[i]

		if candidate.UserID == viewer.UserID {
			continue
		}

		if _, seen := viewed[candidate.UserID]; seen {
			continue
		}

		// Opposite-gender-only policy; unset gender on either side hides
		// the candidate until both profiles are complete enough to pair.
		if viewer.Gender == "" || candidate.Gender == "" || candidate.Gender == viewer.Gender {
			continue
		}

		if candidate.DateOfBirth == nil || candidate.PhotoURL == "" {
			continue
		}

		blocked, err := s.relations.ExistsEither(viewer.UserID, candidate.UserID, models.RelationBlock)
		if err != nil {
			return nil, err
		}
		if blocked {
			continue
		}

		if err := s.explore.Append(viewer.UserID, candidate.UserID); err != nil {
			return nil, err
		}

		return cardFromProfile(candidate), nil
	}

	return nil, nil
}

func cardFromProfile(profile *models.Profile) *ExploreCard {
	return &ExploreCard{
		UserID:   profile.UserID,
		FullName: profile.FullName,
		Age:      profile.Age(time.Now()),
		City:     profile.City,
		Religion: profile.Religion,
		PhotoURL: profile.PhotoURL,
		AboutMe:  profile.AboutMe,
		Height:   profile.Height,
	}
}
