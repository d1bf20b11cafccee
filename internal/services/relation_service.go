package services

import (
	"github.com/rishtahub/rishta_backend/internal/models"
	"github.com/rishtahub/rishta_backend/internal/repositories"
	"github.com/rishtahub/rishta_backend/internal/security"
	"github.com/rishtahub/rishta_backend/pkg/errors"
	"github.com/rishtahub/rishta_backend/pkg/utils"
	"gorm.io/gorm"
)

// LikeOutcome tells the caller whether a like completed a mutual match.
type LikeOutcome string

const (
	LikeOutcomeLiked   LikeOutcome = "LIKED"
	LikeOutcomeMatched LikeOutcome = "MATCH"
)

// RelationService is the single authority over the relationship state
// machine. Every mutation runs inside one transaction so the paired MATCH
// rows and block cascades can never be observed half-applied.
type RelationService struct {
	db        *gorm.DB
	relations *repositories.RelationRepository
}

func NewRelationService(db *gorm.DB, relations *repositories.RelationRepository) *RelationService {
	return &RelationService{
		db:        db,
		relations: relations,
	}
}

// Like records a like from one user to another. When the reverse like
// already exists, both MATCH edges are created in the same transaction and
// the outcome reports the match. Liking twice is a no-op. A blocked pair
// cannot like: a fresh LIKE edge must never coexist with a BLOCK edge.
func (s *RelationService) Like(fromID, toID uint) (LikeOutcome, error) {
	if fromID == toID {
		return "", errors.New(errors.ErrCodeInvalidState, "cannot like your own profile")
	}

	blocked, err := s.IsBlocked(fromID, toID)
	if err != nil {
		return "", err
	}
	if blocked {
		return "", errors.New(errors.ErrCodePolicyViolation, "cannot like a blocked profile")
	}

	outcome := LikeOutcomeLiked

	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.relations.WithTx(tx)

		alreadyLiked, err := repo.Exists(fromID, toID, models.RelationLike)
		if err != nil {
			return err
		}
		if alreadyLiked {
			// Idempotent; still report a match if one exists
			matched, err := repo.Exists(fromID, toID, models.RelationMatch)
			if err != nil {
				return err
			}
			if matched {
				outcome = LikeOutcomeMatched
			}
			return nil
		}

		if err := repo.CreateIfAbsent(&models.UserRelation{
			FromUserID: fromID,
			ToUserID:   toID,
			Type:       models.RelationLike,
		}); err != nil {
			return err
		}

		reverseLiked, err := repo.Exists(toID, fromID, models.RelationLike)
		if err != nil {
			return err
		}
		if !reverseLiked {
			return nil
		}

		// Mutual like: create both MATCH edges. CreateIfAbsent keeps the
		// racing-likes case safe; whichever transaction lands second turns
		// into a pair of no-ops.
		if err := repo.CreateIfAbsent(&models.UserRelation{
			FromUserID: fromID,
			ToUserID:   toID,
			Type:       models.RelationMatch,
		}); err != nil {
			return err
		}
		if err := repo.CreateIfAbsent(&models.UserRelation{
			FromUserID: toID,
			ToUserID:   fromID,
			Type:       models.RelationMatch,
		}); err != nil {
			return err
		}

		outcome = LikeOutcomeMatched
		return nil
	})

	if err != nil {
		return "", err
	}

	return outcome, nil
}

// Shortlist saves a profile to the user's shortlist. Idempotent. Blocked
// pairs cannot shortlist each other.
func (s *RelationService) Shortlist(fromID, toID uint) error {
	if fromID == toID {
		return errors.New(errors.ErrCodeInvalidState, "cannot shortlist your own profile")
	}

	blocked, err := s.IsBlocked(fromID, toID)
	if err != nil {
		return err
	}
	if blocked {
		return errors.New(errors.ErrCodePolicyViolation, "cannot shortlist a blocked profile")
	}

	return s.relations.CreateIfAbsent(&models.UserRelation{
		FromUserID: fromID,
		ToUserID:   toID,
		Type:       models.RelationShortlist,
	})
}

// RemoveShortlist drops a shortlist entry. Missing entries are a no-op.
func (s *RelationService) RemoveShortlist(fromID, toID uint) error {
	return s.relations.Delete(fromID, toID, models.RelationShortlist)
}

// Block severs the pair: every LIKE, MATCH and SHORTLIST edge between the
// two users is purged in both directions and the blocker's BLOCK edge is
// written, all atomically. Blocking twice is a no-op.
func (s *RelationService) Block(fromID, toID uint) error {
	if fromID == toID {
		return errors.New(errors.ErrCodeInvalidState, "cannot block yourself")
	}

	alreadyBlocked, err := s.relations.Exists(fromID, toID, models.RelationBlock)
	if err != nil {
		return err
	}
	if alreadyBlocked {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.relations.WithTx(tx)

		if err := repo.PurgeBetween(fromID, toID, models.PositiveRelationTypes()); err != nil {
			return err
		}

		return repo.CreateIfAbsent(&models.UserRelation{
			FromUserID: fromID,
			ToUserID:   toID,
			Type:       models.RelationBlock,
		})
	})
}

// Unblock removes the caller's BLOCK edge only. Whatever the block purged
// stays gone; the pair starts over from nothing.
func (s *RelationService) Unblock(fromID, toID uint) error {
	return s.relations.Delete(fromID, toID, models.RelationBlock)
}

// SendRequest records a pending connection ask. Requests in both
// directions may coexist; accepting either resolves the pair.
func (s *RelationService) SendRequest(fromID, toID uint) error {
	if fromID == toID {
		return errors.New(errors.ErrCodeInvalidState, "cannot send a request to yourself")
	}

	return s.relations.CreateIfAbsent(&models.UserRelation{
		FromUserID: fromID,
		ToUserID:   toID,
		Type:       models.RelationRequest,
	})
}

// AcceptRequest consumes the pending request between the pair, whichever
// direction it was sent in, and converts it into a mutual match.
func (s *RelationService) AcceptRequest(accepterID, requesterID uint) error {
	if accepterID == requesterID {
		return errors.New(errors.ErrCodeInvalidState, "cannot accept your own request")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.relations.WithTx(tx)

		if err := repo.PurgeBetween(accepterID, requesterID, []string{models.RelationRequest}); err != nil {
			return err
		}

		if err := repo.CreateIfAbsent(&models.UserRelation{
			FromUserID: accepterID,
			ToUserID:   requesterID,
			Type:       models.RelationMatch,
		}); err != nil {
			return err
		}

		return repo.CreateIfAbsent(&models.UserRelation{
			FromUserID: requesterID,
			ToUserID:   accepterID,
			Type:       models.RelationMatch,
		})
	})
}

// Report files a report against a user. One report per direction per pair;
// the first reason is the one retained. The reason is free text from the
// client: HTML is stripped and the length capped to the stored column.
func (s *RelationService) Report(fromID, toID uint, reason string) error {
	if fromID == toID {
		return errors.New(errors.ErrCodeInvalidState, "cannot report yourself")
	}

	reason = utils.CollapseWhitespace(security.SanitizeHTML(reason))
	reason = utils.Truncate(reason, 500)

	return s.relations.CreateIfAbsent(&models.UserRelation{
		FromUserID:   fromID,
		ToUserID:     toID,
		Type:         models.RelationReport,
		ReportReason: reason,
	})
}

// IsBlocked reports whether a BLOCK edge exists in either direction.
func (s *RelationService) IsBlocked(user1ID, user2ID uint) (bool, error) {
	return s.relations.ExistsEither(user1ID, user2ID, models.RelationBlock)
}

// IsMatched requires MATCH edges in both directions. A one-directional row
// left behind by a partial failure reads as not matched.
func (s *RelationService) IsMatched(user1ID, user2ID uint) (bool, error) {
	forward, err := s.relations.Exists(user1ID, user2ID, models.RelationMatch)
	if err != nil {
		return false, err
	}
	if !forward {
		return false, nil
	}

	return s.relations.Exists(user2ID, user1ID, models.RelationMatch)
}

// Shortlisted lists the user's outgoing shortlist, newest first.
func (s *RelationService) Shortlisted(userID uint) ([]models.UserRelation, error) {
	return s.relations.ListFrom(userID, models.RelationShortlist)
}

// Matches lists the user's outgoing MATCH edges, newest first.
func (s *RelationService) Matches(userID uint) ([]models.UserRelation, error) {
	return s.relations.ListFrom(userID, models.RelationMatch)
}

// PendingRequests lists connection asks the user has sent, newest first.
func (s *RelationService) PendingRequests(userID uint) ([]models.UserRelation, error) {
	return s.relations.ListFrom(userID, models.RelationRequest)
}
