package services

import (
	"github.com/rishtahub/rishta_backend/internal/repositories"
	"github.com/rishtahub/rishta_backend/pkg/logger"
	"gorm.io/gorm"
)

// AccountService handles whole-account operations that cut across every
// store: currently the irreversible deletion flow.
type AccountService struct {
	db        *gorm.DB
	users     *repositories.UserRepository
	profiles  *repositories.ProfileRepository
	relations *repositories.RelationRepository
	explore   *repositories.ExploreRepository
	messages  *repositories.MessageRepository
}

func NewAccountService(
	db *gorm.DB,
	users *repositories.UserRepository,
	profiles *repositories.ProfileRepository,
	relations *repositories.RelationRepository,
	explore *repositories.ExploreRepository,
	messages *repositories.MessageRepository,
) *AccountService {
	return &AccountService{
		db:        db,
		users:     users,
		profiles:  profiles,
		relations: relations,
		explore:   explore,
		messages:  messages,
	}
}

// DeleteAccount removes the user and everything that references them in a
// single transaction: messages, relation edges on either side, the explore
// ledger, the profile and finally the user row itself.
func (s *AccountService) DeleteAccount(userID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.messages.WithTx(tx).DeleteAllForUser(userID); err != nil {
			return err
		}

		if err := s.relations.WithTx(tx).DeleteAllForUser(userID); err != nil {
			return err
		}

		if err := s.explore.WithTx(tx).Reset(userID); err != nil {
			return err
		}

		if err := s.profiles.WithTx(tx).DeleteByUserID(userID); err != nil {
			return err
		}

		return s.users.WithTx(tx).Delete(userID)
	})

	if err != nil {
		return err
	}

	logger.Info("Account deleted", "user_id", userID)
	return nil
}
