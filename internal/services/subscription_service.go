package services

import (
	"errors"

	"github.com/adam-ctrlc/gotrabahu/internal/email"
	"github.com/adam-ctrlc/gotrabahu/internal/logger"
	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/adam-ctrlc/gotrabahu/internal/repositories"
	"github.com/adam-ctrlc/gotrabahu/internal/services/dto"
	"github.com/adam-ctrlc/gotrabahu/pkg/apperrors"
	"gorm.io/gorm"
)

const defaultTokenGrant = 20

type SubscriptionService struct {
	subRepo   *repositories.SubscriptionRepository
	userRepo  *repositories.UserRepository
	tokenRepo *repositories.TokenEntryRepository
	mailer    email.Provider
}

func NewSubscriptionService(
	subRepo *repositories.SubscriptionRepository,
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenEntryRepository,
	mailer email.Provider,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:   subRepo,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
	}
}

// Overview is the subscription landing payload: the available plans plus
// the caller's current subscription, when one exists.
type Overview struct {
	Plans   []models.Subscription    `json:"plans"`
	Current *models.UserSubscription `json:"current,omitempty"`
}

func (s *SubscriptionService) Overview(db *gorm.DB, userID string) (*Overview, error) {
	plans, err := s.subRepo.ListPlans(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	current, err := s.subRepo.FindLatestByUser(db, userID)
	if err != nil && !errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return nil, apperrors.InternalError(err)
	}

	return &Overview{Plans: plans, Current: current}, nil
}

func (s *SubscriptionService) History(db *gorm.DB, userID string) ([]models.UserSubscription, error) {
	subs, err := s.subRepo.HistoryByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return subs, nil
}

// Apply requests a plan. Any active subscription is deactivated; a pending
// request is then overwritten in place, otherwise a fresh pending row is
// created. The returned bool reports whether a new row was created.
func (s *SubscriptionService) Apply(db *gorm.DB, userID, planID string) (*models.UserSubscription, bool, error) {
	plan, err := s.subRepo.FindPlanByID(db, planID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, false, apperrors.ErrPlanNotFound
		}
		return nil, false, apperrors.InternalError(err)
	}

	pending, err := s.subRepo.FindPendingByUser(db, userID)
	if err != nil && !errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return nil, false, apperrors.InternalError(err)
	}

	if pending != nil {
		// Repointing the existing request rather than stacking a second one.
		// Any active row is retired here too, so the pending request is
		// always the user's sole live subscription state.
		err = db.Transaction(func(tx *gorm.DB) error {
			if _, err := s.subRepo.DeactivateActiveForUser(tx, userID); err != nil {
				return err
			}
			return s.subRepo.UpdateUserSubscription(tx, pending.ID, map[string]interface{}{
				"subscription_id": plan.ID,
			})
		})
		if err != nil {
			return nil, false, apperrors.InternalError(err)
		}
		pending.SubscriptionID = plan.ID
		pending.Subscription = plan
		return pending, false, nil
	}

	sub := &models.UserSubscription{
		UserID:         userID,
		SubscriptionID: plan.ID,
		Status:         models.SubscriptionStatusPending,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.subRepo.DeactivateActiveForUser(tx, userID); err != nil {
			return err
		}
		return s.subRepo.CreateUserSubscription(tx, sub)
	})
	if err != nil {
		return nil, false, apperrors.InternalError(err)
	}

	sub.Subscription = plan
	return sub, true, nil
}

func (s *SubscriptionService) ListAll(db *gorm.DB, limit, offset int) ([]models.UserSubscription, error) {
	subs, err := s.subRepo.ListAllWithUsers(db, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return subs, nil
}

// AdminUpdateUserSubscription sets the status and plan of the user's latest
// subscription request. Activating a 20_token plan resets the balance to the
// granted token count; activating unlimited never touches the balance.
func (s *SubscriptionService) AdminUpdateUserSubscription(db *gorm.DB, req *dto.AdminUpdateUserSubscriptionRequest) (*models.UserSubscription, error) {
	user, err := s.userRepo.FindByID(db, req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	plan, err := s.subRepo.FindPlanByID(db, req.SubscriptionID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, apperrors.ErrPlanNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	sub, err := s.subRepo.FindLatestByUser(db, req.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, apperrors.ErrSubscriptionNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	status := models.SubscriptionStatus(req.Status)

	err = db.Transaction(func(tx *gorm.DB) error {
		if status == models.SubscriptionStatusActive {
			if _, err := s.subRepo.DeactivateActiveForUser(tx, req.UserID); err != nil {
				return err
			}
		}

		if err := s.subRepo.UpdateUserSubscription(tx, sub.ID, map[string]interface{}{
			"subscription_id": plan.ID,
			"status":          status,
		}); err != nil {
			return err
		}

		if status == models.SubscriptionStatusActive && plan.Plan == models.PlanTwentyToken {
			grant := defaultTokenGrant
			if req.TokenCount != nil {
				grant = *req.TokenCount
			}
			before, err := s.userRepo.TokenBalance(tx, req.UserID)
			if err != nil {
				return err
			}
			if err := s.userRepo.SetTokens(tx, req.UserID, grant); err != nil {
				return err
			}
			return s.tokenRepo.Append(tx, &models.TokenEntry{
				UserID:       req.UserID,
				Reason:       models.TokenReasonAdminGrant,
				Delta:        grant - before,
				BalanceAfter: grant,
			})
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	sub.SubscriptionID = plan.ID
	sub.Subscription = plan
	sub.Status = status

	if status == models.SubscriptionStatusActive {
		if err := s.mailer.SendSubscriptionApproved(user, plan); err != nil {
			logger.Warn("subscription email failed", "user_id", user.ID, "error", err)
		}
	}

	return sub, nil
}
