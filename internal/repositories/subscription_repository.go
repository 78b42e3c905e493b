package repositories

import (
	"errors"

	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type SubscriptionRepository struct{}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{}
}

func (r *SubscriptionRepository) ListPlans(db *gorm.DB) ([]models.Subscription, error) {
	var plans []models.Subscription
	err := db.Order("created_at ASC").Find(&plans).Error
	return plans, err
}

func (r *SubscriptionRepository) FindPlanByID(db *gorm.DB, id string) (*models.Subscription, error) {
	var plan models.Subscription
	err := db.First(&plan, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *SubscriptionRepository) FindPlanByName(db *gorm.DB, plan models.SubscriptionPlanCode) (*models.Subscription, error) {
	var row models.Subscription
	err := db.First(&row, "plan = ?", plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *SubscriptionRepository) FindPendingByUser(db *gorm.DB, userID string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := db.Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusPending).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindLatestByUser returns the most recent subscription row regardless of
// status. Admin activation operates on this row.
func (r *SubscriptionRepository) FindLatestByUser(db *gorm.DB, userID string) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := db.Preload("Subscription").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// HasActiveUnlimited reports whether the user holds an active unlimited plan,
// which bypasses token charges entirely.
func (r *SubscriptionRepository) HasActiveUnlimited(db *gorm.DB, userID string) (bool, error) {
	var count int64
	err := db.Model(&models.UserSubscription{}).
		Joins("JOIN subscriptions ON subscriptions.id = user_subscriptions.subscription_id").
		Where("user_subscriptions.user_id = ? AND user_subscriptions.status = ? AND subscriptions.plan = ?",
			userID, models.SubscriptionStatusActive, models.PlanUnlimitedToken).
		Count(&count).Error
	return count > 0, err
}

func (r *SubscriptionRepository) CreateUserSubscription(db *gorm.DB, sub *models.UserSubscription) error {
	return db.Create(sub).Error
}

func (r *SubscriptionRepository) UpdateUserSubscription(db *gorm.DB, id string, updates map[string]interface{}) error {
	result := db.Model(&models.UserSubscription{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// DeactivateActiveForUser flips every active subscription of the user to
// inactive, returning how many rows changed.
func (r *SubscriptionRepository) DeactivateActiveForUser(db *gorm.DB, userID string) (int64, error) {
	result := db.Model(&models.UserSubscription{}).
		Where("user_id = ? AND status = ?", userID, models.SubscriptionStatusActive).
		Update("status", models.SubscriptionStatusInactive)
	return result.RowsAffected, result.Error
}

func (r *SubscriptionRepository) HistoryByUser(db *gorm.DB, userID string) ([]models.UserSubscription, error) {
	var subs []models.UserSubscription
	err := db.Preload("Subscription").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepository) ListAllWithUsers(db *gorm.DB, limit, offset int) ([]models.UserSubscription, error) {
	var subs []models.UserSubscription
	q := db.Preload("Subscription").Preload("User").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepository) CountPending(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.UserSubscription{}).
		Where("status = ?", models.SubscriptionStatusPending).
		Count(&count).Error
	return count, err
}
