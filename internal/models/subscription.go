package models

import "gorm.io/datatypes"

// Subscription is a catalog entry describing a purchasable plan.
type Subscription struct {
	BaseModelWithDeleted
	Plan        SubscriptionPlanCode `gorm:"type:varchar(30);not null" json:"plan"`
	Description datatypes.JSON       `gorm:"type:json" json:"description"` // perk list
	Price       string               `gorm:"not null" json:"price"`
	Status      string               `gorm:"type:varchar(20);default:'active'" json:"status"`
}

// UserSubscription is a user's request for a plan; the admin moves it
// through pending -> active -> inactive.
type UserSubscription struct {
	BaseModelWithDeleted
	UserID         string             `gorm:"not null;index" json:"user_id"`
	SubscriptionID string             `gorm:"not null;index" json:"subscriptions_id"`
	Status         SubscriptionStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	// Relations
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Subscription *Subscription `gorm:"foreignKey:SubscriptionID" json:"subscription,omitempty"`
}
