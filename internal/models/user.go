package models

import "time"

type User struct {
	BaseModelWithDeleted
	Username       string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	Role           UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	FirstName      string    `gorm:"not null" json:"first_name"`
	LastName       string    `gorm:"not null" json:"last_name"`
	MiddleName     *string   `json:"middle_name"`
	BirthDate      time.Time `json:"birth_date"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	Gender         Gender    `gorm:"type:varchar(10)" json:"gender"`
	ProfilePicture *string   `json:"profile_picture"`

	// Consumable application credits. Mutated only inside the token
	// accounting transactions and by admin plan activation.
	Tokens int `gorm:"not null;default:0;check:tokens >= 0" json:"token"`

	// Relations
	Jobs          []Job              `gorm:"foreignKey:EmployerID" json:"-"`
	Applications  []Application      `gorm:"foreignKey:UserID" json:"-"`
	Subscriptions []UserSubscription `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
