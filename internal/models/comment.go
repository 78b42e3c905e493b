package models

type Comment struct {
	BaseModelWithDeleted
	JobID   string `gorm:"not null;index" json:"job_id"`
	UserID  string `gorm:"not null;index" json:"user_id"`
	Comment string `gorm:"not null" json:"comment"`

	// Relations
	Job  *Job  `gorm:"foreignKey:JobID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}
