package models

// Rating is an employer's score for a hired worker on an ended job.
type Rating struct {
	BaseModelWithDeleted
	JobID  string `gorm:"not null;uniqueIndex:idx_ratings_job_user" json:"job_id"`
	UserID string `gorm:"not null;uniqueIndex:idx_ratings_job_user" json:"user_id"`
	Rating int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`

	// Relations
	Job  *Job  `gorm:"foreignKey:JobID" json:"-"`
	User *User `gorm:"foreignKey:UserID" json:"-"`
}
