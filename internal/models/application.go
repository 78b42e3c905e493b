package models

// Application is one user's application to one job. The unique index keeps
// at most one row per (job, user) pair; withdrawal is a soft delete and
// re-applying restores the same row.
type Application struct {
	BaseModelWithDeleted
	JobID  string            `gorm:"not null;uniqueIndex:idx_applications_job_user" json:"job_id"`
	UserID string            `gorm:"not null;uniqueIndex:idx_applications_job_user" json:"user_id"`
	Status ApplicationStatus `gorm:"type:varchar(20);default:'applied'" json:"status"`

	// Relations
	Job  *Job  `gorm:"foreignKey:JobID" json:"job,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
