package models

import "time"

type Job struct {
	BaseModelWithDeleted
	EmployerID    string       `gorm:"not null;index" json:"employer_id"`
	Title         string       `gorm:"not null" json:"title"`
	Description   string       `gorm:"not null" json:"description"`
	Location      string       `gorm:"not null" json:"location"`
	Salary        string       `gorm:"not null" json:"salary"`
	Company       string       `gorm:"not null" json:"company"`
	Contact       string       `gorm:"not null" json:"contact"`
	MaxApplicants int          `gorm:"default:20" json:"max_applicants"`
	Type          JobType      `gorm:"type:varchar(20);default:'full_time'" json:"type"`
	LifeCycle     JobLifeCycle `gorm:"type:varchar(20);default:'active'" json:"life_cycle"`
	Duration      time.Time    `json:"duration"`

	// Relations
	Employer     *User         `gorm:"foreignKey:EmployerID" json:"employer,omitempty"`
	Applications []Application `gorm:"foreignKey:JobID" json:"-"`
}
