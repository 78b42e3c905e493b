package dto

type CreateJobRequest struct {
	Title         string `json:"title" validate:"required,max=255"`
	Description   string `json:"description" validate:"required"`
	Location      string `json:"location" validate:"required,max=255"`
	Salary        string `json:"salary" validate:"required,max=100"`
	Company       string `json:"company" validate:"required,max=255"`
	Contact       string `json:"contact" validate:"required,max=100"`
	MaxApplicants int    `json:"max_applicants" validate:"omitempty,min=1"`
	Type          string `json:"type" validate:"required,oneof=full_time part_time order"`
	Duration      string `json:"duration" validate:"required"`
}

type UpdateJobRequest struct {
	Title         *string `json:"title" validate:"omitempty,max=255"`
	Description   *string `json:"description" validate:"omitempty"`
	Location      *string `json:"location" validate:"omitempty,max=255"`
	Salary        *string `json:"salary" validate:"omitempty,max=100"`
	Company       *string `json:"company" validate:"omitempty,max=255"`
	Contact       *string `json:"contact" validate:"omitempty,max=100"`
	MaxApplicants *int    `json:"max_applicants" validate:"omitempty,min=1"`
	Type          *string `json:"type" validate:"omitempty,oneof=full_time part_time order"`
	Duration      *string `json:"duration" validate:"omitempty"`
}

type JobListQuery struct {
	LifeCycle string `form:"life_cycle" validate:"omitempty,oneof=active ended"`
	Search    string `form:"search" validate:"omitempty,max=255"`
	Page      int    `form:"page" validate:"omitempty,min=1"`
	Limit     int    `form:"limit" validate:"omitempty,min=1,max=100"`
}
