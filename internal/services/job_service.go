package services

import (
	"errors"
	"time"

	"github.com/adam-ctrlc/gotrabahu/internal/email"
	"github.com/adam-ctrlc/gotrabahu/internal/logger"
	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/adam-ctrlc/gotrabahu/internal/repositories"
	"github.com/adam-ctrlc/gotrabahu/internal/services/dto"
	"github.com/adam-ctrlc/gotrabahu/pkg/apperrors"
	"gorm.io/gorm"
)

type JobService struct {
	jobRepo     *repositories.JobRepository
	appRepo     *repositories.ApplicationRepository
	commentRepo *repositories.CommentRepository
	userRepo    *repositories.UserRepository
	mailer      email.Provider
}

func NewJobService(
	jobRepo *repositories.JobRepository,
	appRepo *repositories.ApplicationRepository,
	commentRepo *repositories.CommentRepository,
	userRepo *repositories.UserRepository,
	mailer email.Provider,
) *JobService {
	return &JobService{
		jobRepo:     jobRepo,
		appRepo:     appRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		mailer:      mailer,
	}
}

// List returns jobs scoped by role: employers see only their own postings,
// employees and admins see everything matching the filter.
func (s *JobService) List(db *gorm.DB, userID string, role models.UserRole, query *dto.JobListQuery) ([]repositories.JobWithCount, error) {
	filter := repositories.JobFilter{
		LifeCycle: models.JobLifeCycle(query.LifeCycle),
		Search:    query.Search,
	}
	if role == models.UserRoleEmployer {
		filter.EmployerID = userID
	}

	jobs, err := s.jobRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

func (s *JobService) Create(db *gorm.DB, employerID string, req *dto.CreateJobRequest) (*models.Job, error) {
	duration, err := time.Parse("2006-01-02", req.Duration)
	if err != nil {
		return nil, apperrors.ValidationError("duration must be in YYYY-MM-DD format")
	}

	job := &models.Job{
		EmployerID:  employerID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
		Company:     req.Company,
		Contact:     req.Contact,
		Type:        models.JobType(req.Type),
		Duration:    duration,
	}
	if req.MaxApplicants > 0 {
		job.MaxApplicants = req.MaxApplicants
	}

	if err := s.jobRepo.Create(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

// JobDetail is a single job with everything a viewer needs: the applicant
// list for the employer, the viewer's own application for an employee, and
// the comment thread for both.
type JobDetail struct {
	Job            *models.Job               `json:"job"`
	Applications   []models.Application      `json:"applications,omitempty"`
	OwnApplication *models.Application       `json:"own_application,omitempty"`
	Comments       []repositories.JobComment `json:"comments"`
}

func (s *JobService) Get(db *gorm.DB, jobID, viewerID string, role models.UserRole) (*JobDetail, error) {
	job, err := s.jobRepo.FindByIDWithEmployer(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	detail := &JobDetail{Job: job}

	comments, err := s.commentRepo.ListByJob(db, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	detail.Comments = comments

	switch role {
	case models.UserRoleEmployer, models.UserRoleAdmin:
		apps, err := s.appRepo.ListByJob(db, jobID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		detail.Applications = apps
	case models.UserRoleEmployee:
		app, err := s.appRepo.FindByJobAndUser(db, jobID, viewerID)
		if err != nil && !errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.InternalError(err)
		}
		detail.OwnApplication = app
	}

	return detail, nil
}

func (s *JobService) Update(db *gorm.DB, employerID, jobID string, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.ownedJob(db, employerID, jobID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Salary != nil {
		job.Salary = *req.Salary
	}
	if req.Company != nil {
		job.Company = *req.Company
	}
	if req.Contact != nil {
		job.Contact = *req.Contact
	}
	if req.MaxApplicants != nil {
		job.MaxApplicants = *req.MaxApplicants
	}
	if req.Type != nil {
		job.Type = models.JobType(*req.Type)
	}
	if req.Duration != nil {
		duration, err := time.Parse("2006-01-02", *req.Duration)
		if err != nil {
			return nil, apperrors.ValidationError("duration must be in YYYY-MM-DD format")
		}
		job.Duration = duration
	}

	if err := s.jobRepo.Update(db, job); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return job, nil
}

func (s *JobService) Delete(db *gorm.DB, employerID, jobID string) error {
	if _, err := s.ownedJob(db, employerID, jobID); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(db, jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// EndJob moves the job to ended and cascades every still-applied
// application to done, in one transaction. Ending is one-way; calling it
// again on an ended job is a no-op success.
func (s *JobService) EndJob(db *gorm.DB, employerID, jobID string) (*models.Job, error) {
	job, err := s.ownedJob(db, employerID, jobID)
	if err != nil {
		return nil, err
	}

	if job.LifeCycle == models.JobLifeCycleEnded {
		return job, nil
	}
	if !models.CanTransitionJob(job.LifeCycle, models.JobLifeCycleEnded) {
		return nil, apperrors.ErrInvalidTransition
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.jobRepo.MarkEnded(tx, jobID); err != nil {
			return err
		}
		moved, err := s.appRepo.CascadeDone(tx, jobID)
		if err != nil {
			return err
		}
		logger.Info("job ended", "job_id", jobID, "applications_done", moved)
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	job.LifeCycle = models.JobLifeCycleEnded
	return job, nil
}

// EmployerHistory lists the employer's postings with applicant counts.
func (s *JobService) EmployerHistory(db *gorm.DB, employerID string, lifeCycle models.JobLifeCycle) ([]repositories.JobWithCount, error) {
	jobs, err := s.jobRepo.List(db, repositories.JobFilter{
		EmployerID: employerID,
		LifeCycle:  lifeCycle,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return jobs, nil
}

// ownedJob loads the job and verifies the caller posted it.
func (s *JobService) ownedJob(db *gorm.DB, employerID, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.EmployerID != employerID {
		return nil, apperrors.ErrNotJobOwner
	}
	return job, nil
}
