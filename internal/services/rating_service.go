package services

import (
	"errors"

	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/adam-ctrlc/gotrabahu/internal/repositories"
	"github.com/adam-ctrlc/gotrabahu/pkg/apperrors"
	"gorm.io/gorm"
)

// RatingService lets an employer rate a worker they hired, once per job,
// after the job has ended.
type RatingService struct {
	ratingRepo *repositories.RatingRepository
	jobRepo    *repositories.JobRepository
	appRepo    *repositories.ApplicationRepository
}

func NewRatingService(
	ratingRepo *repositories.RatingRepository,
	jobRepo *repositories.JobRepository,
	appRepo *repositories.ApplicationRepository,
) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		jobRepo:    jobRepo,
		appRepo:    appRepo,
	}
}

// Get returns the employer's rating for the worker, or nil when the pair
// has not been rated yet. Clients read null as "not rated", so a missing
// rating is not an error.
func (s *RatingService) Get(db *gorm.DB, employerID, jobID, ratedUserID string) (*models.Rating, error) {
	if _, err := s.ownedJob(db, employerID, jobID); err != nil {
		return nil, err
	}

	rating, err := s.ratingRepo.FindByJobAndUser(db, jobID, ratedUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrRatingNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return rating, nil
}

// Create rates a finished hire. The job must be ended, the worker must have
// been accepted on it, and each (job, user) pair is rated once.
func (s *RatingService) Create(db *gorm.DB, employerID, jobID, ratedUserID string, score int) (*models.Rating, error) {
	if err := s.checkRatable(db, employerID, jobID, ratedUserID); err != nil {
		return nil, err
	}

	if _, err := s.ratingRepo.FindByJobAndUser(db, jobID, ratedUserID); err == nil {
		return nil, apperrors.ErrRatingAlreadyExists
	} else if !errors.Is(err, repositories.ErrRatingNotFound) {
		return nil, apperrors.InternalError(err)
	}

	rating := &models.Rating{
		JobID:  jobID,
		UserID: ratedUserID,
		Rating: score,
	}
	if err := s.ratingRepo.Create(db, rating); err != nil {
		if errors.Is(err, repositories.ErrRatingAlreadyExists) {
			return nil, apperrors.ErrRatingAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}
	return rating, nil
}

func (s *RatingService) Update(db *gorm.DB, employerID, jobID, ratedUserID string, score int) (*models.Rating, error) {
	if _, err := s.ownedJob(db, employerID, jobID); err != nil {
		return nil, err
	}

	rating, err := s.ratingRepo.FindByJobAndUser(db, jobID, ratedUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrRatingNotFound) {
			return nil, apperrors.ErrRatingNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.ratingRepo.UpdateScore(db, rating.ID, score); err != nil {
		return nil, apperrors.InternalError(err)
	}
	rating.Rating = score
	return rating, nil
}

// Delete removes a rating. No balance or status side effects.
func (s *RatingService) Delete(db *gorm.DB, employerID, jobID, ratedUserID string) error {
	if _, err := s.ownedJob(db, employerID, jobID); err != nil {
		return err
	}

	rating, err := s.ratingRepo.FindByJobAndUser(db, jobID, ratedUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrRatingNotFound) {
			return apperrors.ErrRatingNotFound
		}
		return apperrors.InternalError(err)
	}
	if err := s.ratingRepo.Delete(db, rating.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *RatingService) ownedJob(db *gorm.DB, employerID, jobID string) (*models.Job, error) {
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

// checkRatable enforces the rating gates: owned job, ended, accepted hire.
func (s *RatingService) checkRatable(db *gorm.DB, employerID, jobID, ratedUserID string) error {
	job, err := s.ownedJob(db, employerID, jobID)
	if err != nil {
		return err
	}
	if job.LifeCycle != models.JobLifeCycleEnded {
		return apperrors.ErrJobNotEnded
	}

	app, err := s.appRepo.FindByJobAndUser(db, jobID, ratedUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrNotHired
		}
		return apperrors.InternalError(err)
	}
	if app.Status != models.ApplicationStatusAccepted {
		return apperrors.ErrNotHired
	}
	return nil
}
