package services

import (
	"errors"
	"time"

	"github.com/adam-ctrlc/gotrabahu/internal/auth"
	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/adam-ctrlc/gotrabahu/internal/repositories"
	"github.com/adam-ctrlc/gotrabahu/internal/services/dto"
	"github.com/adam-ctrlc/gotrabahu/pkg/apperrors"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo   *repositories.UserRepository
	appRepo    *repositories.ApplicationRepository
	ratingRepo *repositories.RatingRepository
	subRepo    *repositories.SubscriptionRepository
	jobRepo    *repositories.JobRepository
}

func NewUserService(
	userRepo *repositories.UserRepository,
	appRepo *repositories.ApplicationRepository,
	ratingRepo *repositories.RatingRepository,
	subRepo *repositories.SubscriptionRepository,
	jobRepo *repositories.JobRepository,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		appRepo:    appRepo,
		ratingRepo: ratingRepo,
		subRepo:    subRepo,
		jobRepo:    jobRepo,
	}
}

// Profile is the authenticated user's own view, with application
// aggregates and the rating average folded in.
type Profile struct {
	User              *models.User               `json:"user"`
	ApplicationCounts []repositories.StatusCount `json:"application_counts"`
	TotalApplications int64                      `json:"total_applications"`
	AverageRating     float64                    `json:"average_rating"`
	Ratings           []repositories.RatedJob    `json:"ratings"`
}

func (s *UserService) Me(db *gorm.DB, userID string) (*Profile, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	counts, err := s.appRepo.CountByStatusForUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	total, err := s.appRepo.CountForUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	avg, err := s.ratingRepo.AverageForUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ratings, err := s.ratingRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &Profile{
		User:              user,
		ApplicationCounts: counts,
		TotalApplications: total,
		AverageRating:     avg,
		Ratings:           ratings,
	}, nil
}

// History returns the user's applications with the jobs they belong to.
func (s *UserService) History(db *gorm.DB, userID string, limit, offset int) ([]models.Application, error) {
	apps, err := s.appRepo.ListByUser(db, userID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}

func (s *UserService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	applyProfileUpdates(user, req)

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func applyProfileUpdates(user *models.User, req *dto.UpdateProfileRequest) {
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.MiddleName != nil {
		user.MiddleName = req.MiddleName
	}
	if req.BirthDate != nil {
		if t, err := time.Parse("2006-01-02", *req.BirthDate); err == nil {
			user.BirthDate = t
		}
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.Gender != nil {
		user.Gender = models.Gender(*req.Gender)
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = req.ProfilePicture
	}
}

// Admin operations

func (s *UserService) ListByRole(db *gorm.DB, role models.UserRole, limit, offset int) ([]models.User, error) {
	if !models.ValidUserRole(role) {
		return nil, apperrors.ValidationError("unknown role")
	}
	users, err := s.userRepo.FindByRole(db, role, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return users, nil
}

func (s *UserService) Get(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserService) AdminCreate(db *gorm.DB, req *dto.AdminCreateUserRequest) (*models.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, apperrors.ValidationError("birth_date must be in YYYY-MM-DD format")
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         models.UserRole(req.Role),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MiddleName:   req.MiddleName,
		BirthDate:    birthDate,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Gender:       models.Gender(req.Gender),
	}
	if req.Tokens != nil {
		user.Tokens = *req.Tokens
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *UserService) AdminUpdate(db *gorm.DB, userID string, req *dto.AdminUpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Role != nil {
		user.Role = models.UserRole(*req.Role)
	}
	applyProfileUpdates(user, &dto.UpdateProfileRequest{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MiddleName:     req.MiddleName,
		BirthDate:      req.BirthDate,
		Phone:          req.Phone,
		Address:        req.Address,
		City:           req.City,
		Gender:         req.Gender,
		ProfilePicture: req.ProfilePicture,
	})

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if req.Tokens != nil {
		if err := s.userRepo.SetTokens(db, userID, *req.Tokens); err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.Tokens = *req.Tokens
	}
	return user, nil
}

func (s *UserService) AdminDelete(db *gorm.DB, userID string) error {
	if err := s.userRepo.Delete(db, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// Dashboard aggregates the counters shown on the admin landing page.
type Dashboard struct {
	Employees            int64 `json:"employees"`
	Employers            int64 `json:"employers"`
	Jobs                 int64 `json:"jobs"`
	Applications         int64 `json:"applications"`
	PendingSubscriptions int64 `json:"pending_subscriptions"`
}

func (s *UserService) AdminDashboard(db *gorm.DB) (*Dashboard, error) {
	var d Dashboard
	var err error

	if d.Employees, err = s.userRepo.CountByRole(db, models.UserRoleEmployee); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if d.Employers, err = s.userRepo.CountByRole(db, models.UserRoleEmployer); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if d.Jobs, err = s.jobRepo.CountAll(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if d.Applications, err = s.appRepo.CountAll(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if d.PendingSubscriptions, err = s.subRepo.CountPending(db); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &d, nil
}
