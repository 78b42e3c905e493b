package services

import (
	"errors"
	"time"

	"github.com/adam-ctrlc/gotrabahu/internal/auth"
	"github.com/adam-ctrlc/gotrabahu/internal/config"
	"github.com/adam-ctrlc/gotrabahu/internal/email"
	"github.com/adam-ctrlc/gotrabahu/internal/logger"
	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/adam-ctrlc/gotrabahu/internal/repositories"
	"github.com/adam-ctrlc/gotrabahu/internal/services/dto"
	"github.com/adam-ctrlc/gotrabahu/pkg/apperrors"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo *repositories.UserRepository
	mailer   email.Provider
}

func NewAuthService(userRepo *repositories.UserRepository, mailer email.Provider) *AuthService {
	return &AuthService{userRepo: userRepo, mailer: mailer}
}

// Register creates an account. Self-registration only issues employer and
// employee roles; admins are created by other admins.
func (s *AuthService) Register(db *gorm.DB, req *dto.RegisterRequest) (*models.User, error) {
	role := models.UserRole(req.Role)
	if role == models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, apperrors.ValidationError("birth_date must be in YYYY-MM-DD format")
	}

	user := &models.User{
		Username:       req.Username,
		PasswordHash:   hash,
		Role:           role,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MiddleName:     req.MiddleName,
		BirthDate:      birthDate,
		Phone:          req.Phone,
		Address:        req.Address,
		City:           req.City,
		Gender:         models.Gender(req.Gender),
		ProfilePicture: req.ProfilePicture,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.mailer.SendWelcome(user); err != nil {
		logger.Warn("welcome email failed", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// Login verifies credentials and issues a JWT.
func (s *AuthService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(db, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: config.GetConfig().JWT.TTL * 60,
		Role:      string(user.Role),
	}, nil
}

// ChangePassword re-verifies the current password before setting a new one.
func (s *AuthService) ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdatePassword(db, userID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
