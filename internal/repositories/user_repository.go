package repositories

import (
	"errors"
	"time"

	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrNoTokens          = errors.New("no tokens left")
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Unscoped().Where("username = ?", user.Username).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}
	return db.Create(user).Error
}

func (r *UserRepository) Update(db *gorm.DB, user *models.User) error {
	result := db.Model(user).Updates(map[string]interface{}{
		"username":        user.Username,
		"role":            user.Role,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"middle_name":     user.MiddleName,
		"birth_date":      user.BirthDate,
		"phone":           user.Phone,
		"address":         user.Address,
		"city":            user.City,
		"gender":          user.Gender,
		"profile_picture": user.ProfilePicture,
		"updated_at":      time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(db *gorm.DB, userID, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete soft-deletes the user; records are never hard-deleted.
func (r *UserRepository) Delete(db *gorm.DB, userID string) error {
	result := db.Where("id = ?", userID).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) FindByRole(db *gorm.DB, role models.UserRole, limit, offset int) ([]models.User, error) {
	var users []models.User
	q := db.Where("role = ?", role).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&users).Error
	return users, err
}

func (r *UserRepository) CountByRole(db *gorm.DB, role models.UserRole) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

// --- token accounting ---
// Balance mutations are guarded single-statement updates so that two
// concurrent transactions cannot both pass a read-then-write check.

// ConsumeToken spends one token. Returns ErrNoTokens when the balance is
// already zero.
func (r *UserRepository) ConsumeToken(db *gorm.DB, userID string) error {
	result := db.Model(&models.User{}).
		Where("id = ? AND tokens > 0", userID).
		UpdateColumn("tokens", gorm.Expr("tokens - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoTokens
	}
	return nil
}

// RefundToken credits one token back.
func (r *UserRepository) RefundToken(db *gorm.DB, userID string) error {
	result := db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("tokens", gorm.Expr("tokens + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetTokens overwrites the balance (admin plan activation).
func (r *UserRepository) SetTokens(db *gorm.DB, userID string, tokens int) error {
	result := db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("tokens", tokens)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// TokenBalance re-reads the balance, used to stamp ledger entries inside
// the same transaction as the mutation.
func (r *UserRepository) TokenBalance(db *gorm.DB, userID string) (int, error) {
	var tokens int
	err := db.Model(&models.User{}).Where("id = ?", userID).
		Pluck("tokens", &tokens).Error
	return tokens, err
}
