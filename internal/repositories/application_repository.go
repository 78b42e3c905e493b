package repositories

import (
	"errors"

	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrApplicationAlreadyExists = errors.New("application already exists")
)

type ApplicationRepository struct{}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{}
}

func (r *ApplicationRepository) Create(db *gorm.DB, app *models.Application) error {
	if err := db.Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrApplicationAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ApplicationRepository) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var app models.Application
	err := db.Preload("Job").Preload("User").First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// FindByJobAndUser returns the live application for the pair.
func (r *ApplicationRepository) FindByJobAndUser(db *gorm.DB, jobID, userID string) (*models.Application, error) {
	var app models.Application
	err := db.Where("job_id = ? AND user_id = ?", jobID, userID).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// FindByJobAndUserUnscoped includes soft-deleted (withdrawn) rows so that a
// re-apply can restore the original application.
func (r *ApplicationRepository) FindByJobAndUserUnscoped(db *gorm.DB, jobID, userID string) (*models.Application, error) {
	var app models.Application
	err := db.Unscoped().Where("job_id = ? AND user_id = ?", jobID, userID).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Restore clears the soft-delete flag and resets the status.
func (r *ApplicationRepository) Restore(db *gorm.DB, id string, status models.ApplicationStatus) error {
	return db.Unscoped().Model(&models.Application{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"deleted_at": nil,
			"status":     status,
		}).Error
}

func (r *ApplicationRepository) UpdateStatus(db *gorm.DB, id string, status models.ApplicationStatus) error {
	result := db.Model(&models.Application{}).Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// SoftDelete withdraws the application.
func (r *ApplicationRepository) SoftDelete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Application{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// CascadeDone bulk-moves every applied application on the job to done.
// Accepted/rejected/done rows are left untouched, which also makes the
// operation safe to repeat.
func (r *ApplicationRepository) CascadeDone(db *gorm.DB, jobID string) (int64, error) {
	result := db.Model(&models.Application{}).
		Where("job_id = ? AND status = ?", jobID, models.ApplicationStatusApplied).
		Update("status", models.ApplicationStatusDone)
	return result.RowsAffected, result.Error
}

func (r *ApplicationRepository) ListByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Application, error) {
	var apps []models.Application
	q := db.Preload("Job").Preload("User").
		Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&apps).Error
	return apps, err
}

// ListByEmployer returns applications on any of the employer's jobs.
func (r *ApplicationRepository) ListByEmployer(db *gorm.DB, employerID string, limit, offset int) ([]models.Application, error) {
	var apps []models.Application
	q := db.Preload("Job").Preload("User").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ? AND jobs.deleted_at IS NULL", employerID).
		Order("applications.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) ListAll(db *gorm.DB, limit, offset int) ([]models.Application, error) {
	var apps []models.Application
	q := db.Preload("Job").Preload("User").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	err := q.Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) ListByJob(db *gorm.DB, jobID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Preload("User").Where("job_id = ?", jobID).
		Order("created_at DESC").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Count(&count).Error
	return count, err
}

// StatusCount is one row of a per-status aggregate.
type StatusCount struct {
	Status models.ApplicationStatus `json:"status"`
	Total  int64                    `json:"total"`
}

func (r *ApplicationRepository) CountByStatusForUser(db *gorm.DB, userID string) ([]StatusCount, error) {
	var counts []StatusCount
	err := db.Model(&models.Application{}).
		Select("status, count(*) as total").
		Where("user_id = ?", userID).
		Group("status").
		Find(&counts).Error
	return counts, err
}

func (r *ApplicationRepository) CountForUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Application{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
