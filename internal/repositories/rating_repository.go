package repositories

import (
	"errors"

	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"gorm.io/gorm"
)

var (
	ErrRatingNotFound      = errors.New("rating not found")
	ErrRatingAlreadyExists = errors.New("rating already exists")
)

type RatingRepository struct{}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{}
}

func (r *RatingRepository) Create(db *gorm.DB, rating *models.Rating) error {
	if err := db.Create(rating).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRatingAlreadyExists
		}
		return err
	}
	return nil
}

func (r *RatingRepository) FindByJobAndUser(db *gorm.DB, jobID, userID string) (*models.Rating, error) {
	var rating models.Rating
	err := db.Where("job_id = ? AND user_id = ?", jobID, userID).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) UpdateScore(db *gorm.DB, id string, score int) error {
	result := db.Model(&models.Rating{}).Where("id = ?", id).Update("rating", score)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return nil
}

func (r *RatingRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Rating{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRatingNotFound
	}
	return nil
}

// RatedJob is a rating joined with the job it was given for.
type RatedJob struct {
	models.Rating
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
}

func (r *RatingRepository) ListByUser(db *gorm.DB, userID string) ([]RatedJob, error) {
	var rows []RatedJob
	err := db.Model(&models.Rating{}).
		Select("ratings.*, jobs.title as job_title, jobs.company as company").
		Joins("JOIN jobs ON jobs.id = ratings.job_id").
		Where("ratings.user_id = ?", userID).
		Order("ratings.created_at DESC").
		Find(&rows).Error
	return rows, err
}

// AverageForUser returns the mean score across all the user's ratings,
// zero when there are none.
func (r *RatingRepository) AverageForUser(db *gorm.DB, userID string) (float64, error) {
	var avg *float64
	err := db.Model(&models.Rating{}).
		Select("avg(rating)").
		Where("user_id = ?", userID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
