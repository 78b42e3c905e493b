package repositories

import (
	"errors"

	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository struct{}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

func (r *CommentRepository) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

// JobComment is a comment joined with its author's display fields.
type JobComment struct {
	models.Comment
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r *CommentRepository) ListByJob(db *gorm.DB, jobID string) ([]JobComment, error) {
	var rows []JobComment
	err := db.Model(&models.Comment{}).
		Select("comments.*, users.first_name, users.last_name").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.job_id = ?", jobID).
		Order("comments.created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *CommentRepository) FindByID(db *gorm.DB, id string) (*models.Comment, error) {
	var comment models.Comment
	err := db.First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
