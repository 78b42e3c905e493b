package services

import (
	"errors"

	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/adam-ctrlc/gotrabahu/internal/repositories"
	"github.com/adam-ctrlc/gotrabahu/pkg/apperrors"
	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo *repositories.CommentRepository
	jobRepo     *repositories.JobRepository
}

func NewCommentService(commentRepo *repositories.CommentRepository, jobRepo *repositories.JobRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, jobRepo: jobRepo}
}

func (s *CommentService) ListByJob(db *gorm.DB, jobID string) ([]repositories.JobComment, error) {
	if _, err := s.jobRepo.FindByID(db, jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	comments, err := s.commentRepo.ListByJob(db, jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return comments, nil
}

func (s *CommentService) Create(db *gorm.DB, userID, jobID, text string) (*models.Comment, error) {
	if _, err := s.jobRepo.FindByID(db, jobID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	comment := &models.Comment{
		JobID:   jobID,
		UserID:  userID,
		Comment: text,
	}
	if err := s.commentRepo.Create(db, comment); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return comment, nil
}

// Delete removes the caller's own comment.
func (s *CommentService) Delete(db *gorm.DB, userID, commentID string) error {
	comment, err := s.commentRepo.FindByID(db, commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return apperrors.InternalError(err)
	}
	if comment.UserID != userID {
		return apperrors.ErrInsufficientPermissions
	}
	if err := s.commentRepo.Delete(db, commentID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// DeleteAsJobOwner lets the employer moderate comments on their own posting.
func (s *CommentService) DeleteAsJobOwner(db *gorm.DB, employerID, commentID string) error {
	comment, err := s.commentRepo.FindByID(db, commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return apperrors.InternalError(err)
	}

	job, err := s.jobRepo.FindByID(db, comment.JobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}
	if job.EmployerID != employerID {
		return apperrors.ErrNotJobOwner
	}

	if err := s.commentRepo.Delete(db, commentID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
