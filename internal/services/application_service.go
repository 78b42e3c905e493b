package services

import (
	"errors"

	"github.com/adam-ctrlc/gotrabahu/internal/email"
	"github.com/adam-ctrlc/gotrabahu/internal/logger"
	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/adam-ctrlc/gotrabahu/internal/repositories"
	"github.com/adam-ctrlc/gotrabahu/pkg/apperrors"
	"gorm.io/gorm"
)

// ApplicationService owns every path that moves applications between
// statuses. Token accounting is atomic with the status write: both happen
// in one transaction or neither does.
type ApplicationService struct {
	appRepo   *repositories.ApplicationRepository
	jobRepo   *repositories.JobRepository
	userRepo  *repositories.UserRepository
	subRepo   *repositories.SubscriptionRepository
	tokenRepo *repositories.TokenEntryRepository
	mailer    email.Provider
}

func NewApplicationService(
	appRepo *repositories.ApplicationRepository,
	jobRepo *repositories.JobRepository,
	userRepo *repositories.UserRepository,
	subRepo *repositories.SubscriptionRepository,
	tokenRepo *repositories.TokenEntryRepository,
	mailer email.Provider,
) *ApplicationService {
	return &ApplicationService{
		appRepo:   appRepo,
		jobRepo:   jobRepo,
		userRepo:  userRepo,
		subRepo:   subRepo,
		tokenRepo: tokenRepo,
		mailer:    mailer,
	}
}

// Apply submits the user's application to a job. One token is consumed
// unless the user holds an active unlimited subscription. A previously
// withdrawn application is restored instead of recreated, without a second
// charge.
func (s *ApplicationService) Apply(db *gorm.DB, userID, jobID string) (*models.Application, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.LifeCycle == models.JobLifeCycleEnded {
		return nil, apperrors.ErrJobEnded
	}

	// Balance gate runs before the restore branch: applying always requires
	// tokens or an unlimited plan, even when it only revives a withdrawn row.
	unlimited, err := s.subRepo.HasActiveUnlimited(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !unlimited {
		balance, err := s.userRepo.TokenBalance(db, userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if balance <= 0 {
			return nil, apperrors.ErrInsufficientTokens
		}
	}

	existing, err := s.appRepo.FindByJobAndUserUnscoped(db, jobID, userID)
	if err != nil && !errors.Is(err, repositories.ErrApplicationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if existing != nil {
		if !existing.DeletedAt.Valid {
			return nil, apperrors.ErrDuplicateApplication
		}
		// The original application comes back as-is; the earlier charge
		// already paid for it.
		if err := s.appRepo.Restore(db, existing.ID, models.ApplicationStatusApplied); err != nil {
			return nil, apperrors.InternalError(err)
		}
		existing.Status = models.ApplicationStatusApplied
		existing.DeletedAt = gorm.DeletedAt{}
		return existing, nil
	}

	app := &models.Application{
		JobID:  jobID,
		UserID: userID,
		Status: models.ApplicationStatusApplied,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if !unlimited {
			if err := s.userRepo.ConsumeToken(tx, userID); err != nil {
				return err
			}
		}
		if err := s.appRepo.Create(tx, app); err != nil {
			return err
		}
		if !unlimited {
			return s.appendLedger(tx, userID, models.TokenReasonApplyDebit, -1, &jobID, &app.ID)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNoTokens):
			return nil, apperrors.ErrInsufficientTokens
		case errors.Is(err, repositories.ErrApplicationAlreadyExists):
			return nil, apperrors.ErrDuplicateApplication
		default:
			return nil, apperrors.InternalError(err)
		}
	}

	return app, nil
}

// CancelApply withdraws the user's application. The token spent on applying
// is not returned.
func (s *ApplicationService) CancelApply(db *gorm.DB, userID, jobID string) error {
	app, err := s.appRepo.FindByJobAndUser(db, jobID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return apperrors.ErrNotApplied
		}
		return apperrors.InternalError(err)
	}

	if err := s.appRepo.SoftDelete(db, app.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// UpdateStatus moves an application between applied, accepted and rejected
// on behalf of the employer who owns the job. Leaving accepted refunds the
// hire token; entering accepted consumes one, and fails when the applicant
// has none left.
func (s *ApplicationService) UpdateStatus(db *gorm.DB, employerID, applicationID string, newStatus models.ApplicationStatus) (*models.Application, error) {
	app, err := s.appRepo.FindByID(db, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if app.Job == nil || app.Job.EmployerID != employerID {
		return nil, apperrors.ErrNotJobOwner
	}

	oldStatus := app.Status
	if oldStatus == newStatus {
		return app, nil
	}
	if !models.CanTransitionApplication(oldStatus, newStatus) {
		return nil, apperrors.ErrInvalidTransition
	}

	// The accept debit and refund apply to every applicant; the unlimited
	// plan only waives the apply charge.
	err = db.Transaction(func(tx *gorm.DB) error {
		switch {
		case oldStatus == models.ApplicationStatusAccepted:
			// Leaving accepted returns the hire token.
			if err := s.userRepo.RefundToken(tx, app.UserID); err != nil {
				return err
			}
			if err := s.appendLedger(tx, app.UserID, models.TokenReasonStatusRefund, 1, &app.JobID, &app.ID); err != nil {
				return err
			}
		case newStatus == models.ApplicationStatusAccepted:
			if err := s.userRepo.ConsumeToken(tx, app.UserID); err != nil {
				return err
			}
			if err := s.appendLedger(tx, app.UserID, models.TokenReasonAcceptDebit, -1, &app.JobID, &app.ID); err != nil {
				return err
			}
		}
		return s.appRepo.UpdateStatus(tx, app.ID, newStatus)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNoTokens) {
			return nil, apperrors.ErrAcceptInsufficientTokens
		}
		return nil, apperrors.InternalError(err)
	}

	app.Status = newStatus

	if app.User != nil {
		if err := s.mailer.SendApplicationStatusChanged(app.User, app.Job, newStatus); err != nil {
			logger.Warn("status email failed", "application_id", app.ID, "error", err)
		}
	}

	return app, nil
}

// ListApplied returns applications visible to the caller: an employee sees
// their own, an employer sees those on their jobs, an admin sees all.
func (s *ApplicationService) ListApplied(db *gorm.DB, userID string, role models.UserRole, limit, offset int) ([]models.Application, error) {
	var (
		apps []models.Application
		err  error
	)
	switch role {
	case models.UserRoleEmployer:
		apps, err = s.appRepo.ListByEmployer(db, userID, limit, offset)
	case models.UserRoleAdmin:
		apps, err = s.appRepo.ListAll(db, limit, offset)
	default:
		apps, err = s.appRepo.ListByUser(db, userID, limit, offset)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return apps, nil
}

// TokenLedger lists the user's token entries, newest first.
func (s *ApplicationService) TokenLedger(db *gorm.DB, userID string, limit, offset int) ([]models.TokenEntry, error) {
	entries, err := s.tokenRepo.ListByUser(db, userID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return entries, nil
}

// appendLedger records a balance change with the post-change balance.
func (s *ApplicationService) appendLedger(tx *gorm.DB, userID string, reason models.TokenEntryReason, delta int, jobID, appID *string) error {
	balance, err := s.userRepo.TokenBalance(tx, userID)
	if err != nil {
		return err
	}
	return s.tokenRepo.Append(tx, &models.TokenEntry{
		UserID:        userID,
		JobID:         jobID,
		ApplicationID: appID,
		Reason:        reason,
		Delta:         delta,
		BalanceAfter:  balance,
	})
}
