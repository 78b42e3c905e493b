package email

import (
	"github.com/adam-ctrlc/gotrabahu/internal/logger"
	"github.com/adam-ctrlc/gotrabahu/internal/models"
)

// LogProvider writes mail events to the log instead of sending them.
// Used in development and tests where no SMTP relay is configured.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) SendWelcome(user *models.User) error {
	logger.Info("email: welcome", "user_id", user.ID, "username", user.Username)
	return nil
}

func (p *LogProvider) SendApplicationStatusChanged(user *models.User, job *models.Job, status models.ApplicationStatus) error {
	logger.Info("email: application status changed",
		"user_id", user.ID, "job_id", job.ID, "status", status)
	return nil
}

func (p *LogProvider) SendSubscriptionApproved(user *models.User, plan *models.Subscription) error {
	logger.Info("email: subscription approved", "user_id", user.ID, "plan", plan.Plan)
	return nil
}
