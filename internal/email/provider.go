package email

import "github.com/adam-ctrlc/gotrabahu/internal/models"

// Provider sends transactional mail. Delivery failures are logged by the
// caller and never fail the request that triggered them.
type Provider interface {
	SendWelcome(user *models.User) error
	SendApplicationStatusChanged(user *models.User, job *models.Job, status models.ApplicationStatus) error
	SendSubscriptionApproved(user *models.User, plan *models.Subscription) error
}
