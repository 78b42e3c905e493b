package handlers

import (
	"github.com/adam-ctrlc/gotrabahu/internal/services"
	"github.com/adam-ctrlc/gotrabahu/internal/validator"
)

// AppHandlers holds every HTTP handler group.
type AppHandlers struct {
	Auth         *AuthHandler
	Job          *JobHandler
	Subscription *SubscriptionHandler
	Comment      *CommentHandler
	Admin        *AdminHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Auth:         NewAuthHandler(base, sc.AuthService, sc.UserService, sc.ApplicationService),
		Job:          NewJobHandler(base, sc.JobService, sc.ApplicationService, sc.RatingService),
		Subscription: NewSubscriptionHandler(base, sc.SubscriptionService),
		Comment:      NewCommentHandler(base, sc.CommentService),
		Admin:        NewAdminHandler(base, sc.UserService, sc.SubscriptionService),
	}
}
