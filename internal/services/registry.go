package services

import (
	"github.com/adam-ctrlc/gotrabahu/internal/email"
	"github.com/adam-ctrlc/gotrabahu/internal/repositories"
)

// ServiceContainer holds every service the application exposes.
type ServiceContainer struct {
	AuthService         *AuthService
	UserService         *UserService
	JobService          *JobService
	ApplicationService  *ApplicationService
	RatingService       *RatingService
	SubscriptionService *SubscriptionService
	CommentService      *CommentService
	EmailService        email.Provider
}

// NewServiceContainer wires the repositories into the service layer.
func NewServiceContainer(mailer email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	jobRepo := repositories.NewJobRepository()
	appRepo := repositories.NewApplicationRepository()
	ratingRepo := repositories.NewRatingRepository()
	subRepo := repositories.NewSubscriptionRepository()
	tokenRepo := repositories.NewTokenEntryRepository()
	commentRepo := repositories.NewCommentRepository()

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, mailer),
		UserService:         NewUserService(userRepo, appRepo, ratingRepo, subRepo, jobRepo),
		JobService:          NewJobService(jobRepo, appRepo, commentRepo, userRepo, mailer),
		ApplicationService:  NewApplicationService(appRepo, jobRepo, userRepo, subRepo, tokenRepo, mailer),
		RatingService:       NewRatingService(ratingRepo, jobRepo, appRepo),
		SubscriptionService: NewSubscriptionService(subRepo, userRepo, tokenRepo, mailer),
		CommentService:      NewCommentService(commentRepo, jobRepo),
		EmailService:        mailer,
	}
}
