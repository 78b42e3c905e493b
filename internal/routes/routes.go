package routes

import (
	"github.com/adam-ctrlc/gotrabahu/internal/handlers"
	"github.com/adam-ctrlc/gotrabahu/internal/middleware"
	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HTTP API. Role capability is declared here at
// the route boundary; handlers never re-check roles.
func RegisterRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	api := router.Group("/api/v1")

	// Public
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Authenticated
	auth := api.Group("/auth")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/me", h.Auth.Me)
		auth.GET("/history", h.Auth.History)
		auth.GET("/token-ledger", h.Auth.TokenLedger)
		auth.PUT("/update/:id", h.Auth.UpdateProfile)
		auth.PUT("/change-password", h.Auth.ChangePassword)

		// Legacy alias kept for existing clients.
		auth.POST("/update-user-apply/:id",
			middleware.RequireRoles(models.UserRoleEmployer),
			h.Job.UpdateApplicationStatus)
	}

	jobs := api.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.GET("", h.Job.List)
		jobs.GET("/user-applied", h.Job.ListApplied)

		employee := jobs.Group("")
		employee.Use(middleware.RequireRoles(models.UserRoleEmployee))
		{
			employee.POST("/:id/apply", h.Job.Apply)
			employee.POST("/:id/cancel-apply", h.Job.CancelApply)
		}

		employer := jobs.Group("")
		employer.Use(middleware.RequireRoles(models.UserRoleEmployer))
		{
			employer.POST("", h.Job.Create)
			employer.GET("/history", h.Job.History)
			employer.PUT("/:id", h.Job.Update)
			employer.DELETE("/:id", h.Job.Delete)
			employer.POST("/:id/end", h.Job.End)
			employer.POST("/user-applied/:id", h.Job.UpdateApplicationStatus)

			rate := employer.Group("/user-applied/rate")
			{
				rate.GET("/:job_id/:user_id", h.Job.GetRating)
				rate.POST("/:job_id/:user_id", h.Job.CreateRating)
				rate.PUT("/:job_id/:user_id", h.Job.UpdateRating)
				rate.DELETE("/:job_id/:user_id", h.Job.DeleteRating)
			}
		}

		// Parameterized detail route registered after the static ones.
		jobs.GET("/:id", h.Job.Get)
	}

	comments := api.Group("/comments")
	comments.Use(middleware.AuthMiddleware())
	{
		comments.GET("/:job_id", h.Comment.ListByJob)
		comments.POST("", h.Comment.Create)
		comments.DELETE("/:id", h.Comment.Delete)
		comments.DELETE("/post-owner/:id",
			middleware.RequireRoles(models.UserRoleEmployer),
			h.Comment.DeleteAsJobOwner)
	}

	subscription := api.Group("/subscription")
	subscription.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleEmployee, models.UserRoleEmployer))
	{
		subscription.GET("", h.Subscription.Overview)
		subscription.GET("/history", h.Subscription.History)
		subscription.POST("/apply/:subscriptions_id", h.Subscription.Apply)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.Admin.Dashboard)
		admin.POST("", h.Admin.CreateUser)
		admin.GET("/get-subscriptions", h.Admin.ListSubscriptions)
		admin.POST("/update_user_subscription", h.Admin.UpdateUserSubscription)
		admin.GET("/:id", h.Admin.GetUser)
		admin.PUT("/:id", h.Admin.UpdateUser)
		admin.DELETE("/:id", h.Admin.DeleteUser)
	}
}
