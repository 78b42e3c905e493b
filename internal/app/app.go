package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/adam-ctrlc/gotrabahu/database"
	"github.com/adam-ctrlc/gotrabahu/internal/auth"
	"github.com/adam-ctrlc/gotrabahu/internal/config"
	"github.com/adam-ctrlc/gotrabahu/internal/email"
	"github.com/adam-ctrlc/gotrabahu/internal/handlers"
	"github.com/adam-ctrlc/gotrabahu/internal/logger"
	"github.com/adam-ctrlc/gotrabahu/internal/middleware"
	"github.com/adam-ctrlc/gotrabahu/internal/models"
	"github.com/adam-ctrlc/gotrabahu/internal/routes"
	"github.com/adam-ctrlc/gotrabahu/internal/services"
	"github.com/adam-ctrlc/gotrabahu/internal/validator"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.Connect(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	if err := database.SeedSubscriptionPlans(gormDB); err != nil {
		logger.Fatal("Failed to seed subscription plans", "error", err)
	}
	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full gin engine. Tests call this directly over an
// in-memory database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	mailer := newMailer(cfg)

	serviceContainer := services.NewServiceContainer(mailer)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	router := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(router, appHandlers)

	return router
}

func newMailer(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP not configured, email delivery is log-only")
		return email.NewLogProvider()
	}
	return email.NewSMTPProvider(cfg.Email)
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the bootstrap admin account once. Skipped when no
// admin password is configured.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.Admin.Password == "" {
		logger.Warn("ADMIN_PASSWORD is not set, skipping admin seeding")
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", cfg.Admin.Username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     cfg.Admin.Username,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		FirstName:    "System",
		LastName:     "Administrator",
		BirthDate:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:       "other",
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("Seeded first admin user", "username", cfg.Admin.Username)
	return nil
}
