package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Sumit6307/Try-Nutri/internal/config"
	"github.com/Sumit6307/Try-Nutri/internal/handlers"
	"github.com/Sumit6307/Try-Nutri/internal/middleware"
	"github.com/Sumit6307/Try-Nutri/internal/models"
	"github.com/Sumit6307/Try-Nutri/internal/repositories"
	"github.com/Sumit6307/Try-Nutri/internal/services"
	"github.com/Sumit6307/Try-Nutri/pkg/hashpool"
	"github.com/Sumit6307/Try-Nutri/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Database ---
	// PostgreSQL when a DSN is configured, local SQLite file otherwise.
	// TranslateError maps driver unique-violation errors to gorm.ErrDuplicatedKey.
	var dialector gorm.Dialector
	if cfg.DatabaseDSN != "" {
		dialector = postgres.Open(cfg.DatabaseDSN)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.CalorieLog{}, &models.UsedResetToken{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Hash worker pool ---
	// bcrypt runs here so request goroutines never block on hashing.
	hasher := hashpool.New(cfg.HashWorkers, cfg.BcryptCost)
	defer hasher.Close()

	// --- RabbitMQ (password reset email delivery) ---
	// The API stays up without a broker; reset emails are skipped and logged.
	var mailPublisher services.ResetMailPublisher
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, password reset emails disabled: %v", err)
	} else {
		defer mqClient.Close()
		mailPublisher = mqClient
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	calorieRepo := repositories.NewGORMCalorieLogRepository(db)
	resetTokenRepo := repositories.NewGORMResetTokenRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, resetTokenRepo, mailPublisher, hasher, cfg.JWTSecret, cfg.ResetBaseURL)
	userService := services.NewUserService(userRepo, hasher)
	calorieService := services.NewCalorieService(calorieRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	calorieHandler := handlers.NewCalorieHandler(calorieService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	api := app.Group("/api")

	// Authentication routes (public)
	authHandler.RegisterRoutes(api)

	// Protected routes (require a login token)
	protected := api.Group("", middleware.AuthRequired(authService))
	userHandler.RegisterRoutes(protected)
	calorieHandler.RegisterRoutes(protected)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Mail consumer ---
	// Drains queued password reset emails. The actual SMTP hand-off lives in
	// the deployment's mail relay; here the delivery is logged.
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for password reset emails...")
		if consumerErr := mqClient.ConsumePasswordResetEmails(func(msg rabbitmq.PasswordResetEmail) error {
			log.Printf("Sending password reset email to %s (link expires %s)", msg.To, msg.ExpiresAt.Format(time.RFC3339))
			return nil
		}); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Used reset token cleanup ---
	// Markers only matter until their token expires; purge hourly.
	cleanupDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := resetTokenRepo.DeleteExpired(time.Now()); err != nil {
					log.Printf("Failed to purge expired reset tokens: %v", err)
				}
			case <-cleanupDone:
				return
			}
		}
	}()

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	close(cleanupDone)

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
