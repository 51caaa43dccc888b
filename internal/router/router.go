package router

import (
	"log"
	"time"

	"github.com/anonto42/lms/backend/internal/handlers"
	"github.com/anonto42/lms/backend/internal/middleware"
	"github.com/anonto42/lms/backend/internal/models"
	"github.com/anonto42/lms/backend/internal/repositories"
	"github.com/anonto42/lms/backend/internal/services"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Repositories groups the stores routes are built on
type Repositories struct {
	Users         repositories.UserRepository
	Notifications repositories.NotificationRepository
	Donations     repositories.DonationRepository
	Posts         repositories.PostRepository
	Courses       repositories.CourseRepository
	Activity      repositories.ActivityRepository
}

// Deps carries everything SetupRoutes wires into handlers
type Deps struct {
	Repos    Repositories
	Activity *services.ActivityService
	Votes    *services.VoteService

	// Auth guards every /api/v1 route except login
	Auth      echo.MiddlewareFunc
	Verifier  middleware.TokenVerifier // nil disables Firebase login
	JWTSecret string
	JWTTTL    time.Duration

	Playlists        handlers.PlaylistSource // nil serves courses without videos
	Tutor            handlers.DoubtAnswerer  // nil answers 503
	Payments         handlers.PaymentGateway
	DonationCurrency string
	DAUDefaultDays   int
}

// Migrate creates the PostgreSQL tables
func Migrate(pgdb *gorm.DB) error {
	if err := pgdb.AutoMigrate(
		&models.User{},
		&models.Notification{},
		&models.Donation{},
	); err != nil {
		return err
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")
	return nil
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, d Deps) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Unprotected routes for authentication ---
	authHandler := handlers.NewAuthHandler(d.Repos.Users, d.Verifier, d.JWTSecret, d.JWTTTL)
	authHandler.RegisterAuthRoutes(e.Group("/api/v1/auth"))
	log.Println("Auth routes configured.")

	// --- Protected routes ---
	api := e.Group("/api/v1", d.Auth)
	admin := middleware.RequireAdmin(d.Repos.Users)

	authHandler.RegisterProfileRoutes(api)
	log.Println("Profile routes configured.")

	communityHandler := handlers.NewCommunityHandler(d.Repos.Posts, d.Votes, d.Activity)
	communityHandler.RegisterCommunityRoutes(api)
	log.Println("Community routes configured.")

	activityHandler := handlers.NewActivityHandler(d.Activity)
	activityHandler.RegisterActivityRoutes(api)
	log.Println("Activity routes configured.")

	courseHandler := handlers.NewCourseHandler(d.Repos.Courses, d.Playlists, d.Activity)
	courseHandler.RegisterCourseRoutes(api, admin)
	log.Println("Course routes configured.")

	aiHandler := handlers.NewAIHandler(d.Tutor, d.Activity)
	aiHandler.RegisterAIRoutes(api)
	log.Println("AI routes configured.")

	paymentHandler := handlers.NewPaymentHandler(d.Repos.Donations, d.Payments, d.DonationCurrency)
	paymentHandler.RegisterPaymentRoutes(api)
	log.Println("Payment routes configured.")

	analyticsHandler := handlers.NewAnalyticsHandler(d.Repos.Activity, d.Repos.Posts, d.Repos.Donations, d.DAUDefaultDays)
	analyticsHandler.RegisterAnalyticsRoutes(api, admin)
	log.Println("Analytics routes configured.")

	notificationHandler := handlers.NewNotificationHandler(d.Repos.Notifications)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
