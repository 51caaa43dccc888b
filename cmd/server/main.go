package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/lms/backend/internal/middleware"
	"github.com/anonto42/lms/backend/internal/repositories"
	"github.com/anonto42/lms/backend/internal/router"
	"github.com/anonto42/lms/backend/internal/services"
	"github.com/anonto42/lms/backend/pkg/config"
	"github.com/anonto42/lms/backend/pkg/firebase"
	"github.com/anonto42/lms/backend/pkg/gemini"
	"github.com/anonto42/lms/backend/pkg/razorpay"
	"github.com/anonto42/lms/backend/pkg/youtube"
	"github.com/anonto42/lms/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger := log.New(os.Stderr, "lms ", log.LstdFlags|log.Lmicroseconds)

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	if err := router.Migrate(db.Postgres); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := repositories.EnsureMongoIndexes(ctx, db.MongoDB); err != nil {
		log.Fatalf("Failed to create MongoDB indexes: %v", err)
	}

	// Initialize Firebase. Without it there is no Firebase login and no push.
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		if cfg.AuthMode == "firebase" || cfg.IsProduction() {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		log.Printf("Firebase disabled: %v", err)
	}

	// --- Repositories ---
	repos := router.Repositories{
		Users:         repositories.NewPostgresUserRepository(db.Postgres),
		Notifications: repositories.NewPostgresNotificationRepository(db.Postgres),
		Donations:     repositories.NewPostgresDonationRepository(db.Postgres),
		Posts:         repositories.NewMongoPostRepository(db.MongoDB),
		Courses:       repositories.NewMongoCourseRepository(db.MongoDB),
		Activity:      repositories.NewMongoActivityRepository(db.MongoDB),
	}
	voteRepo := repositories.NewMongoVoteRepository(db.Mongo, db.MongoDB)

	// --- Services ---
	var push services.PushDispatcher
	if firebaseApp != nil {
		push = firebase.NewMessagingDispatcher(firebaseApp.MessagingClient)
	}
	notifier := services.NewAdminNotifier(repos.Users, repos.Notifications, push, services.WithLogger(logger))
	voteService := services.NewVoteService(repos.Posts, voteRepo, notifier, cfg.HighlightThreshold, services.WithLogger(logger))
	activityService := services.NewActivityService(repos.Activity, cfg.ActivityWindowDays, services.WithLogger(logger))

	deps := router.Deps{
		Repos:            repos,
		Activity:         activityService,
		Votes:            voteService,
		JWTSecret:        cfg.JWTSecret,
		JWTTTL:           time.Duration(cfg.JWTTTLHours) * time.Hour,
		Payments:         razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		DonationCurrency: cfg.DonationCurrency,
		DAUDefaultDays:   cfg.DAUDefaultDays,
	}

	if firebaseApp != nil {
		deps.Verifier = firebaseApp.AuthClient
	}
	switch cfg.AuthMode {
	case "firebase":
		deps.Auth = middleware.FirebaseAuthMiddleware(firebaseApp.AuthClient)
	default:
		deps.Auth = middleware.JWTAuthMiddleware(cfg.JWTSecret)
	}

	if playlists, err := youtube.NewPlaylistClient(ctx, cfg.YoutubeAPIKey); err != nil {
		log.Printf("YouTube playlists disabled: %v", err)
	} else {
		deps.Playlists = playlists
	}

	var tutor *gemini.Tutor
	if tutor, err = gemini.NewTutor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel); err != nil {
		log.Printf("AI tutor disabled: %v", err)
	} else {
		defer tutor.Close()
		deps.Tutor = tutor
	}

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e)
	router.SetupRoutes(e, deps)

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Metrics server stopped: %v", err)
		}
	}()

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Metrics shutdown: %v", err)
	}
	voteService.Wait()
}
