package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"literacylab/internal/config"
	"literacylab/internal/database"
	"literacylab/internal/handlers"
	"literacylab/internal/repository"
	"literacylab/internal/security"
	"literacylab/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	contentRepo := repository.NewContentRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	signer := security.NewURLSigner(cfg.SigningSecret)
	storage, err := service.NewStorageService(cfg.UploadDir, cfg.UploadMaxSize, signer, cfg.SignedURLTTL, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	notifier := service.NewNotifier()
	defer notifier.Close()

	authService := service.NewAuthService(userRepo, profileRepo, emailService, cfg.SessionDuration, cfg.JWTSecret)
	profileService := service.NewProfileService(profileRepo)
	contentService := service.NewContentService(contentRepo, questionRepo, storage, notifier)
	attemptService := service.NewAttemptService(activityRepo, questionRepo, contentRepo)

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name: "google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
	}

	// Initialize handlers
	limiter := security.NewRateLimiter(20, time.Minute)
	middleware := handlers.NewMiddleware(authService, limiter)
	authHandler := handlers.NewAuthHandler(authService, profileService, oauthProviders, cfg.OAuthRedirectBaseURL, cfg.AppBaseURL)
	contentHandler := handlers.NewContentHandler(contentService)
	attemptHandler := handlers.NewAttemptHandler(attemptService)
	uploadHandler := handlers.NewUploadHandler(contentService, storage, cfg.UploadMaxSize)
	profileHandler := handlers.NewProfileHandler(profileService)
	eventsHandler := handlers.NewEventsHandler(notifier)

	// Setup routes
	mux := http.NewServeMux()

	// Auth routes
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))
	mux.HandleFunc("POST /api/auth/password-reset/request", middleware.RateLimit(authHandler.RequestPasswordReset))
	mux.HandleFunc("POST /api/auth/password-reset/confirm", middleware.RateLimit(authHandler.ResetPassword))
	mux.HandleFunc("GET /auth/{provider}/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/{provider}/callback", authHandler.OAuthCallback)

	// Practice content routes
	mux.HandleFunc("GET /api/content", middleware.RequireAuth(contentHandler.List))
	mux.HandleFunc("POST /api/content", middleware.RequireAuth(contentHandler.Create))
	mux.HandleFunc("GET /api/content/{id}", middleware.RequireAuth(contentHandler.Get))
	mux.HandleFunc("GET /api/documents/{id}", middleware.RequireAuth(contentHandler.GetDocument))

	// Attempt routes
	mux.HandleFunc("POST /api/attempts", middleware.RequireAuth(attemptHandler.Start))
	mux.HandleFunc("POST /api/attempts/{id}/submit", middleware.RequireAuth(attemptHandler.Submit))
	mux.HandleFunc("GET /api/attempts/{id}", middleware.RequireAuth(attemptHandler.Results))
	mux.HandleFunc("GET /api/activity", middleware.RequireAuth(attemptHandler.Recent))
	mux.HandleFunc("GET /api/stats", middleware.RequireAuth(attemptHandler.Stats))

	// Profile routes
	mux.HandleFunc("GET /api/profile", middleware.RequireAuth(profileHandler.Get))
	mux.HandleFunc("PUT /api/profile", middleware.RequireAuth(profileHandler.Update))

	// Upload and file routes
	mux.HandleFunc("POST /api/uploads/documents", middleware.RequireAuth(uploadHandler.UploadDocument))
	mux.HandleFunc("POST /api/uploads/images", middleware.RequireAuth(uploadHandler.UploadImage))
	mux.HandleFunc("GET /files/{name}", uploadHandler.ServeFile)

	// Realtime events
	mux.HandleFunc("GET /api/events", middleware.RequireAuth(eventsHandler.Stream))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Dropping subscribers first lets open event streams finish
	notifier.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}
	}
}
