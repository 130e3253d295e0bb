package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordletracker/internal/cache"
	"wordletracker/internal/config"
	"wordletracker/internal/database"
	"wordletracker/internal/handlers"
	"wordletracker/internal/repository"
	"wordletracker/internal/security"
	"wordletracker/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
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
	streakRepo := repository.NewStreakRepository(db)
	resultRepo := repository.NewResultRepository(db, userRepo)
	sessionRepo := repository.NewSessionRepository(db)

	// Initialize cache and services
	statsCache := cache.NewStatsCache(cfg.StatsCacheTTL)
	defer statsCache.Stop()

	statsService := service.NewStatsService(streakRepo, resultRepo, cfg.WeekendOffsets)
	importService := service.NewImportService(streakRepo, resultRepo, statsCache)
	authService, err := service.NewAuthService(sessionRepo, cfg.AdminPasswordHash, cfg.AdminPassword, cfg.SessionDuration)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}
	digestService, err := service.NewDigestService(statsService, cfg.AWSRegion, cfg.DigestFromEmail, cfg.DigestFromName, cfg.DigestRecipients)
	if err != nil {
		log.Fatalf("Failed to initialize digest service: %v", err)
	}

	// Initialize handlers and middleware
	loginLimiter := security.NewRateLimiter(5, time.Minute)
	middleware := handlers.NewMiddleware(authService, loginLimiter)
	statsHandler := handlers.NewStatsHandler(statsService, statsCache, cfg.ShareTokenSecret)
	adminHandler := handlers.NewAdminHandler(authService, importService, digestService, cfg.ShareTokenSecret, cfg.ShareTokenTTL)

	mux := http.NewServeMux()

	// Public read-only routes
	mux.HandleFunc("GET /api/stats/all-time", statsHandler.GetAllTimeStats)
	mux.HandleFunc("GET /api/stats/last-week", statsHandler.GetLastWeekStats)
	mux.HandleFunc("GET /api/rankings", statsHandler.GetRankings)
	mux.HandleFunc("GET /api/plot-data", statsHandler.GetPlotData)
	mux.HandleFunc("GET /api/facts", statsHandler.GetFacts)
	mux.HandleFunc("GET /api/days", statsHandler.ListDays)
	mux.HandleFunc("GET /api/days/{day}", statsHandler.GetDayDetail)
	mux.HandleFunc("GET /api/overview", statsHandler.GetOverview)
	mux.HandleFunc("GET /api/export", statsHandler.Export)
	mux.HandleFunc("GET /share/{token}", statsHandler.GetShared)

	// Admin routes
	mux.HandleFunc("POST /admin/login", middleware.RateLimit(adminHandler.Login))
	mux.HandleFunc("POST /admin/logout", adminHandler.Logout)
	mux.HandleFunc("POST /admin/import", middleware.RequireAdmin(adminHandler.Import))
	mux.HandleFunc("DELETE /admin/days/{day}", middleware.RequireAdmin(adminHandler.DeleteDay))
	mux.HandleFunc("POST /admin/reset", middleware.RequireAdmin(adminHandler.Reset))
	mux.HandleFunc("POST /admin/share", middleware.RequireAdmin(adminHandler.CreateShareLink))
	mux.HandleFunc("POST /admin/digest", middleware.RequireAdmin(adminHandler.SendDigest))

	// Wrap with logging middleware
	handler := middleware.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}

// cleanupExpiredSessions periodically removes expired admin sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		authService.CleanupExpiredSessions()
	}
}
