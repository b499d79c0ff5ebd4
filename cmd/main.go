package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/S-Matheka/patrons-cup-live-sub000/config"
	"github.com/S-Matheka/patrons-cup-live-sub000/db"
	"github.com/S-Matheka/patrons-cup-live-sub000/handlers"
	"github.com/S-Matheka/patrons-cup-live-sub000/realtime"
	"github.com/S-Matheka/patrons-cup-live-sub000/repositories"
	api "github.com/S-Matheka/patrons-cup-live-sub000/routes"
	"github.com/S-Matheka/patrons-cup-live-sub000/scoring"
	"github.com/S-Matheka/patrons-cup-live-sub000/services"
	"github.com/S-Matheka/patrons-cup-live-sub000/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	cloudflareUploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	wsHub := realtime.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	holeRepo := repositories.NewPostgresHoleRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)
	courseRepo := repositories.NewPostgresCourseRepository(dbConn)
	stablefordRepo := repositories.NewPostgresStablefordRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	teamService := services.NewTeamService(teamRepo, playerRepo, cloudflareUploader)
	playerService := services.NewPlayerService(playerRepo, teamRepo)
	standingsService := services.NewStandingsService(
		teamRepo,
		matchRepo,
		holeRepo,
		standingRepo,
		wsHub,
		logger,
		scoring.IncludeNone,
	)
	matchService := services.NewMatchService(
		dbConn,
		matchRepo,
		holeRepo,
		teamRepo,
		courseRepo,
		standingsService,
		wsHub,
		logger,
	)
	stablefordService := services.NewStablefordService(
		stablefordRepo,
		playerRepo,
		teamRepo,
		courseRepo,
		wsHub,
		logger,
	)
	logger.Info("services initialized")

	// The scheduler promotes matches whose tee time has passed and keeps the
	// cached standings current while play is live.
	go func() {
		ticker := time.NewTicker(cfg.SchedulerInterval)
		defer ticker.Stop()
		logger.Info("scheduler started", slog.Duration("interval", cfg.SchedulerInterval))

		runOnce := func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.SchedulerInterval)
			defer cancel()

			promoted, err := matchService.PromoteDueMatches(ctx, time.Now())
			if err != nil {
				logger.Error("scheduler: failed to promote due matches", slog.Any("error", err))
			} else if promoted > 0 {
				logger.Info("scheduler: promoted due matches", slog.Int("count", promoted))
			}
			if err := standingsService.RefreshAll(ctx); err != nil {
				logger.Error("scheduler: failed to refresh standings", slog.Any("error", err))
			}
		}

		runOnce()
		for range ticker.C {
			runOnce()
		}
	}()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	teamHandler := handlers.NewTeamHandler(teamService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	matchHandler := handlers.NewMatchHandler(matchService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	stablefordHandler := handlers.NewStablefordHandler(stablefordService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authHandler,
		teamHandler,
		playerHandler,
		matchHandler,
		standingsHandler,
		stablefordHandler,
		webSocketHandler,
		cfg.JWTSecretKey,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
