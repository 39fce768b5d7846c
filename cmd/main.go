package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JDR69/DeporteDubss/config"
	"github.com/JDR69/DeporteDubss/db"
	"github.com/JDR69/DeporteDubss/handlers"
	"github.com/JDR69/DeporteDubss/league"
	"github.com/JDR69/DeporteDubss/middleware"
	"github.com/JDR69/DeporteDubss/repositories"
	api "github.com/JDR69/DeporteDubss/routes"
	"github.com/JDR69/DeporteDubss/seed"
	"github.com/JDR69/DeporteDubss/services"
	"github.com/JDR69/DeporteDubss/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

// How often championship statuses are reconciled against their dates.
const schedulerInterval = 30 * time.Second

func main() {
	seedFlag := flag.Bool("seed", false, "populate the database with demo data and exit")
	flag.Parse()

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
		}
	}()
	logger.Info("database connection established")

	if *seedFlag {
		if err := seed.Run(context.Background(), dbConn, logger); err != nil {
			logger.Error("seeding failed", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("seeding complete")
		return
	}

	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, logo uploads disabled")
	}

	wsHub := league.NewHub()
	go wsHub.Run()
	logger.Info("websocket hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	sportRepo := repositories.NewPostgresSportRepository(dbConn)
	venueRepo := repositories.NewPostgresVenueRepository(dbConn)
	championshipRepo := repositories.NewPostgresChampionshipRepository(dbConn)
	matchDayRepo := repositories.NewPostgresMatchDayRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	resultRepo := repositories.NewPostgresResultRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)
	incidentRepo := repositories.NewPostgresIncidentRepository(dbConn)
	auditRepo := repositories.NewPostgresAuditRepository(dbConn)

	authService := services.NewAuthService(userRepo, auditRepo)
	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo, userRepo, uploader)
	sportService := services.NewSportService(sportRepo)
	venueService := services.NewVenueService(venueRepo)
	championshipService := services.NewChampionshipService(
		dbConn, championshipRepo, matchDayRepo, standingRepo, userRepo, sportRepo, uploader)
	fixtureService := services.NewFixtureService(
		dbConn, championshipRepo, matchDayRepo, matchRepo, resultRepo, venueRepo, teamRepo, wsHub, logger)
	standingsService := services.NewStandingsService(
		dbConn, standingRepo, matchRepo, matchDayRepo, resultRepo, auditRepo, wsHub, logger)
	ingestionService := services.NewIngestionService(teamRepo, matchRepo, standingsService, logger)
	incidentService := services.NewIncidentService(incidentRepo, matchRepo)
	reportService := services.NewReportService(dbConn, auditRepo)
	logger.Info("services initialized")

	// Championship statuses follow their configured dates without operator
	// intervention.
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()

		for {
			if updated, err := championshipService.SyncStatusesByDate(context.Background(), time.Now()); err != nil {
				logger.Error("status scheduler run failed", slog.Any("error", err))
			} else if updated > 0 {
				logger.Info("championship statuses advanced", slog.Int("updated", updated))
			}
			<-ticker.C
		}
	}()

	auth := middleware.NewAuth(cfg.JWTSecretKey, cfg.TokenTTL)

	router := chi.NewRouter()
	api.SetupRoutes(router, auth, api.Handlers{
		Auth:         handlers.NewAuthHandler(authService, auth),
		User:         handlers.NewUserHandler(userService),
		Team:         handlers.NewTeamHandler(teamService),
		Sport:        handlers.NewSportHandler(sportService),
		Venue:        handlers.NewVenueHandler(venueService),
		Championship: handlers.NewChampionshipHandler(championshipService),
		Fixture:      handlers.NewFixtureHandler(fixtureService),
		Result:       handlers.NewResultHandler(standingsService),
		Incident:     handlers.NewIncidentHandler(incidentService),
		Ingestion:    handlers.NewIngestionHandler(ingestionService),
		Report:       handlers.NewReportHandler(reportService),
		WebSocket:    handlers.NewWebSocketHandler(wsHub, logger),
	})
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

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
