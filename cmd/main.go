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

	"github.com/Dosada05/tournament-platform/brackets"
	"github.com/Dosada05/tournament-platform/config"
	"github.com/Dosada05/tournament-platform/handlers"
	"github.com/Dosada05/tournament-platform/repositories"
	api "github.com/Dosada05/tournament-platform/routes"
	"github.com/Dosada05/tournament-platform/services"
	"github.com/Dosada05/tournament-platform/storage"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage_backend", cfg.StorageBackend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newDocumentStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize document store", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("document store initialized", slog.String("backend", cfg.StorageBackend))

	// Инициализация репозиториев
	tournamentRepo := repositories.NewTournamentRepository(store, logger)
	teamRepo := repositories.NewTeamRepository(store, logger)
	matchRepo := repositories.NewMatchRepository(store, logger)
	for _, c := range []interface{ Init(context.Context) error }{tournamentRepo, teamRepo, matchRepo} {
		if err := c.Init(ctx); err != nil {
			logger.Error("failed to initialize data", slog.Any("error", err))
			os.Exit(1)
		}
	}
	logger.Info("repositories initialized")

	// Инициализация WebSocket Hub
	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	location, _ := cfg.Location()
	clock := services.SystemClock()

	// Инициализация сервисов
	tournamentService := services.NewTournamentService(tournamentRepo)
	teamService := services.NewTeamService(teamRepo, tournamentRepo, matchRepo, logger)
	registrationService := services.NewRegistrationService(teamRepo, tournamentRepo, logger)
	matchService := services.NewMatchService(matchRepo, teamRepo, tournamentRepo, wsHub, clock, logger)
	exportService := services.NewExportService(matchRepo, teamRepo, clock, location)
	logger.Info("services initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(router, api.Handlers{
		Tournament:   handlers.NewTournamentHandler(tournamentService, matchService),
		Team:         handlers.NewTeamHandler(teamService),
		Registration: handlers.NewRegistrationHandler(registrationService),
		Match:        handlers.NewMatchHandler(matchService),
		Export:       handlers.NewExportHandler(exportService),
		Health:       handlers.NewHealthHandler(clock),
		WebSocket:    handlers.NewWebSocketHandler(wsHub, logger),
	}, cfg.CORSAllowedOrigins, logger)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
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

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
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

func newDocumentStore(ctx context.Context, cfg *config.Config) (storage.DocumentStore, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendR2:
		return storage.NewCloudflareR2Store(ctx, storage.CloudflareR2StoreConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			KeyPrefix:       cfg.R2KeyPrefix,
		})
	default:
		return storage.NewFileStore(afero.NewOsFs(), cfg.DataDir)
	}
}
