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
	_ "github.com/lib/pq"
	"github.com/sarzhanov/fishing-live/config"
	"github.com/sarzhanov/fishing-live/db"
	"github.com/sarzhanov/fishing-live/handlers"
	"github.com/sarzhanov/fishing-live/live"
	"github.com/sarzhanov/fishing-live/repositories"
	api "github.com/sarzhanov/fishing-live/routes"
	"github.com/sarzhanov/fishing-live/services"
	"github.com/sarzhanov/fishing-live/storage"
	"github.com/sarzhanov/fishing-live/store"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
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

	// Инициализация загрузчика файлов (Cloudflare R2)
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

	// Инициализация WebSocket Hub
	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	competitorRepo := repositories.NewPostgresCompetitorRepository(dbConn)
	hourlyRepo := repositories.NewPostgresHourlyEntryRepository(dbConn)
	bigCatchRepo := repositories.NewPostgresBigCatchRepository(dbConn)
	settingsRepo := repositories.NewPostgresSettingsRepository(dbConn)
	logger.Info("Repositories initialized")

	// Поток изменений и хранилище снимков
	feed := live.NewFeed()
	dataStore := store.New(competitorRepo, hourlyRepo, bigCatchRepo, settingsRepo, feed, logger)

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey)
	standingsService := services.NewStandingsService(wsHub, logger)
	competitorService := services.NewCompetitorService(competitorRepo, cloudflareUploader, dataStore)
	entryService := services.NewEntryService(hourlyRepo, bigCatchRepo, competitorRepo, settingsRepo, dataStore)
	settingsService := services.NewSettingsService(settingsRepo, dataStore)
	logger.Info("Services initialized")

	// Подписка на поток до первичной загрузки, чтобы стартовые снимки
	// не потерялись.
	standingsService.Subscribe(feed)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	if err := dataStore.LoadAll(loadCtx); err != nil {
		cancelLoad()
		logger.Error("failed to load initial state", slog.Any("error", err))
		os.Exit(1)
	}
	cancelLoad()
	logger.Info("initial state loaded, standings computed")

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService)
	competitorHandler := handlers.NewCompetitorHandler(competitorService)
	entryHandler := handlers.NewEntryHandler(entryService)
	standingsHandler := handlers.NewStandingsHandler(standingsService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		competitorHandler,
		entryHandler,
		standingsHandler,
		settingsHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

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

	// Ожидание сигнала завершения
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
		logger.Info("server shut down gracefully")
	}
}
