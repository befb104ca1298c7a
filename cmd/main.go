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

	"github.com/Olzhas-T/contest-system/codes"
	"github.com/Olzhas-T/contest-system/config"
	"github.com/Olzhas-T/contest-system/db"
	"github.com/Olzhas-T/contest-system/formation"
	"github.com/Olzhas-T/contest-system/handlers"
	"github.com/Olzhas-T/contest-system/repositories"
	api "github.com/Olzhas-T/contest-system/routes"
	"github.com/Olzhas-T/contest-system/services"
	"github.com/Olzhas-T/contest-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

const reminderInterval = 12 * time.Hour

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

	// Загрузчик файлов (Cloudflare R2). Без конфигурации логотипы отключены.
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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
	} else {
		logger.Warn("R2 storage is not configured, team logos disabled")
	}

	// WebSocket Hub
	wsHub := formation.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Репозитории
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	competitionRepo := repositories.NewPostgresCompetitionRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	participantRepo := repositories.NewPostgresParticipantRepository(dbConn)
	siteRepo := repositories.NewPostgresSiteRepository(dbConn)
	notificationRepo := repositories.NewPostgresNotificationRepository(dbConn)
	formationStore := repositories.NewPostgresFormationStore(dbConn, teamRepo, participantRepo, notificationRepo)
	logger.Info("repositories initialized")

	// Сервисы
	var emailService *services.EmailService
	if cfg.SMTPHost != "" {
		emailService = services.NewEmailService(cfg)
	} else {
		logger.Warn("SMTP is not configured, email notifications disabled")
	}

	authService := services.NewAuthService(userRepo)
	roleService := services.NewRoleService(userRepo, siteRepo)
	notificationSink := services.NewNotificationService(notificationRepo, userRepo, emailService, wsHub, logger)

	lifecycleService := services.NewTeamLifecycleService(
		teamRepo,
		participantRepo,
		userRepo,
		competitionRepo,
		siteRepo,
		notificationRepo,
		codes.NewCodec(),
		notificationSink,
		roleService,
		uploader,
		cfg.StrictSeats,
	)

	formationService := services.NewTeamFormationService(
		competitionRepo,
		formationStore,
		formation.NewGreedyMerger(),
		roleService,
		wsHub,
		logger,
	)

	reminderService := services.NewReminderService(competitionRepo, teamRepo, notificationSink, logger)
	logger.Info("services initialized")

	// Планировщик напоминаний тренерам о неразобранных заявках
	go func() {
		ticker := time.NewTicker(reminderInterval)
		defer ticker.Stop()
		logger.Info("approval reminder scheduler started", slog.Duration("interval", reminderInterval))

		for range ticker.C {
			if err := reminderService.RunOnce(context.Background()); err != nil {
				logger.Error("reminder scheduler run failed", slog.Any("error", err))
			}
		}
	}()

	// HTTP-обработчики
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	teamHandler := handlers.NewTeamHandler(lifecycleService)
	adminHandler := handlers.NewAdminHandler(lifecycleService)
	formationHandler := handlers.NewFormationHandler(formationService)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Маршрутизатор
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		[]byte(cfg.JWTSecretKey),
		authHandler,
		teamHandler,
		adminHandler,
		formationHandler,
		notificationHandler,
		webSocketHandler,
	)
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
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
