package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/squares-backend/internal/config"
	"github.com/rocketscienceinc/squares-backend/internal/notify"
	"github.com/rocketscienceinc/squares-backend/internal/repository"
	"github.com/rocketscienceinc/squares-backend/internal/repository/storage"
	"github.com/rocketscienceinc/squares-backend/internal/service"
	"github.com/rocketscienceinc/squares-backend/internal/usecase"
	"github.com/rocketscienceinc/squares-backend/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	cellRepo := repository.NewCellRepository(redisStorage)
	configRepo := repository.NewGameConfigRepository(redisStorage)
	scoresRepo := repository.NewScoresRepository(sqliteStorage.Connection)
	userRepo := repository.NewUserRepository(sqliteStorage.Connection)

	var lockInNotifier notify.Notifier
	if conf.NotifyWebhookURL != "" {
		lockInNotifier = notify.NewWebhookNotifier(logger, conf.NotifyWebhookURL)
	} else {
		lockInNotifier = notify.NewNoopNotifier()
	}

	reservationService := service.NewReservationService(cellRepo)
	lockInService := service.NewLockInService(logger, cellRepo, configRepo, lockInNotifier)
	settlementService := service.NewSettlementService(cellRepo, configRepo, scoresRepo)
	authService := service.NewAuthService(conf.JWTSecretKey)
	userService := service.NewUserService(userRepo)

	gridUseCase := usecase.NewGridUseCase(reservationService, lockInService, settlementService)
	userUseCase := usecase.NewUserUseCase(userService)

	server := rest.New(logger, conf, gridUseCase, authService, userUseCase)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = server.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}
