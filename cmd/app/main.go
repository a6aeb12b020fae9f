package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/John-Akins/jago-backend/internal/biller"
	"github.com/John-Akins/jago-backend/internal/config"
	"github.com/John-Akins/jago-backend/internal/db"
	"github.com/John-Akins/jago-backend/internal/kyc"
	"github.com/John-Akins/jago-backend/internal/logger"
	"github.com/John-Akins/jago-backend/internal/notification"
	"github.com/John-Akins/jago-backend/internal/queue"
	"github.com/John-Akins/jago-backend/internal/server"
	"github.com/John-Akins/jago-backend/internal/user"
	"github.com/John-Akins/jago-backend/internal/wallet"
	"github.com/John-Akins/jago-backend/internal/worker"
)

// @title Jago API
// @version 1.0
// @description Digital wallet and bill payment backend.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("starting jago backend")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", "error", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	defer database.Close()
	logger.Info("database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}
	logger.Info("migrations completed")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	notifier := notification.New(redisClient, notification.Options{
		SendDelay:     cfg.NotifyLatency,
		ReversalDelay: cfg.ReversalNotifyLatency,
	})
	defer notifier.Close()

	jobQueue := queue.New()
	gateway := biller.New(cfg.BillerLatency)

	walletRepo := wallet.NewRepository(database)
	walletService := wallet.NewService(walletRepo, jobQueue, notifier)

	userRepo := user.NewRepository(database)
	userService := user.NewService(userRepo, walletRepo, cfg.JWTSecret)

	kycRepo := kyc.NewRepository(database)
	kycService := kyc.NewService(kycRepo, userRepo)

	paymentWorker := worker.New(jobQueue, gateway, notifier, worker.Options{
		PollInterval: cfg.WorkerPollInterval,
	})
	paymentWorker.RegisterResultSink(walletService)
	paymentWorker.Start()

	srv := server.New(cfg, server.Services{
		User:         userService,
		Wallet:       walletService,
		Kyc:          kycService,
		Notification: notifier,
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("received signal", "signal", sig.String())
	case err := <-serverErrChan:
		logger.Error("server error", "error", err)
	}

	logger.Info("shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}

	paymentWorker.Stop()

	logger.Info("server stopped")
}
