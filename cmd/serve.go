package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"study-planner.com/study-planner/internal/cache"
	config "study-planner.com/study-planner/internal/configs"
	httpapi "study-planner.com/study-planner/internal/http"
	repository "study-planner.com/study-planner/internal/repositories"
	"study-planner.com/study-planner/internal/services"
	"study-planner.com/study-planner/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the study planner HTTP API and the cache refresh pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		log, err := logger.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		log.Info("database ready", zap.String("driver", cfg.DatabaseDriver))

		var taskCache cache.TaskCache = cache.Noop{}
		if cfg.CacheEnabled {
			redisClient, err := config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			taskCache = cache.NewRedisTaskCache(
				redisClient,
				cfg.CacheKeyPrefix,
				time.Duration(cfg.CacheTTLSeconds)*time.Second,
			)
			log.Info("task cache enabled", zap.String("redis", cfg.RedisAddr))
		}

		taskRepo := repository.NewTaskRepository(database)
		settingsRepo := repository.NewSettingsRepository(database)

		refresher := services.NewRefreshService(taskRepo, taskCache, cfg.RefreshWorkers, cfg.RefreshQueueSize, log)
		taskService := services.NewTaskService(taskRepo, taskCache, refresher, log)
		settingsService := services.NewSettingsService(settingsRepo, log)

		e := httpapi.NewEcho(log)
		handler := httpapi.NewHandler(taskService, settingsService)
		httpapi.Register(e, handler, newJWTManager(cfg), cfg.RateLimit)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Info("HTTP server listening", zap.String("addr", cfg.AppURL))
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("server stopped", zap.Error(err))
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Warn("HTTP server shutdown", zap.Error(err))
		}
		refresher.Shutdown(shutdownCtx)

		log.Info("HTTP server and refresh pool shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
