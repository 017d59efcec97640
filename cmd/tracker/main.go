package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"exercisetracker/internal/tracker/adapters/cache"
	httpServer "exercisetracker/internal/tracker/adapters/http"
	"exercisetracker/internal/tracker/adapters/memory"
	"exercisetracker/internal/tracker/app"
	"exercisetracker/internal/tracker/config"
	"exercisetracker/internal/tracker/domain/calendar"
	portcache "exercisetracker/internal/tracker/ports/cache"
	"exercisetracker/internal/tracker/resilience"
	"exercisetracker/pkg/logger"
	"exercisetracker/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "TRACKER_LOGGER_MODE"
	EnvLoggerLevel = "TRACKER_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrLoadCalendar         = "failed to load calendar timezone"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "tracker service started"
	LogServiceShutdownDone = "tracker service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitStore           = "initializing user store"
	LogInitCache           = "initializing cache"
	LogCacheDisabled       = "redis cache disabled, using no-op cache"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("timezone", cfg.Calendar.Timezone),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		cal, err := calendar.Load(cfg.Calendar.Timezone)
		if err != nil {
			log.Error(ctx, ErrLoadCalendar, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitStore)
		users := memory.NewUserRepository()

		log.Info(ctx, LogInitCache)
		var logsCache portcache.Cache = cache.NoopCache{}
		if cfg.Redis.Enabled {
			redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				exitCode = 1
				return
			}
			logsCache = cache.NewBreakerCache(redisCache,
				resilience.NewCircuitBreaker("redis-cache", resilience.DefaultCircuitBreakerConfig()))
		} else {
			log.Info(ctx, LogCacheDisabled)
		}

		log.Info(ctx, LogInitServices)
		tracker := app.NewTrackerUseCase(users, logsCache, cal, app.WithCacheTTL(cfg.Redis.DefaultTTL))

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, tracker)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Закрытие соединения с кэшем.
			func(ctx context.Context) error {
				log.Info(ctx, "Closing cache connection")
				return logsCache.Close()
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
