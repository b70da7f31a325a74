package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	authcache "notehive/internal/auth/adapters/cache"
	authpg "notehive/internal/auth/adapters/postgres"
	authservices "notehive/internal/auth/adapters/services"
	authapp "notehive/internal/auth/app"
	"notehive/internal/config"
	"notehive/internal/db"
	"notehive/internal/httpapi"
	"notehive/internal/metrics"
	notespg "notehive/internal/notes/adapters/postgres"
	notesapp "notehive/internal/notes/app"
	"notehive/pkg/logger"
	"notehive/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "NOTEHIVE_LOGGER_MODE"
	EnvLoggerLevel = "NOTEHIVE_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDatabase         = "failed to initialize database"
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
	LogServiceStarted      = "notehive service started"
	LogServiceShutdownDone = "notehive service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing cache"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStartingMetrics     = "starting metrics server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogStoppingMetrics     = "stopping metrics server"
	LogClosingDatabase     = "closing database connection"
	LogClosingRedis        = "closing Redis connection"
)

const migrationsDir = "migrations"

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
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, &cfg.Postgres, migrationsDir)
		if err != nil {
			log.Error(ctx, ErrInitDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitCache)
		profileCache, err := authcache.NewRedisCache(ctx, cfg.Redis.ToClientConfig(), cfg.Redis.GetCacheTTL())
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		pool := database.Pool()
		userRepo := authpg.NewUserRepository(pool)
		tokenRepo := authpg.NewTokenRepository(pool)
		noteRepo := notespg.NewRepositoryFactory(pool).NoteRepository()

		passwordService := authservices.NewBcrypt(cfg.JWT.BCryptCost)
		tokenService := authservices.NewJWT(cfg.JWT.SecretKey, cfg.JWT.GetAccessTokenTTL(), cfg.JWT.GetRefreshTokenTTL())

		authUseCase := authapp.NewAuthUseCase(userRepo, tokenRepo, passwordService, tokenService)
		userUseCase := authapp.NewUserUseCase(userRepo, profileCache, cfg.Redis.GetCacheTTL())
		noteUseCase := notesapp.NewNoteUseCase(noteRepo)

		log.Info(ctx, LogInitHTTPServer)
		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.GetReadTimeout(),
			WriteTimeout: cfg.HTTP.GetWriteTimeout(),
		})

		httpapi.SetupRouter(app, authUseCase, userUseCase, noteUseCase, tokenService)

		var metricsServer *metrics.Server
		if cfg.Metrics.Enabled {
			log.Info(ctx, LogStartingMetrics, zap.String("address", cfg.Metrics.GetAddress()))
			metricsServer = metrics.NewServer(cfg.Metrics.GetAddress())
			metricsServer.Start(ctx)
		}

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return app.Shutdown()
			},
			// Остановка сервера метрик.
			func(ctx context.Context) error {
				if metricsServer == nil {
					return nil
				}
				log.Info(ctx, LogStoppingMetrics)
				return metricsServer.Stop(ctx)
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return profileCache.Close()
			},
			// Закрытие соединения с базой данных.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDatabase)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
