package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/evyataryagoni/postcode-checker/internal/config"
	"github.com/evyataryagoni/postcode-checker/internal/handler"
	"github.com/evyataryagoni/postcode-checker/internal/logger"
	"github.com/evyataryagoni/postcode-checker/internal/lookup"
	"github.com/evyataryagoni/postcode-checker/internal/metrics"
	"github.com/evyataryagoni/postcode-checker/internal/router"
	v1 "github.com/evyataryagoni/postcode-checker/internal/router/v1"
	"github.com/evyataryagoni/postcode-checker/internal/service"
	"github.com/evyataryagoni/postcode-checker/internal/settings"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal
const shutdownTimeout = 10 * time.Second

// @title           Postcode Checker API
// @version         1.0
// @description     Decides whether a UK postcode is served, from an exact allow-list and LSOA prefixes resolved through postcodes.io

// @contact.name   Evyatar Yagoni
// @contact.email  evyatar@example.com

// @license.name  MIT
// @license.url   http://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /
func main() {
	// Load configuration
	appConfig := config.Load()

	// Initialize components
	appLogger := setupLogger(appConfig)
	metricsCollector := setupMetrics(appLogger)

	settingsStore := setupSettingsStore(appConfig, appLogger)
	appSettings := settings.New(settingsStore, appConfig.SettingsStore, metricsCollector)
	defer appSettings.Close()

	lookupClient := lookup.NewHTTPClient(appConfig.LookupBaseURL, appConfig.LookupTimeout, metricsCollector)

	// Build application layers
	postcodeService := service.NewPostcodeService(appSettings, lookupClient, metricsCollector, appLogger)

	appRouter := router.SetupRouter(
		handler.NewPostcodeHandler(postcodeService, appLogger),
		handler.NewSettingsHandler(appSettings, appLogger),
		v1.AdminCredentials{User: appConfig.AdminUser, Password: appConfig.AdminPassword},
		metricsCollector,
		appLogger,
	)

	// Start server
	if err := startServer(appConfig, appRouter, appLogger); err != nil {
		appLogger.Error().Err(err).Msg("Server failed")
		appSettings.Close()
		os.Exit(1)
	}
}

// setupLogger initializes the structured logger
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:  appConfig.LogLevel,
		Pretty: appConfig.LogPretty,
	})

	appLogger.Info().Msg("Starting Postcode Checker Server...")
	appLogger.Info().
		Str("port", appConfig.Port).
		Str("lookup_base_url", appConfig.LookupBaseURL).
		Dur("lookup_timeout", appConfig.LookupTimeout).
		Str("settings_store", appConfig.SettingsStore).
		Str("settings_cache", appConfig.SettingsCache).
		Bool("admin_auth", appConfig.AdminAuthEnabled()).
		Msg("Configuration loaded")

	return appLogger
}

// setupSettingsStore initializes the settings store based on configuration
// Supports memory, CSV, Redis and MySQL backends, with an optional Redis cache in front of MySQL
func setupSettingsStore(appConfig *config.Config, log *logger.Logger) settings.Store {
	ctx := context.Background()

	switch appConfig.SettingsStore {
	case "memory":
		log.Warn().Msg("Memory settings store initialized empty, checks fail until both settings are set")
		return settings.NewMemoryStore()

	case "csv":
		csvStore, err := settings.NewCSVStore(appConfig.SettingsCSVPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", appConfig.SettingsCSVPath).Msg("Failed to initialize CSV settings store")
		}
		log.Info().Str("path", appConfig.SettingsCSVPath).Msg("CSV settings store initialized")
		return csvStore

	case "redis":
		redisStore, err := settings.NewRedisStore(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis settings store")
		}
		log.Info().Str("addr", appConfig.RedisAddr).Msg("Redis settings store initialized")

		// Auto-load settings if Redis is empty
		seedRedisIfEmpty(ctx, redisStore, appConfig.SettingsCSVPath, log)
		return redisStore

	case "mysql":
		mysqlStore, err := settings.NewMySQLStore(appConfig.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize MySQL settings store")
		}
		log.Info().Msg("MySQL settings store initialized")

		if appConfig.SettingsCache != "redis" {
			return mysqlStore
		}

		cache, err := settings.NewRedisStore(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
		if err != nil {
			// The cache is optional, serve straight from MySQL
			log.Warn().Err(err).Msg("Redis settings cache unavailable, continuing without it")
			return mysqlStore
		}
		log.Info().Dur("ttl", appConfig.SettingsCacheTTL).Msg("Redis settings cache enabled")
		return settings.NewCachedStore(mysqlStore, cache, appConfig.SettingsCacheTTL, log)

	default:
		log.Fatal().Str("type", appConfig.SettingsStore).Msg("Unknown settings store type")
	}

	return nil
}

// seedRedisIfEmpty loads settings from CSV when neither setting exists in Redis
func seedRedisIfEmpty(ctx context.Context, redisStore *settings.RedisStore, csvPath string, log *logger.Logger) {
	isEmpty, err := redisStore.IsEmpty(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to check if Redis is empty")
		return
	}
	if !isEmpty {
		return
	}

	csvStore, err := settings.NewCSVStore(csvPath)
	if err != nil {
		log.Warn().Err(err).Str("path", csvPath).Msg("Redis is empty and seed file is unavailable")
		return
	}

	count, err := settings.Seed(ctx, redisStore, csvStore)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to seed Redis settings")
		return
	}
	log.Info().Int("settings", count).Str("path", csvPath).Msg("Redis was empty, settings seeded from CSV")
}

// setupMetrics initializes the Prometheus metrics collector
func setupMetrics(log *logger.Logger) *metrics.Metrics {
	metricsCollector := metrics.New()
	log.Info().Msg("Metrics initialized")
	return metricsCollector
}

// startServer serves until SIGINT/SIGTERM, then drains in-flight requests
func startServer(appConfig *config.Config, appRouter http.Handler, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           appRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("port", appConfig.Port).
			Str("check_endpoint", "http://localhost:"+appConfig.Port+"/v1/postcodes/check").
			Str("settings_endpoint", "http://localhost:"+appConfig.Port+"/v1/settings").
			Str("health_check", "http://localhost:"+appConfig.Port+"/health").
			Str("metrics", "http://localhost:"+appConfig.Port+"/metrics").
			Str("swagger", "http://localhost:"+appConfig.Port+"/swagger/index.html").
			Msg("Server is running")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}
