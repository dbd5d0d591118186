package main

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/skylens/airmarket/internal/alerting"
	"github.com/skylens/airmarket/internal/cache"
	"github.com/skylens/airmarket/internal/handler"
	"github.com/skylens/airmarket/internal/mockdata"
	"github.com/skylens/airmarket/internal/providers"
	"github.com/skylens/airmarket/internal/ratelimit"
	"github.com/skylens/airmarket/internal/service"
)

type Config struct {
	Port         string
	LogLevel     string
	CacheEnabled bool
	RedisHost    string
	RedisPort    string
	CacheTTL     time.Duration

	ProviderTimeout time.Duration

	AmadeusAPIKey          string
	AmadeusAPISecret       string
	RapidAPIKey            string
	AviationStackAccessKey string

	AlertWebhookURL string
	AlertThreshold  string
}

func main() {
	cfg := loadConfig()
	log := newLogger(cfg.LogLevel)

	providerList := initializeProviders(cfg, log)

	limiter := ratelimit.NewFromConfig(ratelimit.DefaultConfig(), map[string]ratelimit.Config{
		"amadeus":       {RequestsPerSecond: 10, BurstSize: 20},
		"rapidapi":      {RequestsPerSecond: 5, BurstSize: 10},
		"aviationstack": {RequestsPerSecond: 1, BurstSize: 5},
	})

	store := initializeCache(cfg, log)
	defer store.Close()

	channels := []alerting.Channel{alerting.NewLogChannel(log)}
	if cfg.AlertWebhookURL != "" {
		channels = append(channels, alerting.NewWebhookChannel(cfg.AlertWebhookURL, nil))
		log.Info().Msg("alert webhook channel enabled")
	}
	emitter := alerting.NewEmitter(log, alerting.EmitterConfig{
		Channels:  channels,
		Threshold: alerting.ParseSeverity(cfg.AlertThreshold),
	})
	defer emitter.Flush()

	svc := service.New(service.Config{
		Providers:       providerList,
		Cache:           store,
		Mock:            mockdata.NewGenerator(),
		Alerts:          emitter,
		Limiter:         limiter,
		Log:             log,
		ProviderTimeout: cfg.ProviderTimeout,
		CacheTTL:        cfg.CacheTTL,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))

	handler.New(svc).Register(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	log.Info().
		Str("port", cfg.Port).
		Int("providers", len(providerList)).
		Msg("starting airmarket server")

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(os.Stdout).Level(parsed).With().
		Timestamp().
		Str("service", "airmarket").
		Logger()
}

func loadConfig() Config {
	return Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CacheEnabled:    getEnvBool("CACHE_ENABLED", true),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		CacheTTL:        getEnvDuration("CACHE_TTL", time.Hour),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 10*time.Second),

		AmadeusAPIKey:          os.Getenv("AMADEUS_API_KEY"),
		AmadeusAPISecret:       os.Getenv("AMADEUS_API_SECRET"),
		RapidAPIKey:            os.Getenv("RAPIDAPI_KEY"),
		AviationStackAccessKey: os.Getenv("AVIATIONSTACK_ACCESS_KEY"),

		AlertWebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
		AlertThreshold:  getEnv("ALERT_THRESHOLD", "warning"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

// initializeProviders builds the priority-ordered provider list. Vendors
// without credentials are skipped; an empty list means every request is
// served from the mock generator.
func initializeProviders(cfg Config, log zerolog.Logger) []providers.Provider {
	var providerList []providers.Provider

	if cfg.AmadeusAPIKey != "" && cfg.AmadeusAPISecret != "" {
		providerList = append(providerList, providers.NewAmadeusProvider(providers.AmadeusConfig{
			APIKey:    cfg.AmadeusAPIKey,
			APISecret: cfg.AmadeusAPISecret,
		}))
	}

	if cfg.RapidAPIKey != "" {
		providerList = append(providerList, providers.NewRapidAPIProvider(providers.RapidAPIConfig{
			APIKey: cfg.RapidAPIKey,
		}))
	}

	if cfg.AviationStackAccessKey != "" {
		providerList = append(providerList, providers.NewAviationStackProvider(providers.AviationStackConfig{
			AccessKey: cfg.AviationStackAccessKey,
		}))
	}

	for _, p := range providerList {
		log.Info().Str("provider", p.Name()).Msg("provider configured")
	}
	if len(providerList) == 0 {
		log.Warn().Msg("no providers configured, all requests will use mock data")
	}
	return providerList
}

func initializeCache(cfg Config, log zerolog.Logger) cache.Store {
	if !cfg.CacheEnabled {
		log.Info().Msg("redis disabled, using in-memory cache")
		return cache.NewMemoryStore()
	}

	store, err := cache.NewRedisStore(cache.RedisConfig{
		Host: cfg.RedisHost,
		Port: cfg.RedisPort,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, using in-memory cache")
		return cache.NewMemoryStore()
	}

	log.Info().
		Str("host", cfg.RedisHost+":"+cfg.RedisPort).
		Dur("ttl", cfg.CacheTTL).
		Msg("redis cache enabled")
	return store
}
