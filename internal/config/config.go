package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	LLM      LLMBootstrapConfig
	Events   EventsConfig
	Cache    CacheConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	AutoMigrate        bool
}

type DatabaseConfig struct {
	Connection string
}

type LLMBootstrapConfig struct {
	ConfigPath string // JSON file holding provider selection and settings
	ProbeTTL   time.Duration
}

type EventsConfig struct {
	Bus     string // "memory", "nats" or "none"
	NatsURL string
}

type CacheConfig struct {
	Backend  string // "memory" or "redis"
	RedisURL string
}

type TracingConfig struct {
	Enabled bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "5000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AutoMigrate:        getEnvAsBool("AUTO_MIGRATE", true),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", "host=localhost user=postgres password=postgres dbname=notes port=5432 sslmode=disable"),
		},
		LLM: LLMBootstrapConfig{
			ConfigPath: getEnv("LLM_CONFIG_PATH", "config.json"),
			ProbeTTL:   getEnvAsDuration("LLM_PROBE_TTL", 30*time.Second),
		},
		Events: EventsConfig{
			Bus:     getEnv("EVENT_BUS", "memory"),
			NatsURL: getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Cache: CacheConfig{
			Backend:  getEnv("CACHE_BACKEND", "memory"),
			RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Tracing: TracingConfig{
			Enabled: getEnvAsBool("OTEL_ENABLED", false),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
