package config

import (
	"os"
	"strconv"
	"time"

	"prism/internal/cache"
	"prism/internal/database"
	"prism/internal/messaging"
	"prism/internal/search"
)

// Config holds the application configuration.
type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string

	// SessionSecret signs the session cookie. MediaRoot is where venue
	// images land.
	SessionSecret string
	MediaRoot     string

	RequestTimeout time.Duration

	Database database.Config
	NATS     messaging.Config
	Search   search.Config
	Cache    cache.Config
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		SessionSecret: getEnv("SESSION_SECRET", "prism-dev-secret"),
		MediaRoot:     getEnv("MEDIA_ROOT", "./media"),

		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "prism"),
			Password:           getEnv("DB_PASSWORD", "prism123"),
			DBName:             getEnv("DB_NAME", "prism"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			Enabled:   getEnv("NATS_ENABLED", "false") == "true",
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "prism"),
			ClientID:  getEnv("NATS_CLIENT_ID", "prism-api"),
		},

		Search: search.Config{
			Enabled:    getEnv("ELASTICSEARCH_ENABLED", "false") == "true",
			URL:        getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
			Username:   getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:   getEnv("ELASTICSEARCH_PASSWORD", ""),
			Index:      getEnv("ELASTICSEARCH_INDEX", "prism-catalog"),
			MaxRetries: getEnvInt("ELASTICSEARCH_MAX_RETRIES", 3),
		},

		Cache: cache.Config{
			Enabled:  getEnv("REDIS_ENABLED", "false") == "true",
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			TTL:      time.Duration(getEnvInt("REDIS_TTL_SEC", 60)) * time.Second,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
