package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pet-health-record/internal/platform/logger"

	"github.com/joho/godotenv"
)

// Store identifica el backend de persistencia elegido.
type Store string

const (
	StorePostgres Store = "postgres"
	StoreMongo    Store = "mongo"
	StoreSQLite   Store = "sqlite"
	StoreMemory   Store = "memory"
)

type Config struct {
	AppName string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Persistencia; se usa el primero definido (postgres → mongo → sqlite → memoria)
	DatabaseDSN string
	MongoURI    string
	MongoDB     string
	SQLitePath  string

	// Logging
	LogLevel  logger.Level
	LogFormat logger.Format

	// Odin; sin BaseURL/APIKey se usa el header de debug
	OdinBaseURL string
	OdinAPIKey  string
	OdinTimeout time.Duration
}

// Load lee .env si existe y después las variables de entorno.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		AppName: getEnv("APP_NAME", "pet-health-record"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 5)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 10)) * time.Second,

		DatabaseDSN: getEnv("DB_DSN", ""),
		MongoURI:    getEnv("MONGODB_URI", ""),
		MongoDB:     getEnv("MONGODB_DB", "pet_health_record"),
		SQLitePath:  getEnv("SQLITE_PATH", ""),

		LogLevel:  logger.ParseLevel(getEnv("LOG_LEVEL", "info")),
		LogFormat: logger.ParseFormat(getEnv("LOG_FORMAT", "text")),

		OdinBaseURL: getEnv("ODIN_BASE_URL", ""),
		OdinAPIKey:  getEnv("ODIN_API_KEY", ""),
		OdinTimeout: time.Duration(getEnvAsInt("ODIN_TIMEOUT", 5)) * time.Second,
	}, nil
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func (c *Config) Store() Store {
	switch {
	case c.DatabaseDSN != "":
		return StorePostgres
	case c.MongoURI != "":
		return StoreMongo
	case c.SQLitePath != "":
		return StoreSQLite
	default:
		return StoreMemory
	}
}

func (c *Config) OdinEnabled() bool {
	return c.OdinBaseURL != "" && c.OdinAPIKey != ""
}

func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{Level: c.LogLevel, Format: c.LogFormat, App: c.AppName}
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil && value > 0 {
		return value
	}
	return defaultValue
}
