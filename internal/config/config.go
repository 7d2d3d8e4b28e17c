package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

type Config struct {
	Port           string
	Environment    string
	AllowedOrigins []string
	FrontendURL    string

	RedisURL      string
	RedisPassword string
	StateTTL      time.Duration

	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	HistoryRetentionDays int

	SessionSecret string
	SessionTTL    time.Duration

	BotMoveDelay    time.Duration
	WinResetDelay   time.Duration
	SessionIdle     time.Duration
	CleanupInterval time.Duration

	LogLevel string

	SQLitePath string
	SSHAddr    string
	SSHHostKey string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")
	environment := GetEnv("ENVIRONMENT", "development")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:8080")
	allowedOriginsStr := GetEnv("ALLOWED_ORIGINS", "")

	// Build allowed origins list (Frontend URL + Localhost + CSV values)
	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // Local development
	}
	if allowedOriginsStr != "" {
		extras := strings.Split(allowedOriginsStr, ",")
		for _, origin := range extras {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Database Config
	dbURL := GetEnv("DATABASE_URL", GetEnv("DATABASE_URI", ""))
	if dbURL != "" {
		if u, err := url.Parse(dbURL); err == nil {
			q := u.Query()
			if q.Get("sslmode") == "" && (u.Hostname() == "localhost" || u.Hostname() == "127.0.0.1") {
				q.Set("sslmode", "disable")
				u.RawQuery = q.Encode()
				dbURL = u.String()
			}
		}
	}

	AppConfig = &Config{
		Port:           port,
		Environment:    environment,
		AllowedOrigins: allowedOrigins,
		FrontendURL:    frontendURL,

		RedisURL:      GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		StateTTL:      time.Duration(GetEnvAsInt("STATE_TTL_HOURS", 24*30)) * time.Hour,

		DatabaseURL:          dbURL,
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		HistoryRetentionDays: GetEnvAsInt("HISTORY_RETENTION_DAYS", 90),

		// Security
		SessionSecret: GetEnv("SESSION_SECRET", "your-secret-key-change-this-in-production"),
		SessionTTL:    time.Duration(GetEnvAsInt("SESSION_TTL_HOURS", 24*30)) * time.Hour,

		BotMoveDelay:    time.Duration(GetEnvAsInt("BOT_MOVE_DELAY_MS", 600)) * time.Millisecond,
		WinResetDelay:   time.Duration(GetEnvAsInt("WIN_RESET_DELAY_MS", 2000)) * time.Millisecond,
		SessionIdle:     time.Duration(GetEnvAsInt("SESSION_IDLE_MINUTES", 60)) * time.Minute,
		CleanupInterval: time.Duration(GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 60)) * time.Minute,

		LogLevel: GetEnv("LOG_LEVEL", "info"),

		SQLitePath: GetEnv("SQLITE_PATH", "~/.vier-gewinnt/state.db"),
		SSHAddr:    GetEnv("SSH_ADDR", ""),
		SSHHostKey: GetEnv("SSH_HOST_KEY", ""),
	}

	return AppConfig
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn("invalid integer in environment, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}
