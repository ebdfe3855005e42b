// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Logging    LoggingConfig
	CORS       CORSConfig
	Redis      RedisConfig
	Gemini     GeminiConfig
	Speech     SpeechConfig
	YouTube    YouTubeConfig
	RateLimit  RateLimitConfig
	Enrichment EnrichmentConfig
	Scheduler  SchedulerConfig
	Tracing    TracingConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// RedisConfig holds Redis connection settings used by the task queue and enrichment locks
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// GeminiConfig holds generative model settings
type GeminiConfig struct {
	APIKey           string
	Model            string
	TranslationModel string
}

// SpeechConfig holds text-to-speech settings
type SpeechConfig struct {
	APIKey        string
	MaxChunkChars int
}

// YouTubeConfig holds video search settings. An empty APIKey disables video search.
type YouTubeConfig struct {
	APIKey string
}

// RateLimitConfig holds per-IP request limits
type RateLimitConfig struct {
	APIRequests        int
	GenerationRequests int
	Window             time.Duration
}

// EnrichmentConfig holds lesson enrichment settings
type EnrichmentConfig struct {
	LockTTL time.Duration
}

// SchedulerConfig holds background job schedules
type SchedulerConfig struct {
	OrphanAuditCron string
}

// TracingConfig holds OpenTelemetry settings
type TracingConfig struct {
	Enabled     bool
	SampleRatio float64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional, real environment variables take precedence
	_ = godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	if cfg.Server.Port, err = intEnv("SERVER_PORT", 5000); err != nil {
		return nil, err
	}

	// Logging configuration
	cfg.Logging.Level = stringEnv("LOG_LEVEL", "info")

	// CORS configuration
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"), stringEnv("CLIENT_URL", "http://localhost:5173"))

	// Redis configuration
	cfg.Redis.Host = stringEnv("REDIS_HOST", "localhost")
	if cfg.Redis.Port, err = intEnv("REDIS_PORT", 6379); err != nil {
		return nil, err
	}
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if cfg.Redis.DB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}

	// Generative model configuration
	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	cfg.Gemini.Model = stringEnv("GEMINI_MODEL", "gemini-2.5-flash-lite")
	cfg.Gemini.TranslationModel = stringEnv("GEMINI_TRANSLATION_MODEL", "gemini-2.5-flash")

	// Speech configuration
	cfg.Speech.APIKey = stringEnv("GOOGLE_TTS_API_KEY", cfg.Gemini.APIKey)
	if cfg.Speech.MaxChunkChars, err = intEnv("TTS_MAX_CHUNK_CHARS", 200); err != nil {
		return nil, err
	}

	cfg.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")

	// Rate limit configuration
	if cfg.RateLimit.APIRequests, err = intEnv("RATE_LIMIT_API_REQUESTS", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimit.GenerationRequests, err = intEnv("RATE_LIMIT_GENERATION_REQUESTS", 15); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Window, err = durationEnv("RATE_LIMIT_WINDOW", 15*time.Minute); err != nil {
		return nil, err
	}

	if cfg.Enrichment.LockTTL, err = durationEnv("ENRICHMENT_LOCK_TTL", 2*time.Minute); err != nil {
		return nil, err
	}

	cfg.Scheduler.OrphanAuditCron = stringEnv("ORPHAN_AUDIT_CRON", "0 3 * * *")

	// Tracing configuration
	if cfg.Tracing.Enabled, err = boolEnv("TRACING_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.Tracing.SampleRatio, err = floatEnv("TRACING_SAMPLE_RATIO", 1.0); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// RedisAddr returns the Redis host:port address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// parseOrigins splits a comma-separated origin list, falling back to the client URL
func parseOrigins(raw, fallback string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = append(origins, fallback)
	}
	return origins
}

func stringEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func floatEnv(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
