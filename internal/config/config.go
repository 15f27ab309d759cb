package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Assets       AssetsConfig
	Cache        CacheConfig
	Notification NotificationConfig
	Site         SiteConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines the single admin identity and session parameters.
// The service has no user table: login compares against these two values.
type AuthConfig struct {
	AdminEmail      string
	AdminPassword   string
	JWTSecret       string
	SessionTTLHours int
}

// AssetsConfig points at the hosted image service used by the upload proxy.
type AssetsConfig struct {
	UploadURL string
	APIKey    string
	APISecret string
	Folder    string
	MaxBytes  int64
}

// CacheConfig controls the public catalog response cache.
type CacheConfig struct {
	PublicTTLSeconds int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// SiteConfig describes the public site, used for sitemap generation.
type SiteConfig struct {
	BaseURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "catalog-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			AdminEmail:      os.Getenv("ADMIN_EMAIL"),
			AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
			JWTSecret:       getEnv("AUTH_JWT_SECRET", "dev-secret"),
			SessionTTLHours: getEnvAsInt("AUTH_SESSION_TTL_HOURS", 24),
		},
		Assets: AssetsConfig{
			UploadURL: os.Getenv("ASSET_UPLOAD_URL"),
			APIKey:    os.Getenv("ASSET_API_KEY"),
			APISecret: os.Getenv("ASSET_API_SECRET"),
			Folder:    getEnv("ASSET_FOLDER", "catalog"),
			MaxBytes:  int64(getEnvAsInt("ASSET_MAX_BYTES", 10<<20)),
		},
		Cache: CacheConfig{
			PublicTTLSeconds: getEnvAsInt("CACHE_PUBLIC_TTL_SECONDS", 300),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", ""),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		Site: SiteConfig{
			BaseURL: getEnv("SITE_BASE_URL", "http://localhost:3000"),
		},
	}

	if cfg.Auth.AdminEmail == "" || cfg.Auth.AdminPassword == "" {
		return nil, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// SessionTTL returns the token and session validity window.
func (a AuthConfig) SessionTTL() time.Duration {
	if a.SessionTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(a.SessionTTLHours) * time.Hour
}

// PublicTTL returns the public cache entry lifetime.
func (c CacheConfig) PublicTTL() time.Duration {
	if c.PublicTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.PublicTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
