package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	App        AppConfig
	Pagination PaginationConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	Admin      AdminConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// AppConfig holds public-facing settings. BaseURL is used to build absolute
// share links (<BaseURL>/s/<token>).
type AppConfig struct {
	BaseURL string
}

// PaginationConfig documents the list-endpoint defaults. Query parameters are
// clamped against these, never passed through raw.
type PaginationConfig struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// AdminConfig configures the bearer tokens guarding moderation endpoints.
// When Secret is empty the /admin routes are not registered.
type AdminConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5001")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("MONGODB_DATABASE", "knowthatperson")
	viper.SetDefault("APP_BASE_URL", "http://localhost:3000")
	viper.SetDefault("PAGINATION_DEFAULT_LIMIT", 20)
	viper.SetDefault("PAGINATION_MAX_LIMIT", 100)
	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	viper.SetDefault("ADMIN_TOKEN_TTL", 60)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      getEnvOrPanic("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		App: AppConfig{
			BaseURL: viper.GetString("APP_BASE_URL"),
		},
		Pagination: PaginationConfig{
			DefaultPage:  1,
			DefaultLimit: viper.GetInt("PAGINATION_DEFAULT_LIMIT"),
			MaxLimit:     viper.GetInt("PAGINATION_MAX_LIMIT"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Admin: AdminConfig{
			Secret:   os.Getenv("ADMIN_JWT_SECRET"),
			TokenTTL: time.Duration(viper.GetInt("ADMIN_TOKEN_TTL")) * time.Minute,
		},
	}

	if cfg.Admin.Secret == "" {
		log.Println("WARNING: ADMIN_JWT_SECRET is not set; moderation endpoints will be disabled")
	}

	return cfg, nil
}

func getEnvOrPanic(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("environment variable %s is required", key)
	}
	return v
}
