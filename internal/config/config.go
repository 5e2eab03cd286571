package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port          string        `envconfig:"PORT" default:"8080"`
	DatabaseURL   string        `envconfig:"DATABASE_URL" required:"true"`
	RedisURL      string        `envconfig:"REDIS_URL" required:"true"`
	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	TokenDuration time.Duration `envconfig:"TOKEN_DURATION" default:"24h"`

	NotificationSweepInterval time.Duration `envconfig:"NOTIFICATION_SWEEP_INTERVAL" default:"1m"`
	FeedRestartMin            time.Duration `envconfig:"FEED_RESTART_MIN" default:"200ms"`
	FeedRestartMax            time.Duration `envconfig:"FEED_RESTART_MAX" default:"30s"`

	ClientSendBuffer int    `envconfig:"CLIENT_SEND_BUFFER" default:"256"`
	AllowedOrigin    string `envconfig:"ALLOWED_ORIGIN"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadEnvFiles подгружает .env.local или .env, если они есть
func LoadEnvFiles() error {
	if err := godotenv.Load(".env.local"); err != nil {
		return godotenv.Load()
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.ClientSendBuffer <= 0 {
		return nil, fmt.Errorf("CLIENT_SEND_BUFFER must be positive, got %d", cfg.ClientSendBuffer)
	}
	if cfg.NotificationSweepInterval <= 0 {
		return nil, fmt.Errorf("NOTIFICATION_SWEEP_INTERVAL must be positive, got %s", cfg.NotificationSweepInterval)
	}
	return &cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
