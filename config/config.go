package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Server     ServerConfig     `env:", prefix=SERVER_"`
	Database   DatabaseConfig   `env:", prefix=DB_"`
	Session    SessionConfig    `env:", prefix=SESSION_"`
	Cloudinary CloudinaryConfig `env:", prefix=CLOUDINARY_"`
}

type ServerConfig struct {
	Port         string        `env:"PORT, default=8080"`
	Env          string        `env:"ENV, default=development"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT, default=10s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT, default=10s"`
	RateLimit    int           `env:"RATE_LIMIT, default=100"`
}

type DatabaseConfig struct {
	DSN             string        `env:"DSN, default=revu:revu@tcp(localhost:3306)/revu?charset=utf8mb4&parseTime=True&loc=Local"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS, default=10"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS, default=100"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME, default=1h"`
}

type SessionConfig struct {
	// TTL is fixed from issuance; sessions do not slide.
	TTL        time.Duration `env:"TTL, default=168h"`
	CookieName string        `env:"COOKIE_NAME, default=revu_session"`
	// PruneSpec is a cron expression for clearing expired session rows.
	PruneSpec string `env:"PRUNE_SPEC, default=@hourly"`
}

type CloudinaryConfig struct {
	CloudName string `env:"CLOUD_NAME"`
	APIKey    string `env:"API_KEY"`
	APISecret string `env:"API_SECRET"`
}

func (c CloudinaryConfig) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Validate rejects values the server cannot start with; the rate limiter in
// particular derives a token interval from RateLimit and cannot take zero.
func (c *Config) Validate() error {
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("SERVER_RATE_LIMIT must be positive, got %d", c.Server.RateLimit)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	return nil
}

func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
