package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string        `env:"PORT,         default=8080"`
	Env         string        `env:"ENV,          default=development"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	JWTSecret   string        `env:"JWT_SECRET,   required"`
	SessionTTL  time.Duration `env:"SESSION_TTL,  default=24h"`
	FrontendURL string        `env:"FRONTEND_URL, default=http://localhost:5173"`
	// CORSOrigins defaults to FrontendURL when unset.
	CORSOrigins  []string `env:"CORS_ORIGINS"`
	CookieSecure bool     `env:"COOKIE_SECURE, default=true"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
	Seed  SeedConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=realestate"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// SMTPConfig is optional; an empty Host routes mail to the log.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT,     default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"MAIL_FROM,     default=no-reply@localhost"`
}

// SeedConfig bootstraps the first Super Admin when no admin exists.
type SeedConfig struct {
	Email    string `env:"SEED_ADMIN_EMAIL"`
	Username string `env:"SEED_ADMIN_USERNAME, default=superadmin"`
	Password string `env:"SEED_ADMIN_PASSWORD"`
}

// IsDevelopment reports whether internal error details may be exposed.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{cfg.FrontendURL}
	}
	return &cfg, nil
}
