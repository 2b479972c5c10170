package config

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every runtime setting, read from the environment.
type Config struct {
	Port      string `env:"SERVER_PORT, default=8080"`
	Env       string `env:"APP_ENV, default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	// Timezone is where "today" is evaluated for consultation dates.
	Timezone string `env:"APP_TIMEZONE, default=UTC"`

	// AdminEnforce puts the admin listing/status routes behind an is_admin check.
	AdminEnforce bool `env:"ADMIN_ENFORCE, default=false"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=*"`

	DB    DBConfig
	JWT   JWTConfig
	Mail  MailConfig
	Admin AdminSeedConfig
}

// DBConfig holds database connection parameters
type DBConfig struct {
	URL           string        `env:"DATABASE_URL, default=postgres://localhost:5432/pet_constitution?sslmode=disable"`
	MaxConns      int32         `env:"DB_MAX_CONNS, default=10"`
	MaxRetries    int           `env:"DB_CONNECT_RETRIES, default=5"`
	RetryInterval time.Duration `env:"DB_RETRY_INTERVAL, default=5s"`
}

type JWTConfig struct {
	Secret          string `env:"JWT_SECRET_KEY, required"`
	ExpirationHours int64  `env:"JWT_EXPIRATION_HOURS, default=168"`
}

type MailConfig struct {
	Host     string `env:"MAIL_HOST, default=smtp.gmail.com"`
	Port     int    `env:"MAIL_PORT, default=587"`
	Username string `env:"MAIL_USERNAME"`
	Password string `env:"MAIL_PASSWORD"`
	From     string `env:"MAIL_FROM, default=no-reply@onsol-vet.com"`

	// BreakerEnabled fails sends fast after repeated transport errors.
	BreakerEnabled bool          `env:"MAIL_BREAKER_ENABLED, default=false"`
	BreakerTimeout time.Duration `env:"MAIL_BREAKER_TIMEOUT, default=30s"`
}

// AdminSeedConfig is only read by cmd/create-admin.
type AdminSeedConfig struct {
	Email    string `env:"ADMIN_EMAIL, default=admin@onsol.com"`
	Password string `env:"ADMIN_PASSWORD"`
	Name     string `env:"ADMIN_NAME, default=Administrator"`
}

// SeedConfig is the subset cmd/create-admin needs. It does not require a
// JWT secret.
type SeedConfig struct {
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=true"`

	DB    DBConfig
	Admin AdminSeedConfig
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := process(ctx, &cfg, lookuper); err != nil {
		return nil, err
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadSeed reads the admin seeding settings.
func LoadSeed(ctx context.Context) (*SeedConfig, error) {
	return loadSeed(ctx, envconfig.OsLookuper())
}

func loadSeed(ctx context.Context, lookuper envconfig.Lookuper) (*SeedConfig, error) {
	var cfg SeedConfig
	if err := process(ctx, &cfg, lookuper); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func process(ctx context.Context, target any, lookuper envconfig.Lookuper) error {
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   target,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// JWTExpiration returns the token lifetime.
func (c *Config) JWTExpiration() time.Duration {
	return time.Duration(c.JWT.ExpirationHours) * time.Hour
}
