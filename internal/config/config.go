package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const productionEnv = "production"

// Common holds the settings shared by every binary: environment, logging and
// the database. It needs no secrets.
type Common struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	MySQLDSN string `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/ideas?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	ResetDB  bool   `env:"RESET_DB" envDefault:"false"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Common) IsProduction() bool {
	return c.Env == productionEnv
}

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Common

	ServerPort       string        `env:"PORT" envDefault:"8800"`
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	RedisPass        string        `env:"REDIS_PASSWORD"`
	JWTSecret        string        `env:"JWT_SECRET,required,notEmpty"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1m"`
	CORSOrigins      []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	AuthRateLimit    string        `env:"AUTH_RATE_LIMIT" envDefault:"20-M"`
	RefreshRateLimit string        `env:"REFRESH_RATE_LIMIT" envDefault:"300-M"`
	SwaggerHost      string        `env:"SWAGGER_HOST"`
}

// Load builds Config from environment. A missing JWT_SECRET is an error.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.AccessTokenTTL <= 0 {
		return nil, fmt.Errorf("parse config: ACCESS_TOKEN_TTL must be positive, got %s", cfg.AccessTokenTTL)
	}
	return cfg, nil
}

// LoadCommon builds only the shared settings, for tools that never sign tokens.
func LoadCommon() (*Common, error) {
	cfg := &Common{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SigningKey returns the symmetric key used to sign tokens.
func (c *Config) SigningKey() []byte {
	return []byte(c.JWTSecret)
}
