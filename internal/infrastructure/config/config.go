package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8000"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret      string `env:"JWT_SECRET, required"`
	TokenTTLMinute int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=1440"`

	Mongo    MongoConfig
	Airtable AirtableConfig
	Redis    RedisConfig
}

type MongoConfig struct {
	User     string `env:"MONGODB_USER,     required"`
	Password string `env:"MONGODB_PASSWORD, required"`
	Cluster  string `env:"MONGODB_CLUSTER,  required"`
	Database string `env:"MONGODB_DB,       default=familydash"`
}

type AirtableConfig struct {
	APIKey  string `env:"AIRTABLE_API_KEY, required"`
	BaseID  string `env:"AIRTABLE_BASE_ID, required"`
	BaseURL string `env:"AIRTABLE_BASE_URL, default=https://api.airtable.com/v0"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// TokenTTL returns the configured session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinute) * time.Minute
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required settings abort startup rather than surfacing on the
// first request.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
