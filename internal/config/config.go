package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// CasdoorConfig identifies the external identity directory accounts can
// be imported from. Empty endpoint disables the directory integration.
type CasdoorConfig struct {
	Endpoint     string `envconfig:"CASDOOR_ENDPOINT"`
	ClientID     string `envconfig:"CASDOOR_CLIENT_ID"`
	ClientSecret string `envconfig:"CASDOOR_CLIENT_SECRET"`
	Cert         string `envconfig:"CASDOOR_CERT"`
	Organization string `envconfig:"CASDOOR_ORGANIZATION"`
	Application  string `envconfig:"CASDOOR_APPLICATION"`
}

// KafkaConfig configures the event publisher. No brokers means events are
// recorded in memory only.
type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_TOPIC" default:"accounts.events"`
}

// Config is the full service configuration, loaded from the environment
// with an optional .env file on top.
type Config struct {
	Environment string     `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    slog.Level `envconfig:"LOG_LEVEL" default:"INFO"`

	DatabaseDSN string `envconfig:"DATABASE_DSN" required:"true"`
	RedisURL    string `envconfig:"REDIS_URL"`

	Kafka   KafkaConfig
	Casdoor CasdoorConfig
}

// LoadConfig reads configuration from a .env file (when present) and the
// process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
