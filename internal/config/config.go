package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings, parsed from the environment (with an
// optional .env file for local development).
type Config struct {
	HTTPPort string `env:"PORT" envDefault:"8080"`

	// Empty RedisAddr selects the in-memory event store and leaderboard
	// (local development without a backend).
	RedisAddr string `env:"REDIS_ADDR"`

	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB  string `env:"MONGO_DB" envDefault:"wordguess"`

	// Consumer-side poller. Disabled in deployments where the relay
	// endpoints are not reachable from this process.
	PollerEnabled bool   `env:"POLLER_ENABLED" envDefault:"true"`
	PollerBaseURL string `env:"POLLER_BASE_URL"`

	// Outbound alerts webhook; empty disables the sink.
	AlertsWebhookURL string `env:"MAGIC_ALERTS_WEBHOOK_URL"`

	// Round parameters, all in seconds.
	RoundDuration        int `env:"ROUND_DURATION" envDefault:"180"`
	RevealInterval       int `env:"REVEAL_INTERVAL" envDefault:"15"`
	DoublePointsDuration int `env:"DOUBLE_POINTS_DURATION" envDefault:"30"`

	HostUsername string `env:"HOST_USERNAME" envDefault:"admin"`
	HostPassword string `env:"HOST_PASSWORD" envDefault:"password123"`
	JWTSecret    string `env:"JWT_SECRET" envDefault:"super-secret-key-change-in-production"`
}

// Load reads the optional .env file and parses the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.PollerBaseURL == "" {
		cfg.PollerBaseURL = "http://localhost:" + cfg.HTTPPort
	}
	return &cfg, nil
}
