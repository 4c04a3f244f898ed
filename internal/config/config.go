package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"campaign-manager/internal/config/configs"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
	StorageMemory   = "memory"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library.
// Nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. See the individual types in the configs package for
// defaults. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). It is
	// attached to every log record.
	Env string `env:"ENV" envDefault:"prod"`

	// StorageDriver selects the campaign store backend.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// SeedDemo inserts a handful of demo campaigns on startup.
	SeedDemo bool `env:"SEED_DEMO" envDefault:"false"`

	HTTP      configs.HTTP      `envPrefix:"HTTP_"`
	Log       configs.Logger    `envPrefix:"LOG_"`
	Psql      configs.Postgres  `envPrefix:"PSQL_"`
	Mongo     configs.Mongo     `envPrefix:"MONGO_"`
	Kafka     configs.Kafka     `envPrefix:"KAFKA_"`
	Auth      configs.Auth      `envPrefix:"AUTH_"`
	Budget    configs.Budget    `envPrefix:"BUDGET_"`
	Telemetry configs.Telemetry `envPrefix:"OTEL_"`
}

// Load reads configuration from environment variables into a Config. A
// .env file in the working directory is read first when present; variables
// already set in the environment take precedence over it.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
