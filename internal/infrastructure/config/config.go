package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers selectable via STORE_DRIVER.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreMongo  = "mongo"
)

type Config struct {
	Port      string        `env:"PORT,       default=4000"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"JWT_TTL,    default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type StoreConfig struct {
	// Driver selects the persistence medium: memory, file, or mongo.
	Driver string `env:"STORE_DRIVER, default=memory"`
	// File is the snapshot path used by the file driver.
	File string `env:"DATA_FILE, default=data/database.json"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=agenda_vista"`
}

type RedisConfig struct {
	// Addr empty disables the task-list cache entirely.
	Addr string        `env:"REDIS_ADDR"`
	DB   int           `env:"REDIS_DB,  default=0"`
	TTL  time.Duration `env:"CACHE_TTL, default=5m"`
}

// Production reports whether the service runs in production mode. Error
// responses include diagnostic detail only when this is false.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.Store.Driver {
	case StoreMemory, StoreFile, StoreMongo:
	default:
		return nil, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	return &cfg, nil
}
