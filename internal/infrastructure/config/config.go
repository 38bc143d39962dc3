package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

const (
	StorageMongo    = "mongo"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	JWTSecret       string        `env:"JWT_SECRET,       required"`
	JWTTTL          time.Duration `env:"JWT_TTL,          default=24h"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	StorageDriver   string        `env:"STORAGE_DRIVER,   default=mongo"`
	CacheBackend    string        `env:"CACHE_BACKEND,    default=memory"`
	DispatchWorkers int           `env:"DISPATCH_WORKERS, default=4"`
	CORSOrigins     []string      `env:"CORS_ORIGINS,     default=*"`

	Vote  VoteConfig
	Mongo MongoConfig
	SQL   SQLConfig
	Redis RedisConfig
	Kafka KafkaConfig
}

type VoteConfig struct {
	// Cutoff is the HH:MM time of day after which votes are frozen.
	Cutoff   string `env:"VOTE_CUTOFF,   default=11:00"`
	TimeZone string `env:"VOTE_TIMEZONE, default=UTC"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=lunch_voting"`
}

type SQLConfig struct {
	DSN string `env:"SQL_DSN, default=file:lunchvote.db"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type KafkaConfig struct {
	// Brokers is a comma-separated list. Empty disables event publishing.
	Brokers   []string `env:"KAFKA_BROKERS"`
	VoteTopic string   `env:"KAFKA_VOTE_TOPIC, default=lunch.votes"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Cutoff parses the configured voting cutoff.
func (c *Config) Cutoff() (domain.Cutoff, error) {
	return domain.ParseCutoff(c.Vote.Cutoff)
}

// Location loads the time zone the voting day is computed in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Vote.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("vote timezone %q: %w", c.Vote.TimeZone, err)
	}
	return loc, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageMongo, StorageSQLite, StoragePostgres:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.CacheBackend {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}
	if _, err := c.Cutoff(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Load reads configuration from the environment. Values from an optional
// .env file in the working directory are applied first without overriding
// variables that are already set.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load for startup code: it logs and panics on failure.
func MustLoad(ctx context.Context, log zerolog.Logger) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	return cfg
}
