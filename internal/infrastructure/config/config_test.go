package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMongo, cfg.StorageDriver)
	assert.Equal(t, CacheMemory, cfg.CacheBackend)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 4, cfg.DispatchWorkers)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.True(t, cfg.IsDevelopment())

	cutoff, err := cfg.Cutoff()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCutoff, cutoff)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":     "secret",
		"ENV":            "production",
		"STORAGE_DRIVER": "postgres",
		"SQL_DSN":        "postgres://app@db/lunch",
		"CACHE_BACKEND":  "redis",
		"VOTE_CUTOFF":    "10:30",
		"VOTE_TIMEZONE":  "Europe/Moscow",
		"KAFKA_BROKERS":  "k1:9092,k2:9092",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "postgres://app@db/lunch", cfg.SQL.DSN)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)

	cutoff, err := cfg.Cutoff()
	require.NoError(t, err)
	assert.Equal(t, domain.Cutoff{Hour: 10, Minute: 30}, cutoff)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":  {},
		"unknown storage": {"JWT_SECRET": "s", "STORAGE_DRIVER": "cassandra"},
		"unknown cache":   {"JWT_SECRET": "s", "CACHE_BACKEND": "memcached"},
		"bad cutoff":      {"JWT_SECRET": "s", "VOTE_CUTOFF": "eleven"},
		"bad timezone":    {"JWT_SECRET": "s", "VOTE_TIMEZONE": "Mars/Olympus"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := load(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}
