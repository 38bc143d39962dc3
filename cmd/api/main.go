// @title           Lunch Voting API
// @version         1.0
// @description     Restaurant lunch menus and one vote per user per day, frozen after a daily cutoff.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/lunchvote/voting-api/internal/api"
	"github.com/lunchvote/voting-api/internal/core/ports"
	"github.com/lunchvote/voting-api/internal/core/service"
	"github.com/lunchvote/voting-api/internal/infrastructure/cache"
	"github.com/lunchvote/voting-api/internal/infrastructure/config"
	"github.com/lunchvote/voting-api/internal/infrastructure/db/mongo"
	redisdb "github.com/lunchvote/voting-api/internal/infrastructure/db/redis"
	sqldb "github.com/lunchvote/voting-api/internal/infrastructure/db/sql"
	"github.com/lunchvote/voting-api/internal/infrastructure/http/handlers"
	"github.com/lunchvote/voting-api/internal/infrastructure/messaging/kafka"
	"github.com/lunchvote/voting-api/internal/infrastructure/queue"
	"github.com/lunchvote/voting-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// repositories bundles one storage backend's implementations.
type repositories struct {
	users       ports.UserRepository
	restaurants ports.RestaurantRepository
	dishes      ports.DishRepository
	votes       ports.VoteRepository
	readiness   handlers.Dependency
	close       func(context.Context) error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx, zerolog.New(os.Stderr).With().Timestamp().Logger())
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "voting-api",
	})

	cutoff, _ := cfg.Cutoff()
	loc, _ := cfg.Location()

	repos, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("storage unavailable")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repos.close(closeCtx); err != nil {
			log.Error().Err(err).Msg("closing storage")
		}
	}()

	readiness := []handlers.Dependency{repos.readiness}

	users, err := openUserCache(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("user cache unavailable")
	}
	defer func() {
		if err := users.close(); err != nil {
			log.Error().Err(err).Msg("closing user cache")
		}
	}()
	if users.readiness != nil {
		readiness = append(readiness, *users.readiness)
	}

	publisher := openPublisher(cfg, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("closing vote event publisher")
		}
	}()

	dispatcher := queue.NewDispatcher(cfg.DispatchWorkers, publisher, log.With().Str("component", "dispatcher").Logger())
	dispatcher.Start(ctx)

	votes := service.NewVoteService(repos.votes, repos.restaurants, repos.users, dispatcher, service.VotingConfig{
		Cutoff:   cutoff,
		Location: loc,
	}, log)

	e := api.NewRouter(api.Dependencies{
		Logger:      log,
		JWTSecret:   cfg.JWTSecret,
		Auth:        service.NewAuthService(repos.users, cfg.JWTSecret, cfg.JWTTTL, log),
		Users:       service.NewUserService(repos.users, users.cache, log),
		Restaurants: service.NewRestaurantService(repos.restaurants, repos.dishes, log),
		Dishes:      service.NewDishService(repos.dishes, repos.restaurants, log),
		Votes:       votes,
		Readiness:   readiness,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(e)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("storage", cfg.StorageDriver).
			Str("cache", cfg.CacheBackend).
			Str("cutoff", cutoff.String()).
			Str("timezone", loc.String()).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	if cfg.StorageDriver == config.StorageMongo {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &repositories{
			users:       mongo.NewUserRepository(db),
			restaurants: mongo.NewRestaurantRepository(db),
			dishes:      mongo.NewDishRepository(db),
			votes:       mongo.NewVoteRepository(db),
			readiness:   handlers.Dependency{Name: "mongo", Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) }},
			close:       client.Disconnect,
		}, nil
	}

	db, err := sqldb.Open(sqldb.Config{
		Driver: cfg.StorageDriver,
		DSN:    cfg.SQL.DSN,
		Log:    log,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &repositories{
		users:       sqldb.NewUserRepository(db),
		restaurants: sqldb.NewRestaurantRepository(db),
		dishes:      sqldb.NewDishRepository(db),
		votes:       sqldb.NewVoteRepository(db),
		readiness:   handlers.Dependency{Name: cfg.StorageDriver, Ping: sqlDB.PingContext},
		close:       func(context.Context) error { return sqldb.Close(db) },
	}, nil
}

// userListCache is the selected listing cache with its lifecycle hooks.
type userListCache struct {
	cache     ports.UserListCache
	readiness *handlers.Dependency
	close     func() error
}

func openUserCache(ctx context.Context, cfg *config.Config) (*userListCache, error) {
	if cfg.CacheBackend != config.CacheRedis {
		return &userListCache{cache: cache.NewMemory(), close: func() error { return nil }}, nil
	}
	client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return nil, err
	}
	return &userListCache{
		cache:     redisdb.NewUserListCache(client, 0),
		readiness: &handlers.Dependency{Name: "redis", Ping: func(ctx context.Context) error { return client.Ping(ctx).Err() }},
		close:     client.Close,
	}, nil
}

type closingPublisher interface {
	ports.VoteEventPublisher
	Close() error
}

func openPublisher(cfg *config.Config, log zerolog.Logger) closingPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		log.Info().Msg("KAFKA_BROKERS not set, vote events are discarded")
		return kafka.NoopPublisher{}
	}
	return kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.VoteTopic)
}
