package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/flighttracker/config"
	"github.com/Domenick1991/flighttracker/internal/bootstrap"
	"github.com/Domenick1991/flighttracker/internal/cache"
	"github.com/Domenick1991/flighttracker/internal/kafka"
	"github.com/Domenick1991/flighttracker/internal/logger"
	"github.com/Domenick1991/flighttracker/internal/repository"
	"github.com/Domenick1991/flighttracker/internal/service/tracker"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		slog.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.ForEnv(os.Stdout, cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg.Database)
	if err != nil {
		log.Error("open database", slog.String("driver", cfg.Database.Driver), slog.Any("error", err))
		os.Exit(1)
	}
	defer closeRepo()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Error("ensure schema", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.Database.SeedPath != "" {
		ds, err := repository.LoadDataset(cfg.Database.SeedPath)
		if err != nil {
			log.Error("load seed dataset", slog.Any("error", err))
			os.Exit(1)
		}
		if err := repo.Seed(ctx, ds); err != nil {
			log.Error("seed database", slog.Any("error", err))
			os.Exit(1)
		}
		log.Info("database seeded", slog.String("path", cfg.Database.SeedPath))
	}

	var listings tracker.Cache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Cache.ListingsTTL())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn("redis unreachable, listings are served uncached until it recovers", slog.Any("error", err))
		}
		listings = redisCache
	}

	opts := []bootstrap.Option{bootstrap.WithLogger(log)}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.Warn("kafka unreachable", slog.Any("error", err))
		}
		opts = append(opts, bootstrap.WithAuditPublisher(kafka.NewAuditPublisher(producer, cfg.Kafka.AuditTopic)))
	}

	svc := tracker.NewTrackerService(repo, listings)

	if err := bootstrap.Run(ctx, cfg, svc, opts...); err != nil {
		log.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}

func openRepository(ctx context.Context, cfg config.DatabaseConfig) (repository.TrackerRepository, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		repo, err := repository.NewSQLiteTrackerRepository(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	default:
		pool, err := pgxpool.New(ctx, cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPGTrackerRepository(pool), pool.Close, nil
	}
}
