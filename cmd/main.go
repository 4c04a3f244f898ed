package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"campaign-manager/db/migrations"
	"campaign-manager/internal/adapter/auth"
	"campaign-manager/internal/adapter/generator"
	httpadapter "campaign-manager/internal/adapter/http"
	"campaign-manager/internal/adapter/kafka"
	"campaign-manager/internal/adapter/memory"
	mongoadapter "campaign-manager/internal/adapter/mongo"
	"campaign-manager/internal/adapter/policy"
	"campaign-manager/internal/adapter/postgres"
	"campaign-manager/internal/adapter/usecase"
	"campaign-manager/internal/config"
	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
	"campaign-manager/internal/db"
	"campaign-manager/internal/telemetry"
)

// main loads configuration, opens the configured campaign store, wires the
// use case behind the HTTP adapter and serves until SIGINT or SIGTERM, then
// shuts the server down gracefully.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(cfg.Log.NewHandler(os.Stdout)).With(slog.String("env", cfg.Env))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err = run(ctx, cfg, logger); err != nil {
		logger.Error("fatal error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("telemetry shutdown error", slog.Any("error", err))
		}
	}()

	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	identity, err := auth.NewJWTProvider(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
		return err
	}

	opts := []usecase.Option{
		usecase.WithLogger(logger),
		usecase.WithLedger(domain.Ledger{OverrunTolerance: cfg.Budget.OverrunTolerance}),
		usecase.WithGenerator(generator.NewTemplate()),
	}
	if cfg.Kafka.Enabled() {
		publisher, err := kafka.NewPublisher(cfg.Kafka, logger)
		if err != nil {
			return err
		}
		defer publisher.Close()
		opts = append(opts, usecase.WithPublisher(publisher))
	}
	svc := usecase.NewCampaignUseCase(repo, policy.NewRoles(), opts...)

	if cfg.SeedDemo {
		if err = db.Seed(ctx, svc); err != nil {
			return fmt.Errorf("seed demo campaigns: %w", err)
		}
		logger.Info("demo campaigns seeded", slog.String("organization", db.DemoOrganization))
	}

	handler := httpadapter.NewHandler(svc, identity, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			slog.Int("port", int(cfg.HTTP.Port)),
			slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
	return nil
}

// openRepository builds the campaign store selected by STORAGE_DRIVER and
// returns a function releasing its resources.
func openRepository(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.CampaignRepository, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if cfg.Psql.RunMigrations {
			from, err := db.Migrate(cfg.Psql.Addr.String())
			if err != nil {
				return nil, nil, fmt.Errorf("migrate: %w", err)
			}
			logger.Info("schema migrated",
				slog.Uint64("from", uint64(from)),
				slog.Int("to", migrations.Version))
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection: %w", err)
		}
		return postgres.NewCampaignRepository(pool), pool.Close, nil

	case config.StorageMongo:
		client, err := db.NewMongoClient(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("mongo connection: %w", err)
		}
		repo := mongoadapter.NewCampaignRepository(client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection))
		if err = repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil

	case config.StorageMemory:
		logger.Warn("using in-memory campaign store; data is lost on exit")
		return memory.NewCampaignRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
