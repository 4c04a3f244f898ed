package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"campaign-manager/internal/config/configs"
)

// NewMongoClient connects to MongoDB and pings the primary, retrying with
// exponential backoff up to cfg.MaxRetries extra attempts. The caller must
// disconnect the returned client.
func NewMongoClient(ctx context.Context, cfg configs.Mongo, logger *slog.Logger) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetServerSelectionTimeout(10 * time.Second).
		SetConnectTimeout(10 * time.Second).
		SetRetryWrites(true).
		SetRetryReads(true)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = 16 * time.Second

	return backoff.Retry(ctx, func() (*mongo.Client, error) {
		client, err := mongo.Connect(ctx, opts)
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return client, nil
	},
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(cfg.MaxRetries+1),
		backoff.WithNotify(func(err error, wait time.Duration) {
			logger.Warn("mongo connect failed, retrying",
				slog.Duration("wait", wait), slog.Any("error", err))
		}),
	)
}
