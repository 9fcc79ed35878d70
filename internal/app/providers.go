package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	"github.com/cibf/call-postprocessor/internal/config"
	"github.com/cibf/call-postprocessor/internal/repo/mongodb"
)

func newMongoDB(lc fx.Lifecycle, cfg *config.Config) (*mongodb.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := mongodb.NewConnection(ctx, cfg.Database.URI, cfg.Database.Database)
	if err != nil {
		return nil, fmt.Errorf("init mongo client: %w", err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return db.Client.Ping(ctx, nil)
		},
		OnStop: func(ctx context.Context) error {
			return db.Close(ctx)
		},
	})

	return db, nil
}
