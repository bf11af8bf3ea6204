package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-dispatch/internal/config"
	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
	"service-dispatch/internal/ports/dispatchtx"
	"service-dispatch/internal/repository"
	"service-dispatch/internal/repository/memory"
)

// dispatchStore is what both storage backends offer to the services.
type dispatchStore interface {
	dispatchtx.Runner
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, f domain.OrderFilter) ([]domain.Order, error)
	ListActivity(ctx context.Context, orderID string) ([]domain.ActivityLogEntry, error)
	AppendActivity(ctx context.Context, e domain.ActivityLogEntry) error
	AppendNotification(ctx context.Context, n domain.NotificationEntry) error
	ListNotifications(ctx context.Context, f domain.NotificationFilter) ([]domain.NotificationEntry, error)
	MarkNotificationRead(ctx context.Context, id string) (bool, error)
}

var (
	_ dispatchStore = (*memory.Store)(nil)
	_ dispatchStore = (*repository.DispatchRepo)(nil)
)

var migrate = repository.Migrate

type storageOut struct {
	dig.Out

	Store  dispatchStore
	Runner dispatchtx.Runner
	Pool   *pgxpool.Pool
}

func registerStorage(container *dig.Container, dbConnect dbConnectFunc) error {
	provider := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (storageOut, error) {
		return openStorage(ctx, cfg, logger, dbConnect)
	}
	return provideAll(container, provider)
}

func openStorage(ctx context.Context, cfg *config.Config, logger logx.Logger, dbConnect dbConnectFunc) (storageOut, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Info("using in-memory storage")
		store := memory.New()
		return storageOut{Store: store, Runner: store}, nil
	}

	pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
	if err != nil {
		return storageOut{}, err
	}
	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return storageOut{}, fmt.Errorf("migrate: %w", err)
	}
	repo := repository.NewDispatchRepo(pool)
	return storageOut{Store: repo, Runner: repo, Pool: pool}, nil
}
