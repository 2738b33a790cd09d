package bootstrap

import (
	"context"
	"fmt"

	"github.com/Domenick1991/sporthub/config"
	"github.com/Domenick1991/sporthub/internal/kv"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OpenStore builds the key-value backend selected by cfg.Storage.Driver. The
// returned func releases its connections.
func OpenStore(ctx context.Context, cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return kv.NewMemoryStore(), func() {}, nil

	case config.StorageRedis:
		store := kv.NewRedisStore(cfg.Redis)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		return store, func() { _ = store.Close() }, nil

	case config.StoragePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store, err := kv.NewPostgresStore(pool, cfg.Storage.Table)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensure kv schema: %w", err)
		}
		return store, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
