package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"inkwell/internal/blog"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/store"
)

// openDatabase connects to PostgreSQL and applies pending migrations.
func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// openCache returns the query cache for public reads, or nil to read the
// store directly. An unreachable Valkey disables caching rather than falling
// back to a per-process cache, which other replicas could not invalidate.
// The returned client is nil when Valkey is not in use.
func openCache(ctx context.Context, cfg *config.Config) (blog.QueryCache, *redis.Client) {
	switch cfg.CacheDriver {
	case config.CacheDriverNone:
		slog.Info("query cache disabled")
		return nil, nil
	case config.CacheDriverMemory:
		slog.Info("in-process query cache enabled", "ttl", cfg.CacheTTL)
		return cache.NewMemoryCache(cfg.CacheTTL), nil
	}
	client, err := cache.ConnectValkey(ctx, cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, query cache disabled", "error", err)
		return nil, nil
	}
	slog.Info("valkey query cache connected", "host", cfg.ValkeyHost, "ttl", cfg.CacheTTL)
	return cache.NewQueryCache(client, cfg.CacheTTL), client
}

// newService wires the stores into the blog service.
func newService(db *sql.DB, qc blog.QueryCache) *blog.Service {
	return blog.NewService(
		store.NewPostStore(db),
		store.NewCategoryStore(db),
		store.NewPostCategoryStore(db),
		qc,
	)
}
