// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// query.go provides a Valkey-backed cache for public read results.
// Values are stored as JSON so any query result can be cached. Every key
// carries the cache generation it was loaded under; clearing the cache bumps
// the generation, so a read that started before a write can never publish
// its result to readers that come after it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// queryKeyPrefix is the Valkey key prefix for cached query results.
	queryKeyPrefix = "query:"

	// generationKey holds the current generation counter. It sits outside
	// queryKeyPrefix so InvalidateAll never deletes it.
	generationKey = "query-generation"

	// DefaultQueryTTL is how long a query result stays cached.
	DefaultQueryTTL = 5 * time.Minute
)

// QueryCache manages JSON-encoded query results in Valkey.
type QueryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQueryCache creates a new query cache backed by the given Valkey client.
func NewQueryCache(client *redis.Client, ttl time.Duration) *QueryCache {
	if ttl <= 0 {
		ttl = DefaultQueryTTL
	}
	return &QueryCache{client: client, ttl: ttl}
}

func queryKey(gen int64, key string) string {
	return queryKeyPrefix + strconv.FormatInt(gen, 10) + ":" + key
}

// Generation returns the current cache generation shared by every instance
// using this Valkey. ok is false when Valkey cannot be read; callers must
// then bypass the cache.
func (qc *QueryCache) Generation(ctx context.Context) (int64, bool) {
	gen, err := qc.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, true
	}
	if err != nil {
		slog.Warn("query cache generation error", "error", err)
		return 0, false
	}
	return gen, true
}

// GetJSON decodes the value cached for key under gen into dst. It reports
// false on a miss, on a Valkey error, or when the stored value no longer
// decodes.
func (qc *QueryCache) GetJSON(ctx context.Context, gen int64, key string, dst any) bool {
	val, err := qc.client.Get(ctx, queryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		slog.Warn("query cache get error", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		slog.Warn("query cache decode error", "key", key, "error", err)
		return false
	}
	slog.Debug("query cache hit", "key", key, "generation", gen)
	return true
}

// SetJSON stores v under key for generation gen with the configured TTL.
// A value loaded under an older generation lands on a key no reader asks
// for and expires with its TTL.
func (qc *QueryCache) SetJSON(ctx context.Context, gen int64, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Warn("query cache encode error", "key", key, "error", err)
		return
	}
	if err := qc.client.Set(ctx, queryKey(gen, key), data, qc.ttl).Err(); err != nil {
		slog.Warn("query cache set error", "key", key, "error", err)
	}
}

// InvalidateAll starts a new generation, then removes the stored results of
// earlier generations by scanning for the prefix.
func (qc *QueryCache) InvalidateAll(ctx context.Context) {
	gen, err := qc.client.Incr(ctx, generationKey).Result()
	if err != nil {
		slog.Error("query cache generation bump failed", "error", err)
	}

	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := qc.client.Scan(ctx, cursor, queryKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("query cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := qc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("query cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	slog.Debug("query cache cleared", "generation", gen, "deleted", deleted)
}
