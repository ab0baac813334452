package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/ignaciovargasDEV/prode-2026/scoring"

	"github.com/redis/go-redis/v9"
)

const globalRankingKey = "prode:ranking:global"

// RankingCache is the recompute-on-write cache for the global leaderboard.
// It is optional: a nil *RankingCache (REDIS_ADDR unset) is valid and every
// lookup is a miss, so the service falls back to recomputing per read.
type RankingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRankingCache connects to Redis. Returns nil (cache disabled) for an
// empty addr.
func NewRankingCache(addr string) (*RankingCache, error) {
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &RankingCache{rdb: rdb, ttl: 10 * time.Minute}, nil
}

// GetGlobal returns the cached global ranking, or ok=false on a miss.
func (c *RankingCache) GetGlobal(ctx context.Context) ([]scoring.Entry, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, globalRankingKey).Bytes()
	if err != nil {
		return nil, false
	}

	var entries []scoring.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Printf("⚠️ [CACHE] Corrupt ranking entry, dropping: %v", err)
		c.rdb.Del(ctx, globalRankingKey)
		return nil, false
	}
	return entries, true
}

// SetGlobal stores a freshly computed global ranking.
func (c *RankingCache) SetGlobal(ctx context.Context, entries []scoring.Entry) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, globalRankingKey, raw, c.ttl).Err(); err != nil {
		log.Printf("⚠️ [CACHE] Failed to store ranking: %v", err)
	}
}

// Invalidate drops the cached ranking. Called whenever a match finalization
// (or result correction) changes points.
func (c *RankingCache) Invalidate(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, globalRankingKey).Err(); err != nil {
		log.Printf("⚠️ [CACHE] Failed to invalidate ranking: %v", err)
	}
}
