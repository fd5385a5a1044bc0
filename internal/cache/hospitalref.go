// Package cache holds the two-tier read cache for hospital references
// embedded in nested views: an in-process LRU in front of an optional shared
// Redis tier. All methods are safe on a nil receiver, so callers can wire the
// cache conditionally.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ambusos/ambusos-api/internal/config"
	"github.com/ambusos/ambusos-api/internal/domain"
)

// HospitalRefs caches hospital {id, nombre} pairs.
type HospitalRefs struct {
	mem *lru.Cache[int64, domain.HospitalRef]
	rdb *redis.Client
	ttl time.Duration
	log *logrus.Logger
}

// New builds the cache from config. Returns nil (a valid no-op cache) when
// caching is disabled. A Redis tier that cannot be reached at startup is
// skipped with a warning rather than failing the service.
func New(cfg config.CacheConfig, logger *logrus.Logger) (*HospitalRefs, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	mem, err := lru.New[int64, domain.HospitalRef](cfg.MemorySize)
	if err != nil {
		return nil, fmt.Errorf("creating memory cache: %w", err)
	}

	c := &HospitalRefs{mem: mem, ttl: cfg.TTL, log: logger}

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis URL: %w", err)
		}
		client := redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.WithError(err).Warn("Redis unreachable, continuing with memory cache only")
		} else {
			c.rdb = client
		}
	}
	return c, nil
}

func refKey(id int64) string {
	return fmt.Sprintf("hospital_ref:%d", id)
}

// Get returns the cached ref for id, checking the memory tier first.
func (c *HospitalRefs) Get(ctx context.Context, id int64) (domain.HospitalRef, bool) {
	if c == nil {
		return domain.HospitalRef{}, false
	}
	if ref, ok := c.mem.Get(id); ok {
		return ref, true
	}
	if c.rdb == nil {
		return domain.HospitalRef{}, false
	}
	val, err := c.rdb.Get(ctx, refKey(id)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).Warn("Redis get failed")
		}
		return domain.HospitalRef{}, false
	}
	var ref domain.HospitalRef
	if err := json.Unmarshal([]byte(val), &ref); err != nil {
		return domain.HospitalRef{}, false
	}
	c.mem.Add(id, ref)
	return ref, true
}

// Set stores the ref in both tiers.
func (c *HospitalRefs) Set(ctx context.Context, ref domain.HospitalRef) {
	if c == nil {
		return
	}
	c.mem.Add(ref.ID, ref)
	if c.rdb == nil {
		return
	}
	payload, err := json.Marshal(ref)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, refKey(ref.ID), payload, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("Redis set failed")
	}
}

// Invalidate drops the ref from both tiers. Called on hospital update and
// delete so views never embed a stale name.
func (c *HospitalRefs) Invalidate(ctx context.Context, id int64) {
	if c == nil {
		return
	}
	c.mem.Remove(id)
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, refKey(id)).Err(); err != nil {
		c.log.WithError(err).Warn("Redis delete failed")
	}
}

// Close releases the Redis client if one was attached.
func (c *HospitalRefs) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
