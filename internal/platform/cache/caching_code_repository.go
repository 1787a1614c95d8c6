// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"twse_codes/internal/feature/codes/domain/entity"
	"twse_codes/internal/feature/codes/usecase"
)

// SnapshotStore combines the read and write sides of a snapshot repository.
type SnapshotStore interface {
	usecase.SnapshotReader
	usecase.SnapshotWriter
}

// CachingCodeRepository decorates a snapshot repository with Redis caching.
// Listings change at most once a day, so reads are cached per category and
// the whole namespace is invalidated when a new snapshot replaces the table.
type CachingCodeRepository struct {
	inner     SnapshotStore
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingCodeRepository satisfies both snapshot interfaces, verified at compile time.
var (
	_ usecase.SnapshotReader = (*CachingCodeRepository)(nil)
	_ usecase.SnapshotWriter = (*CachingCodeRepository)(nil)
)

// NewCachingCodeRepository decorates a snapshot repository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "codes".
func NewCachingCodeRepository(rdb *redis.Client, ttl time.Duration, inner SnapshotStore, namespace string) *CachingCodeRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "codes"
	}
	return &CachingCodeRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Replace writes the new snapshot through to the underlying repository and
// invalidates every cached listing.
func (c *CachingCodeRepository) Replace(ctx context.Context, records []entity.CodeRecord) error {
	if err := c.inner.Replace(ctx, records); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*") // Best effort: don't fail the refresh if invalidation fails
	return nil
}

// List retrieves the snapshot, checking the cache first and falling back to
// the underlying repository.
func (c *CachingCodeRepository) List(ctx context.Context, category entity.Category) ([]entity.CodeRecord, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx, category)
	}

	key := c.cacheKey(category)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.CodeRecord
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the store
	out, err := c.inner.List(ctx, category)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates the cache key for one category listing. The empty
// category (all records) gets its own key.
func (c *CachingCodeRepository) cacheKey(category entity.Category) string {
	if category == "" {
		return fmt.Sprintf("%s:all", c.namespace)
	}
	return fmt.Sprintf("%s:%s", c.namespace, category)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingCodeRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
