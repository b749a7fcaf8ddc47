// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package emergency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/erapp/internal/platform/constants"
)

// DefaultFacilityCacheTTL is how long a lookup is reused for nearby callers.
const DefaultFacilityCacheTTL = 10 * time.Minute

// RedisFacilityCache implements [FacilityCache] with one JSON value per cell.
type RedisFacilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFacilityCache creates a Redis-backed lookup cache.
func NewFacilityCache(client *redis.Client, ttl time.Duration) *RedisFacilityCache {
	if ttl <= 0 {
		ttl = DefaultFacilityCacheTTL
	}
	return &RedisFacilityCache{client: client, ttl: ttl}
}

// Get returns the cached lookup, or ErrCacheMiss.
func (cache *RedisFacilityCache) Get(context context.Context, origin Point, radiusMeters int) ([]Facility, error) {
	payload, err := cache.client.Get(context, FacilityCacheKey(origin, radiusMeters)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis_facility_cache_get_failed: %w", err)
	}

	var facilities []Facility
	if err := json.Unmarshal(payload, &facilities); err != nil {
		return nil, ErrCacheMiss
	}
	return facilities, nil
}

// Set stores a lookup with the configured TTL.
func (cache *RedisFacilityCache) Set(context context.Context, origin Point, radiusMeters int, facilities []Facility) error {
	payload, err := json.Marshal(facilities)
	if err != nil {
		return fmt.Errorf("redis_facility_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, FacilityCacheKey(origin, radiusMeters), payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_facility_cache_set_failed: %w", err)
	}
	return nil
}

// FacilityCacheKey buckets coordinates to three decimals (about 110 m).
func FacilityCacheKey(origin Point, radiusMeters int) string {
	return fmt.Sprintf("%s%.3f:%.3f:%d", constants.RedisKeyFacilitiesPrefix, origin.Lat, origin.Lng, radiusMeters)
}
