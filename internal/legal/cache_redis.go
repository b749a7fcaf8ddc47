// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package legal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/erapp/internal/platform/constants"
)

// RedisSectionCache implements [SectionCache] as one JSON blob with a TTL.
type RedisSectionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSectionCache creates a Redis-backed listing cache.
func NewSectionCache(client *redis.Client, ttl time.Duration) *RedisSectionCache {
	return &RedisSectionCache{client: client, ttl: ttl}
}

/*
Get returns the cached listing.

Returns:
  - []*Section: The cached corpus
  - error: ErrCacheMiss when the key is absent, or connectivity errors
*/
func (cache *RedisSectionCache) Get(context context.Context) ([]*Section, error) {
	payload, err := cache.client.Get(context, constants.RedisKeyLegalSections).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis_section_cache_get_failed: %w", err)
	}

	var sections []*Section
	if err := json.Unmarshal(payload, &sections); err != nil {
		// A payload from an older shape is treated as absent.
		return nil, ErrCacheMiss
	}

	return sections, nil
}

// Set stores the listing under the shared key with the configured TTL.
func (cache *RedisSectionCache) Set(context context.Context, sections []*Section) error {
	payload, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("redis_section_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, constants.RedisKeyLegalSections, payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_section_cache_set_failed: %w", err)
	}

	return nil
}

// Invalidate drops the cached listing after any corpus write.
func (cache *RedisSectionCache) Invalidate(context context.Context) error {
	if err := cache.client.Del(context, constants.RedisKeyLegalSections).Err(); err != nil {
		return fmt.Errorf("redis_section_cache_invalidate_failed: %w", err)
	}
	return nil
}
