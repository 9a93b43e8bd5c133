package cache

import (
	"context"
	"errors"
	"fleet-route-service/internal/platform/obs"
	"fleet-route-service/internal/ports"
	"fmt"
	"strconv"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const legKeyPrefix = "leg:"

// RedisLegCache stores legs as one hash per origin, field = destination key,
// value = "meters,seconds". The hash expires ttl after its last write.
type RedisLegCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLegCache(rdb *redis.Client, ttl time.Duration) *RedisLegCache {
	return &RedisLegCache{rdb: rdb, ttl: ttl}
}

// NewRedisLegCacheFromURL connects using a redis:// URL.
func NewRedisLegCacheFromURL(url string, ttl time.Duration) (*RedisLegCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis leg cache: parse url: %w", err)
	}
	return NewRedisLegCache(redis.NewClient(opt), ttl), nil
}

func (c *RedisLegCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.Leg, err error) {
	defer obs.Time(ctx, "leg.cache.redis.GetMany")(&err)

	if origin == "" {
		return nil, errors.New("get leg cache: origin must not be empty")
	}

	uniq := uniqueKeys(destinations)
	if len(uniq) == 0 {
		return map[string]ports.Leg{}, nil
	}

	vals, err := c.rdb.HMGet(ctx, legKeyPrefix+origin, uniq...).Result()
	if err != nil {
		return nil, fmt.Errorf("get leg cache: hmget %q: %w", origin, err)
	}

	out := make(map[string]ports.Leg, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		leg, err := decodeLeg(s)
		if err != nil {
			return nil, fmt.Errorf("get leg cache: field %q: %w", uniq[i], err)
		}
		out[uniq[i]] = leg
	}

	return out, nil
}

func (c *RedisLegCache) PutMany(ctx context.Context, origin string, legs map[string]ports.Leg) error {
	if origin == "" {
		return errors.New("insert leg cache: origin must not be empty")
	}
	if len(legs) == 0 {
		return nil
	}

	fields := make(map[string]any, len(legs))
	for dest, leg := range legs {
		if strings.TrimSpace(dest) == "" {
			return fmt.Errorf("insert leg cache: empty destination key")
		}
		fields[dest] = encodeLeg(leg)
	}

	key := legKeyPrefix + origin
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fields)
		if c.ttl > 0 {
			pipe.Expire(ctx, key, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert leg cache %q: %w", origin, err)
	}

	return nil
}

func (c *RedisLegCache) Close() error { return c.rdb.Close() }

func encodeLeg(l ports.Leg) string {
	return strconv.FormatFloat(l.DistanceMeters, 'f', -1, 64) + "," + strconv.FormatFloat(l.DurationSeconds, 'f', -1, 64)
}

func decodeLeg(s string) (ports.Leg, error) {
	meters, seconds, ok := strings.Cut(s, ",")
	if !ok {
		return ports.Leg{}, fmt.Errorf("malformed leg %q", s)
	}
	m, err := strconv.ParseFloat(meters, 64)
	if err != nil {
		return ports.Leg{}, fmt.Errorf("malformed distance %q: %w", meters, err)
	}
	sec, err := strconv.ParseFloat(seconds, 64)
	if err != nil {
		return ports.Leg{}, fmt.Errorf("malformed duration %q: %w", seconds, err)
	}
	return ports.Leg{DistanceMeters: m, DurationSeconds: sec}, nil
}
