package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"route-insertion-service/internal/platform/obs"
	"route-insertion-service/internal/ports"
)

const redisKeyPrefix = "dist:"

// RedisDistanceCache stores distance results as "meters,seconds" strings under
// "dist:<origin>|<destination>", each with the same TTL.
type RedisDistanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDistanceCache wraps client. A zero ttl keeps entries forever.
func NewRedisDistanceCache(client *redis.Client, ttl time.Duration) *RedisDistanceCache {
	return &RedisDistanceCache{client: client, ttl: ttl}
}

func redisKey(origin, destination string) string {
	return redisKeyPrefix + ports.PairKey(origin, destination)
}

func (c *RedisDistanceCache) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "distance.redis.GetMany")(&err)

	if c.client == nil {
		return nil, errors.New("redis distance cache: client is nil")
	}
	if origin == "" {
		return nil, errors.New("redis distance cache: origin must not be empty")
	}
	uniq := uniqueNonEmpty(destinations)
	if len(uniq) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	keys := make([]string, len(uniq))
	for i, d := range uniq {
		keys[i] = redisKey(origin, d)
	}
	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis distance cache: mget: %w", err)
	}

	out := make(map[string]ports.DistanceResult, len(uniq))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		r, err := decodeResult(s)
		if err != nil {
			return nil, fmt.Errorf("redis distance cache: key %q: %w", keys[i], err)
		}
		out[uniq[i]] = r
	}
	return out, nil
}

func (c *RedisDistanceCache) PutMany(ctx context.Context, origin string, results map[string]ports.DistanceResult) error {
	if c.client == nil {
		return errors.New("redis distance cache: client is nil")
	}
	if origin == "" {
		return errors.New("redis distance cache: origin must not be empty")
	}
	if len(results) == 0 {
		return nil
	}

	pipe := c.client.TxPipeline()
	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
			return errors.New("redis distance cache: empty destination key")
		}
		pipe.Set(ctx, redisKey(origin, dest), encodeResult(r), c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis distance cache: exec pipeline: %w", err)
	}
	return nil
}

func encodeResult(r ports.DistanceResult) string {
	return strconv.Itoa(r.DistanceMeters) + "," + strconv.Itoa(r.DurationSeconds)
}

func decodeResult(s string) (ports.DistanceResult, error) {
	m, sec, ok := strings.Cut(s, ",")
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("malformed value %q", s)
	}
	meters, err := strconv.Atoi(m)
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("malformed meters %q: %w", m, err)
	}
	seconds, err := strconv.Atoi(sec)
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("malformed seconds %q: %w", sec, err)
	}
	return ports.DistanceResult{DistanceMeters: meters, DurationSeconds: seconds}, nil
}

// uniqueNonEmpty trims, drops blanks and removes duplicates, keeping first-seen order.
func uniqueNonEmpty(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
