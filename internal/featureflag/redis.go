package featureflag

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// RedisHashKey holds one field per flag with a strconv.ParseBool value.
const RedisHashKey = "feature_flags"

// Redis reads flags from a hash on every lookup so changes apply immediately.
type Redis struct {
	client redis.Cmdable
	logger *slog.Logger
}

// NewRedis creates a redis-backed flag source.
func NewRedis(client redis.Cmdable, logger *slog.Logger) *Redis {
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{client: client, logger: logger}
}

func (r *Redis) IsEnabled(ctx context.Context, key string, defaultValue bool) bool {
	raw, err := r.client.HGet(ctx, RedisHashKey, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WarnContext(ctx, "feature flag lookup failed, using default", "flag", key, "error", err)
		}
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.logger.WarnContext(ctx, "invalid feature flag value, using default", "flag", key, "value", raw)
		return defaultValue
	}
	return v
}
