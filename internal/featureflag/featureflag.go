// Package featureflag provides boolean flag sources: a fixed map, a JSON file
// reloaded on change, and a redis hash.
//
//	flags.IsEnabled(ctx, featureflag.VehicleEnrichment, true)
//
// Every source answers with the caller's default when a flag is unknown or the
// backend cannot be read.
package featureflag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"insurance/internal/platform/config"
)

// VehicleEnrichment turns vehicle service calls for car policies on or off.
const VehicleEnrichment = "vehicle-enrichment"

// Source answers flag lookups.
type Source interface {
	IsEnabled(ctx context.Context, key string, defaultValue bool) bool
}

// Static is a fixed set of flags.
type Static map[string]bool

func (s Static) IsEnabled(_ context.Context, key string, defaultValue bool) bool {
	if v, ok := s[key]; ok {
		return v
	}
	return defaultValue
}

// FromConfig builds the source selected by cfg. The returned close function
// releases watchers and is never nil.
func FromConfig(cfg config.FeatureFlagsConfig, rdb redis.Cmdable, logger *slog.Logger) (Source, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Source {
	case config.FlagSourceStatic, "":
		return Static{}, noop, nil
	case config.FlagSourceFile:
		f, err := NewFile(cfg.File, logger)
		if err != nil {
			return nil, noop, err
		}
		return f, f.Close, nil
	case config.FlagSourceRedis:
		if rdb == nil {
			return nil, noop, fmt.Errorf("redis flag source requires a redis client")
		}
		return NewRedis(rdb, logger), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown feature flag source %q", cfg.Source)
	}
}
