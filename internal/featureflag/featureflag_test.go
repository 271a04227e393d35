package featureflag

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insurance/internal/platform/config"
)

func TestStatic(t *testing.T) {
	flags := Static{VehicleEnrichment: false}
	ctx := context.Background()

	assert.False(t, flags.IsEnabled(ctx, VehicleEnrichment, true))
	assert.True(t, flags.IsEnabled(ctx, "unknown", true))
	assert.False(t, flags.IsEnabled(ctx, "unknown", false))
}

func writeFlags(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestFileLoadsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	writeFlags(t, path, `{"flags":{"vehicle-enrichment":true}}`)

	f, err := NewFile(path, nil)
	require.NoError(t, err)
	defer f.Close()

	ctx := context.Background()
	assert.True(t, f.IsEnabled(ctx, VehicleEnrichment, false))

	writeFlags(t, path, `{"flags":{"vehicle-enrichment":false}}`)
	assert.Eventually(t, func() bool {
		return !f.IsEnabled(ctx, VehicleEnrichment, true)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFileKeepsLastGoodFlagsOnBrokenEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	writeFlags(t, path, `{"flags":{"vehicle-enrichment":false}}`)

	f, err := NewFile(path, nil)
	require.NoError(t, err)
	defer f.Close()

	writeFlags(t, path, `{"flags":`)
	time.Sleep(100 * time.Millisecond)
	assert.False(t, f.IsEnabled(context.Background(), VehicleEnrichment, true))
}

func TestNewFileErrors(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	writeFlags(t, path, `not json`)
	_, err = NewFile(path, nil)
	assert.Error(t, err)
}

func TestFileCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	writeFlags(t, path, `{}`)

	f, err := NewFile(path, nil)
	require.NoError(t, err)
	assert.NoError(t, f.Close())
	assert.NoError(t, f.Close())
}

func TestFromConfig(t *testing.T) {
	src, closeFn, err := FromConfig(config.FeatureFlagsConfig{Source: config.FlagSourceStatic}, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, src)
	assert.NoError(t, closeFn())

	_, _, err = FromConfig(config.FeatureFlagsConfig{Source: config.FlagSourceRedis}, nil, nil)
	assert.Error(t, err)

	_, _, err = FromConfig(config.FeatureFlagsConfig{Source: "consul"}, nil, nil)
	assert.Error(t, err)
}
