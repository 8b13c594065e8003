package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRunSpecDefaults(t *testing.T) {
	spec, err := ParseRunSpec([]byte(`{"inputRoot":"/scans","outputRoot":"/texts"}`))
	require.NoError(t, err)

	assert.Equal(t, "/scans", spec.InputRoot)
	assert.Equal(t, []string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp"}, spec.Extensions)
	assert.Equal(t, "utf-8", spec.OutputEncoding)
	assert.Equal(t, 5, spec.MaxConcurrency)
	assert.True(t, spec.Rate.Adaptive)
	assert.Equal(t, 10, spec.Rate.InitialBatchSize)
	assert.Equal(t, "2s", spec.Rate.InitialBatchDelay)
	assert.Equal(t, 3, spec.Retry.MaxRetries)
	assert.True(t, spec.Retry.ExponentialBackoff)
	assert.True(t, spec.Merge.Enabled)
	assert.Equal(t, "_merged", spec.Merge.Suffix)
}

func TestParseRunSpecOverridesDefaults(t *testing.T) {
	spec, err := ParseRunSpec([]byte(`{
		"rate": {"adaptive": false, "initialBatchSize": 4},
		"retry": {"exponentialBackoff": false},
		"merge": {"enabled": false}
	}`))
	require.NoError(t, err)

	// Explicit false wins over the true defaults.
	assert.False(t, spec.Rate.Adaptive)
	assert.Equal(t, 4, spec.Rate.InitialBatchSize)
	assert.False(t, spec.Retry.ExponentialBackoff)
	assert.False(t, spec.Merge.Enabled)

	// Untouched siblings keep their defaults.
	assert.Equal(t, 50, spec.Rate.MaxBatchSize)
	assert.Equal(t, 3, spec.Retry.MaxRetries)
}

func TestParseRunSpecRejectsGarbage(t *testing.T) {
	_, err := ParseRunSpec([]byte(`{"rate": "fast"}`))
	assert.Error(t, err)
}

func TestItemStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.True(t, StatusSucceeded.Terminal())
	assert.True(t, StatusFailed.Terminal())
}
