package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputManagerRunLocations(t *testing.T) {
	om := NewOutputManager(filepath.Join(t.TempDir(), "outputs"))

	runDir, err := om.CreateRunDir("run-1")
	require.NoError(t, err)
	assert.DirExists(t, runDir)
	assert.True(t, filepath.IsAbs(runDir))

	assert.Equal(t, filepath.Join(runDir, "errors.log"), om.ErrorLogPath("run-1"))
	assert.Equal(t, filepath.Join(runDir, "run_complete.flag"), om.CompletionFlagPath("run-1"))
}

func TestOutputManagerResolvesRelativeBase(t *testing.T) {
	om := NewOutputManager("outputs")

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "outputs"), om.BaseOutputDir)
	assert.True(t, filepath.IsAbs(om.ErrorLogPath("run-2")),
		"run locations never get re-anchored under another root")
}
