package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocr-batch-pipeline/internal/model"
)

func discoverSpec(input, output string) model.RunSpec {
	spec := model.DefaultRunSpec()
	spec.InputRoot = input
	spec.OutputRoot = output
	return spec
}

func touch(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDiscoverMapsOutputPaths(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	touch(t, filepath.Join(input, "a.png"), "img")
	touch(t, filepath.Join(input, "sub", "deep", "b.jpg"), "img")

	items, rejected, err := DiscoverWorkItems(discoverSpec(input, output))
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, items, 2)

	byInput := map[string]string{}
	for _, item := range items {
		byInput[item.InputPath] = item.OutputPath
		assert.Equal(t, model.StatusPending, item.Status)
		assert.Equal(t, 0, item.Attempt)
	}
	assert.Equal(t, filepath.Join(output, "a.txt"), byInput[filepath.Join(input, "a.png")])
	assert.Equal(t, filepath.Join(output, "sub", "deep", "b.txt"), byInput[filepath.Join(input, "sub", "deep", "b.jpg")])
}

func TestDiscoverFiltersExtensions(t *testing.T) {
	input := t.TempDir()
	touch(t, filepath.Join(input, "page.PNG"), "img")
	touch(t, filepath.Join(input, "page.tiff"), "img")
	touch(t, filepath.Join(input, "readme.md"), "text")
	touch(t, filepath.Join(input, "data.csv"), "rows")

	items, rejected, err := DiscoverWorkItems(discoverSpec(input, t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, rejected)
	assert.Len(t, items, 2, "extension match is case insensitive, non-images skipped silently")
}

func TestDiscoverRejectsEmptyFiles(t *testing.T) {
	input := t.TempDir()
	touch(t, filepath.Join(input, "good.png"), "img")
	touch(t, filepath.Join(input, "empty.png"), "")

	items, rejected, err := DiscoverWorkItems(discoverSpec(input, t.TempDir()))
	require.NoError(t, err)
	assert.Len(t, items, 1)
	require.Len(t, rejected, 1)
	assert.Equal(t, filepath.Join(input, "empty.png"), rejected[0].Path)
	assert.Contains(t, rejected[0].Error(), "empty file")
}

func TestDiscoverLimit(t *testing.T) {
	input := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png", "d.png"} {
		touch(t, filepath.Join(input, name), "img")
	}

	spec := discoverSpec(input, t.TempDir())
	spec.Limit = 2

	items, _, err := DiscoverWorkItems(spec)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Entries come back in name order, so the limit is deterministic.
	assert.Equal(t, filepath.Join(input, "a.png"), items[0].InputPath)
	assert.Equal(t, filepath.Join(input, "b.png"), items[1].InputPath)
}

func TestDiscoverMissingRoot(t *testing.T) {
	spec := discoverSpec(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	_, _, err := DiscoverWorkItems(spec)
	assert.Error(t, err)
}

func TestDiscoverRootIsFile(t *testing.T) {
	input := t.TempDir()
	file := filepath.Join(input, "single.png")
	touch(t, file, "img")

	spec := discoverSpec(file, t.TempDir())
	_, _, err := DiscoverWorkItems(spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestDiscoverEmptyTree(t *testing.T) {
	items, rejected, err := DiscoverWorkItems(discoverSpec(t.TempDir(), t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, rejected)
}
