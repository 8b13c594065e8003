package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ocr-batch-pipeline/internal/model"
)

// ValidationError rejects an artifact at discovery time. These never enter
// the retry path.
type ValidationError struct {
	Path   string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Path, e.Reason)
}

// DiscoverWorkItems walks the input root and builds one WorkItem per
// eligible image, mapping each to an output path under the output root with
// the source hierarchy preserved. The walk uses an explicit work list with
// sorted entries, so deep trees are safe and the order is deterministic.
// With limit > 0 only the first limit items are returned (smoke mode).
func DiscoverWorkItems(spec model.RunSpec) ([]*model.WorkItem, []ValidationError, error) {
	info, err := os.Stat(spec.InputRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("input root %s: %w", spec.InputRoot, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("input root %s is not a directory", spec.InputRoot)
	}

	extensions := make(map[string]bool, len(spec.Extensions))
	for _, ext := range spec.Extensions {
		extensions[strings.ToLower(ext)] = true
	}
	maxBytes := spec.MaxFileSizeMB * 1024 * 1024

	var items []*model.WorkItem
	var rejected []ValidationError

	dirs := []string{spec.InputRoot}
	for len(dirs) > 0 {
		dir := dirs[0]
		dirs = dirs[1:]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				dirs = append(dirs, path)
				continue
			}
			if !extensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				continue
			}

			fi, err := entry.Info()
			if err != nil {
				rejected = append(rejected, ValidationError{Path: path, Reason: err.Error()})
				continue
			}
			if fi.Size() == 0 {
				rejected = append(rejected, ValidationError{Path: path, Reason: "empty file"})
				continue
			}
			if maxBytes > 0 && fi.Size() > maxBytes {
				fmt.Printf("⚠️ Oversized file %s (%d MB), processing anyway\n", path, fi.Size()/(1024*1024))
			}

			outputPath, err := deriveOutputPath(spec.InputRoot, spec.OutputRoot, path)
			if err != nil {
				rejected = append(rejected, ValidationError{Path: path, Reason: err.Error()})
				continue
			}
			items = append(items, &model.WorkItem{
				InputPath:  path,
				OutputPath: outputPath,
				Status:     model.StatusPending,
			})
			if spec.Limit > 0 && len(items) >= spec.Limit {
				fmt.Printf("🔬 Smoke mode: restricted to first %d items\n", spec.Limit)
				return items, rejected, nil
			}
		}
	}

	return items, rejected, nil
}

// deriveOutputPath substitutes the output root and the text extension while
// keeping the relative directory structure.
func deriveOutputPath(inputRoot, outputRoot, inputPath string) (string, error) {
	rel, err := filepath.Rel(inputRoot, inputPath)
	if err != nil {
		return "", fmt.Errorf("cannot relativize %s: %w", inputPath, err)
	}
	ext := filepath.Ext(rel)
	return filepath.Join(outputRoot, strings.TrimSuffix(rel, ext)+".txt"), nil
}
