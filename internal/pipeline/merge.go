package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ocr-batch-pipeline/internal/model"
	"ocr-batch-pipeline/pkg/utils"
)

// Merger consolidates the per-item text artifacts of each directory into one
// merged artifact named after the directory. Merging is deterministic and
// idempotent: members are sorted by name, previously generated merge
// artifacts are filtered out by their suffix, and re-running over unchanged
// members reproduces byte-identical output.
type Merger struct {
	Suffix   string
	Encoding string
}

// NewMerger builds a merger from the run spec.
func NewMerger(spec model.MergeSpec, encodingName string) *Merger {
	suffix := spec.Suffix
	if suffix == "" {
		suffix = "_merged"
	}
	return &Merger{Suffix: suffix, Encoding: encodingName}
}

// MergeTree merges every directory under root that holds at least one member
// artifact. The tree is walked with an explicit work list, directories
// sorted, so deep hierarchies are safe and the traversal order matches
// discovery. Returns the number of merged artifacts written.
func (m *Merger) MergeTree(root string) (int, error) {
	merged := 0
	dirs := []string{root}
	for len(dirs) > 0 {
		dir := dirs[0]
		dirs = dirs[1:]

		entries, err := os.ReadDir(dir)
		if err != nil {
			return merged, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				dirs = append(dirs, filepath.Join(dir, entry.Name()))
			}
		}

		wrote, err := m.MergeDirectory(dir)
		if err != nil {
			return merged, err
		}
		if wrote {
			merged++
		}
	}
	return merged, nil
}

// MergeDirectory merges one directory's member artifacts. Directories with
// no members produce no artifact. Reports whether a merged file was written.
func (m *Merger) MergeDirectory(dir string) (bool, error) {
	members, err := m.memberFiles(dir)
	if err != nil {
		return false, err
	}
	if len(members) == 0 {
		return false, nil
	}

	var bodies []string
	for _, member := range members {
		raw, err := os.ReadFile(member)
		if err != nil {
			return false, fmt.Errorf("failed to read member %s: %w", member, err)
		}
		text, err := utils.DecodeText(m.Encoding, raw)
		if err != nil {
			return false, err
		}
		bodies = append(bodies, strings.TrimSpace(text))
	}

	// Double line break between members, no separator after the last.
	combined := strings.Join(bodies, "\n\n")
	data, err := utils.EncodeText(m.Encoding, combined)
	if err != nil {
		return false, err
	}

	target := filepath.Join(dir, filepath.Base(dir)+m.Suffix+".txt")
	if err := os.WriteFile(target, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write merged artifact %s: %w", target, err)
	}
	fmt.Printf("🧩 Merged %d artifacts → %s\n", len(members), target)
	return true, nil
}

// memberFiles lists the directory's mergeable artifacts in ascending name
// order. Merge artifacts themselves never become members again.
func (m *Merger) memberFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var members []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		if strings.HasSuffix(strings.TrimSuffix(name, ".txt"), m.Suffix) {
			continue
		}
		members = append(members, filepath.Join(dir, name))
	}
	// os.ReadDir returns entries sorted by name; byte ordering, no locale.
	return members, nil
}
