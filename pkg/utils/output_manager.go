package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputManager organizes per-run output locations for API-created runs.
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a manager rooted at baseOutputDir. The root is
// resolved to an absolute path so run-scoped locations stay valid no matter
// what the pipeline later resolves relative paths against.
func NewOutputManager(baseOutputDir string) *OutputManager {
	if abs, err := filepath.Abs(baseOutputDir); err == nil {
		baseOutputDir = abs
	}
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// CreateRunDir creates the output directory for one run's text artifacts.
func (om *OutputManager) CreateRunDir(runID string) (string, error) {
	runDir := filepath.Join(om.BaseOutputDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run output directory: %w", err)
	}
	return runDir, nil
}

// ErrorLogPath returns the append-only error log location for a run.
func (om *OutputManager) ErrorLogPath(runID string) string {
	return filepath.Join(om.BaseOutputDir, runID, "errors.log")
}

// CompletionFlagPath returns the completion flag location for a run.
func (om *OutputManager) CompletionFlagPath(runID string) string {
	return filepath.Join(om.BaseOutputDir, runID, "run_complete.flag")
}
