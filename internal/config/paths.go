package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds the absolute filesystem locations used by a run.
type Paths struct {
	DatasetFile string
	ReportsDir  string
	LogsDir     string
}

// ResolvePaths makes the configured locations absolute, relative to the
// working directory.
func (c *Config) ResolvePaths() (*Paths, error) {
	dataset, err := filepath.Abs(c.Dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve dataset path: %w", err)
	}
	reports, err := filepath.Abs(c.Report.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve reports dir: %w", err)
	}
	logs, err := filepath.Abs(filepath.Dir(c.Logging.FilePath))
	if err != nil {
		return nil, fmt.Errorf("resolve logs dir: %w", err)
	}
	return &Paths{DatasetFile: dataset, ReportsDir: reports, LogsDir: logs}, nil
}

// EnsureDirectories creates the writable directories if missing.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
