package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ReportArchive keeps a copy of every generated report on disk so staff can
// recover past downloads.
type ReportArchive struct {
	baseDir string
}

// NewReportArchive ensures the archive directory exists and returns a handle.
func NewReportArchive(baseDir string) (*ReportArchive, error) {
	if baseDir == "" {
		baseDir = "./reports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory: %w", err)
	}
	return &ReportArchive{baseDir: baseDir}, nil
}

// Save writes the given report bytes under the archive directory.
func (a *ReportArchive) Save(filename string, data []byte) (string, error) {
	path := a.resolve(filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}
	return path, nil
}

// CleanupOlderThan removes archived reports older than the provided TTL and
// returns the deleted names.
func (a *ReportArchive) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl)
	deleted := make([]string, 0)
	err := filepath.WalkDir(a.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		deleted = append(deleted, d.Name())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cleanup reports: %w", err)
	}
	return deleted, nil
}

func (a *ReportArchive) resolve(filename string) string {
	return filepath.Join(a.baseDir, filepath.Base(filename))
}
