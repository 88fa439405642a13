package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes the engine's raw JSON results to path, creating parent
// directories as needed.
func WriteFile(path string, raw []byte) error {
	if path == "" {
		return fmt.Errorf("report file not specified")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}

	if len(raw) == 0 {
		raw = []byte("[]")
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write report file %s: %w", path, err)
	}
	return nil
}
