// Package output persists generated artifacts. Writes are idempotent:
// content is compared against what is already on disk and identical files
// are left untouched, so repeated builds over unchanged sources cause zero
// filesystem mutations and incremental build detection stays stable.
package output

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// UpdateFile writes content to path when it differs from the current on-disk
// content or the file does not exist yet, creating parent directories as
// needed. It reports whether a write actually happened so callers can log
// real changes and skip no-ops.
func UpdateFile(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to read existing file %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create output directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
