// Package bundlefile provides filesystem-abstracted atomic read/write for
// the export/import JSON bundle file (spec §6, import/export semantics).
package bundlefile

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteAtomic writes data to path via a temp file + rename, so a bundle
// file is either fully written or left untouched. Adapted from the
// teacher's file-based persistence atomic writer.
func WriteAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmpFile, err := afero.TempFile(fs, dir, ".bundle-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer fs.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}

// Read returns the full contents of path.
func Read(fs afero.Fs, path string) ([]byte, error) {
	return afero.ReadFile(fs, path)
}
