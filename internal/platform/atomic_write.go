package platform

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Replaceable for testing error paths.
var (
	osMkdirAll   = os.MkdirAll
	osCreateTemp = os.CreateTemp
	osChmod      = os.Chmod
	osRename     = os.Rename
	fileSync     = func(f *os.File) error { return f.Sync() }
	fileClose    = func(f *os.File) error { return f.Close() }
)

// tempPattern names the staging file created next to the target.
const tempPattern = ".telewire-tmp-*"

// WriteFileAtomic writes data to path via a synced temp file in the same
// directory followed by a rename. Missing parent directories are created.
// Readers observe either the old content or the new content, never a mix.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := osMkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("atomic write: mkdir: %w", err)
	}

	tmp, err := osCreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("atomic write: create temp: %w", err)
	}
	tmpName := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	_, writeErr := tmp.Write(data)
	var syncErr error
	if writeErr == nil {
		syncErr = fileSync(tmp)
	}
	closeErr := fileClose(tmp)
	switch {
	case writeErr != nil:
		return fmt.Errorf("atomic write: write: %w", writeErr)
	case syncErr != nil:
		return fmt.Errorf("atomic write: sync: %w", syncErr)
	case closeErr != nil:
		return fmt.Errorf("atomic write: close: %w", closeErr)
	}

	if err := osChmod(tmpName, perm); err != nil {
		return fmt.Errorf("atomic write: chmod: %w", err)
	}
	if err := osRename(tmpName, path); err != nil {
		return fmt.Errorf("atomic write: rename: %w", err)
	}

	committed = true
	slog.Debug("file written", "component", "platform", "operation", "write_file_atomic", "path", path, "size", len(data))
	return nil
}
