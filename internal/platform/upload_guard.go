package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathOutOfBounds is returned when an upload path resolves outside the allowed root.
var ErrPathOutOfBounds = errors.New("path outside upload root")

// ErrNotRegularFile is returned when an upload path names a directory or device.
var ErrNotRegularFile = errors.New("not a regular file")

// Replaceable for testing.
var (
	filepathAbs          = filepath.Abs
	filepathEvalSymlinks = filepath.EvalSymlinks
	osStat               = os.Stat
)

// ResolveUpload returns the absolute, symlink-free path of a local file that is
// about to be uploaded. The file must exist and be a regular file. When root is
// non-empty the resolved path must also lie inside root.
func ResolveUpload(root, path string) (string, error) {
	resolved, err := resolve(path)
	if err != nil {
		return "", fmt.Errorf("resolve upload %q: %w", path, err)
	}
	info, err := osStat(resolved)
	if err != nil {
		return "", fmt.Errorf("resolve upload %q: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("resolve upload %q: %w", path, ErrNotRegularFile)
	}
	if root == "" {
		return resolved, nil
	}

	resolvedRoot, err := resolve(root)
	if err != nil {
		return "", fmt.Errorf("resolve upload root %q: %w", root, err)
	}
	// Trailing separator keeps "/root-other" from matching "/root".
	if !strings.HasPrefix(resolved, resolvedRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("resolve upload %q: %w", path, ErrPathOutOfBounds)
	}
	return resolved, nil
}

// resolve returns the absolute, symlink-resolved, cleaned path.
func resolve(path string) (string, error) {
	abs, err := filepathAbs(path)
	if err != nil {
		return "", err
	}
	real, err := filepathEvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return filepath.Clean(real), nil
}
