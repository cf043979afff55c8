// Package pathutil provides small helpers for validating and resolving
// filesystem paths used throughout the project.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Custom error types
var (
	ErrNotExist     = errors.New("path does not exist")
	ErrNotDirectory = errors.New("not a directory")
	ErrIsDirectory  = errors.New("is a directory")
	ErrNotRegular   = errors.New("not a regular file")
)

// cleanAndResolve cleans, makes absolute, and resolves symlinks.
func cleanAndResolve(path string) (string, error) {
	cleaned := filepath.Clean(path)

	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("cannot make absolute: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("cannot resolve symlinks: %w", err)
	}

	return resolved, nil
}

// ValidateRegularFile ensures the path exists and is a regular file.
// It resolves symlinks.
func ValidateRegularFile(path string) (string, error) {
	resolved, err := cleanAndResolve(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return "", err
	}

	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, resolved)
	}

	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotRegular, resolved)
	}

	return resolved, nil
}

// ValidateDirectory ensures the path exists and is a directory.
func ValidateDirectory(path string) (string, error) {
	resolved, err := cleanAndResolve(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return "", err
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, resolved)
	}

	return resolved, nil
}

// ResolveForWrite resolves a path that may not exist yet to an absolute,
// symlink-free form. If the final element is missing, its parent directory is
// resolved instead and the base name re-joined, so a planned output file can
// be compared against resolved paths before it is created.
func ResolveForWrite(path string) (string, error) {
	cleaned := filepath.Clean(path)

	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("cannot make absolute: %w", err)
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}

	dir, base := filepath.Split(abs)
	resolvedDir, err := filepath.EvalSymlinks(filepath.Clean(dir))
	if err != nil {
		return abs, nil
	}
	return filepath.Join(resolvedDir, base), nil
}

// IsWithin reports whether child lies at or beneath parent. Both paths must
// already be absolute and clean; no symlinks are resolved here.
func IsWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// RelSlash returns path relative to root in slash-separated form, for
// stable cross-platform report paths.
func RelSlash(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", fmt.Errorf("cannot make %s relative to %s: %w", path, root, err)
	}
	return filepath.ToSlash(rel), nil
}
