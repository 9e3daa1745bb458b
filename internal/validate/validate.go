// Package validate guards every path before it enters a batch: existence,
// file/directory kind, supported image extension, and the paths-vs-directory
// argument shape.
package validate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound        = errors.New("path not found")
	ErrNotAFile        = errors.New("not a file")
	ErrNotADirectory   = errors.New("not a directory")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrMutualExclusion = errors.New("explicit paths and a directory are mutually exclusive")
	ErrMissingPath     = errors.New("either explicit paths or a directory must be provided")
)

// Validator checks paths before and during a batch run. A stricter backend
// (content sniffing, symlink rejection) can swap in behind this interface.
type Validator interface {
	ValidatePath(path string) error
	ValidateFile(path string) error
	ValidateDirectory(path string) error
	ValidatePathArgs(paths []string, dir string) error
}

// PathValidator is the stat-based Validator. The extension set is fixed at
// construction and never mutated afterwards.
type PathValidator struct {
	extensions []string
}

func New(extensions []string) *PathValidator {
	return &PathValidator{extensions: extensions}
}

// ValidatePath fails with ErrNotFound when nothing exists at path.
func (v *PathValidator) ValidatePath(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return err
	}
	return nil
}

// ValidateFile confirms path is an existing regular file with a supported
// extension (case-insensitive, leading dot ignored).
func (v *PathValidator) ValidateFile(path string) error {
	if err := v.ValidatePath(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotAFile, path)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, supported := range v.extensions {
		if ext == supported {
			return nil
		}
	}
	return fmt.Errorf("%w: %s (supported extensions are %s)",
		ErrUnsupportedType, path, ExtensionList(v.extensions))
}

// ValidateDirectory confirms path is an existing directory.
func (v *PathValidator) ValidateDirectory(path string) error {
	if err := v.ValidatePath(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}
	return nil
}

// ValidatePathArgs enforces that exactly one input source is supplied:
// a non-empty explicit path list or a directory, never both, never neither.
func (v *PathValidator) ValidatePathArgs(paths []string, dir string) error {
	if len(paths) > 0 && dir != "" {
		return ErrMutualExclusion
	}
	if len(paths) == 0 && dir == "" {
		return ErrMissingPath
	}
	return nil
}

// ExtensionList renders the supported set for error messages: all but the
// last joined by ", ", the last joined by " or " (e.g. "png, jpg or gif").
func ExtensionList(extensions []string) string {
	switch len(extensions) {
	case 0:
		return ""
	case 1:
		return extensions[0]
	}
	return strings.Join(extensions[:len(extensions)-1], ", ") +
		" or " + extensions[len(extensions)-1]
}
