// Package naming decides where a resized image is written and how
// collisions with existing files are resolved.
package naming

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// OutputPrefix is prepended to every output file name.
const OutputPrefix = "resized_"

// Policy is the batch-wide rule for output-path collisions. Exactly one
// policy is active per batch.
type Policy int

const (
	// SkipExisting treats an existing output file as the desired result;
	// the task performs no write.
	SkipExisting Policy = iota
	// OverrideExisting keeps the candidate path; the write replaces the
	// existing file.
	OverrideExisting
	// UniqueSuffix disambiguates with a random 128-bit hex token appended
	// to the file stem.
	UniqueSuffix
)

func (p Policy) String() string {
	switch p {
	case SkipExisting:
		return "skip-existing"
	case OverrideExisting:
		return "override-existing"
	case UniqueSuffix:
		return "unique-suffix"
	default:
		return "unknown"
	}
}

// FromToggles resolves the active policy from the two configuration
// booleans. Skip wins over override; the unique-suffix fallback applies
// when neither is set.
func FromToggles(skipExisting, overrideExisting bool) Policy {
	switch {
	case skipExisting:
		return SkipExisting
	case overrideExisting:
		return OverrideExisting
	default:
		return UniqueSuffix
	}
}

// OutputPath computes the destination for a resized copy of input. When
// targetFormat is non-empty the input's suffix is replaced with it first.
// The returned skip flag is true only when the policy is SkipExisting and
// a file already occupies the destination; the caller must then perform
// no write.
func OutputPath(input, targetFormat string, policy Policy) (string, bool) {
	path := input
	if targetFormat != "" {
		path = strings.TrimSuffix(path, filepath.Ext(path)) + normalizeExt(targetFormat)
	}

	dir := filepath.Dir(path)
	candidate := filepath.Join(dir, OutputPrefix+filepath.Base(path))

	if _, err := os.Stat(candidate); err != nil {
		return candidate, false
	}

	switch policy {
	case SkipExisting:
		return candidate, true
	case OverrideExisting:
		return candidate, false
	default:
		base := filepath.Base(candidate)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		// The token space is wide enough that the result is not
		// re-checked for collisions.
		return filepath.Join(dir, stem+"-"+randomToken()+ext), false
	}
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// randomToken returns a 128-bit random value as 32 hex characters.
func randomToken() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}
