// Package scan discovers image files in a directory, keeping the
// per-extension ordering of the configured extension set.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Scan returns the paths under dir whose extension matches one of
// extensions (lowercase, no dot). Results are grouped by extension in the
// order the set defines them; ties inside one extension follow filesystem
// enumeration order. An extension with zero matches is reported and
// skipped. An empty result is a clean empty batch, never an error.
func Scan(dir string, extensions []string, recursive bool) ([]string, error) {
	if recursive {
		log.Debug().Str("dir", dir).Msg("recursively searching for image files")
	} else {
		log.Debug().Str("dir", dir).Msg("searching for image files")
	}

	entries, err := listFiles(dir, recursive)
	if err != nil {
		return nil, err
	}

	var found []string
	for _, extension := range extensions {
		matches := 0
		suffix := "." + extension
		for _, path := range entries {
			if strings.ToLower(filepath.Ext(path)) == suffix {
				found = append(found, path)
				matches++
			}
		}
		if matches == 0 {
			log.Debug().Str("extension", extension).Msg("no image found for extension")
			continue
		}
		log.Debug().Str("extension", extension).Int("count", matches).Msg("found images")
	}

	if len(found) == 0 {
		log.Debug().Str("dir", dir).Msg("no image file was found")
	} else {
		log.Debug().Str("dir", dir).Int("count", len(found)).Msg("discovery complete")
	}
	return found, nil
}

// listFiles enumerates regular files under dir. os.ReadDir and
// filepath.WalkDir both sort lexically, so enumeration order is stable.
func listFiles(dir string, recursive bool) ([]string, error) {
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		var files []string
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				files = append(files, filepath.Join(dir, entry.Name()))
			}
		}
		return files, nil
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
