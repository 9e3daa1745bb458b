package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "squish.yml"

// Config is the static settings consumed by a batch run. It is resolved
// once at startup and treated as read-only afterwards.
type Config struct {
	// SupportedExtensions is an ordered set of lowercase extensions
	// without dots; scan order follows it.
	SupportedExtensions []string `yaml:"supported_extensions"`
	// DefaultExtension seeds the output format when no --format flag is
	// given. Empty keeps each source's own format.
	DefaultExtension string `yaml:"default_extension"`
	SkipExisting     bool   `yaml:"skip_existing"`
	OverrideExisting bool   `yaml:"override_existing"`
	Verbose          bool   `yaml:"verbose"`
	// MaxWorkers caps concurrent resize tasks; 0 launches one goroutine
	// per image.
	MaxWorkers int `yaml:"max_workers"`
}

func Default() Config {
	return Config{
		SupportedExtensions: []string{"png", "jpg", "gif", "jpeg"},
		DefaultExtension:    "jpeg",
		SkipExisting:        true,
	}
}

// Load reads YAML config from path. A missing or empty file yields the
// defaults with no error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}

	cfg.SupportedExtensions = normalizeExtensions(cfg.SupportedExtensions)
	cfg.DefaultExtension = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(cfg.DefaultExtension)), ".")
	if cfg.MaxWorkers < 0 {
		return cfg, fmt.Errorf("invalid max_workers: %d (must be >= 0)", cfg.MaxWorkers)
	}
	return cfg, nil
}

// normalizeExtensions lowercases, strips dots, and deduplicates while
// keeping the configured order.
func normalizeExtensions(in []string) []string {
	if len(in) == 0 {
		return Default().SupportedExtensions
	}
	seen := make(map[string]struct{}, len(in))
	normalized := make([]string, 0, len(in))
	for _, ext := range in {
		e := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if e == "" {
			continue
		}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		normalized = append(normalized, e)
	}
	if len(normalized) == 0 {
		return Default().SupportedExtensions
	}
	return normalized
}
