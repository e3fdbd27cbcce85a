package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Resolve returns the effective configuration for a run. With an empty path
// the defaults are used; otherwise the file at path is loaded. The
// ELECTIONHISTORY_OUTPUT environment variable overrides the output format
// either way.
func Resolve(ctx context.Context, path string) (*Config, error) {
	if path == "" {
		cfg := DefaultConfig()
		cfg.applyEnvironmentOverrides()
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("validating config: %w", err)
		}
		return cfg, nil
	}

	return Load(ctx, path)
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	for i, src := range cfg.LogSources {
		if src == "" {
			return fmt.Errorf("log_sources[%d]: path must not be empty", i)
		}
	}

	switch cfg.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("output: must be %q or %q, got %q", OutputText, OutputJSON, cfg.Output)
	}

	return nil
}
