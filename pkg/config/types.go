// Package config provides configuration loading and validation for
// electionhistory.
package config

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// LogSources lists log file paths or glob patterns to analyze.
	// Glob entries are expanded before the run; paths given on the
	// command line are appended to the expanded list as-is.
	LogSources []string `yaml:"log_sources"`

	// Output selects the report format, "text" or "json".
	Output string `yaml:"output"`
}
