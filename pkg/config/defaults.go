package config

import "os"

// Output format names accepted in config files and on the command line.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Environment variable names.
const (
	EnvOutput = "ELECTIONHISTORY_OUTPUT"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogSources: []string{},
		Output:     OutputText,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if out := os.Getenv(EnvOutput); out != "" {
		c.Output = out
	}
}
