// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/liweichen/series-harvester/internal/schemas"
)

// seriesConfigSchema is the repo-relative schema the seeds file is checked
// against before decoding.
var seriesConfigSchema = filepath.Join("schemas", "series-config.schema.json")

// Config represents the harvester configuration loaded from a seeds JSON file.
// The series list is what drives a run; the remaining fields are optional and
// fall back to CLI flag defaults.
type Config struct {
	Series  []string `json:"series" validate:"dive,url"`         // Series landing page URLs
	Output  string   `json:"output,omitempty"`                   // Archive root directory
	Timeout int      `json:"timeout,omitempty" validate:"gte=0"` // HTTP timeout in seconds
	Verbose bool     `json:"verbose,omitempty"`                  // Print detailed debug information
}

// LoadConfig loads configuration from a seeds JSON file. When the series
// config schema can be located, the raw file is validated against it before
// decoding so malformed seeds files fail with field-level errors instead of
// half-decoded structs.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if schemaPath := schemas.ResolveSchemaPath(seriesConfigSchema); schemaPath != "" {
		if err := schemas.ValidateDocument(schemaPath, data); err != nil {
			return nil, fmt.Errorf("config file %s is invalid: %w", path, err)
		}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration values using the validator tags. An empty
// series list is legal and yields a run that harvests nothing.
func (c *Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. Bool fields are not merged since unset and false are
// indistinguishable; CLI flags always win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Timeout == 0 {
		result.Timeout = defaults.Timeout
	}

	return result
}
