package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TopN bounds keep report output and any downstream visualization readable.
const (
	MinTopN = 5
	MaxTopN = 100
)

// DefaultExclusions is the central list of anonymized product labels that
// product and molecule views drop. The source dataset uses these
// placeholders for lines whose product identity was not restored.
var DefaultExclusions = []string{
	"Non restitué",
	"Non spécifié",
	"Honoraires de dispensation",
}

// Config holds all runtime configuration for a phmev run.
type Config struct {
	DSN       string
	FilePath  string
	LogFormat string // "text" or "json"

	// Load options
	MaxRows     int64
	Force       bool
	KeepStaging bool

	// Report options
	View    string
	SortBy  string
	TopN    int
	OutPath string

	// Exclusions overrides DefaultExclusions when set in the YAML file.
	Exclusions []string `yaml:"exclusions"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Exclusions  []string `yaml:"exclusions"`
	DefaultView string   `yaml:"default_view"`
	DefaultTopN int      `yaml:"default_top_n"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Flag values already set win over file defaults.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if len(yc.Exclusions) > 0 {
		c.Exclusions = yc.Exclusions
	}
	if c.View == "" && yc.DefaultView != "" {
		c.View = yc.DefaultView
	}
	if c.TopN == 0 && yc.DefaultTopN != 0 {
		c.TopN = yc.DefaultTopN
	}
	return nil
}

// ExclusionLabels returns the effective anonymized-label list.
func (c *Config) ExclusionLabels() []string {
	if len(c.Exclusions) > 0 {
		return c.Exclusions
	}
	return DefaultExclusions
}

// ClampTopN bounds the requested N into [MinTopN, MaxTopN].
func (c *Config) ClampTopN() int {
	switch {
	case c.TopN < MinTopN:
		return MinTopN
	case c.TopN > MaxTopN:
		return MaxTopN
	default:
		return c.TopN
	}
}

// Validate checks required file fields and returns an error if the config
// is invalid.
func (c *Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or PHMEV_DB_URL is required")
	}
	return nil
}
