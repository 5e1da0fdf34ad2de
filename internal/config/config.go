// Package config provides configuration management for the import worker.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// No-name policy values for constituents with neither a name nor a real
// company (see rules.no_name_policy).
const (
	NoNameKeep        = "keep"
	NoNamePlaceholder = "placeholder"
	NoNameExclude     = "exclude"
)

// Configuration validation errors.
var (
	ErrMissingInputFile         = errors.New("input.file is required")
	ErrMissingConstituentsSheet = errors.New("input.sheets.constituents is required")
	ErrMissingEmailsSheet       = errors.New("input.sheets.emails is required")
	ErrMissingDonationsSheet    = errors.New("input.sheets.donations is required")
	ErrMissingConstituentsPath  = errors.New("output.constituents_path is required")
	ErrMissingTagsPath          = errors.New("output.tags_path is required")
	ErrInvalidFetchTimeout      = errors.New("tags.timeout_sec must be at least 1")
	ErrInvalidNoNamePolicy      = errors.New("rules.no_name_policy must be one of: keep, placeholder, exclude")
	ErrMissingPlaceholderName   = errors.New("rules.placeholder_name is required when no_name_policy is 'placeholder'")
	ErrInvalidLogLevel          = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete import worker configuration.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Tags    TagsConfig    `yaml:"tags"`
	Rules   RulesConfig   `yaml:"rules"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig identifies the source workbook and its sheet names.
type InputConfig struct {
	File   string       `yaml:"file"`
	Sheets SheetsConfig `yaml:"sheets"`
}

// SheetsConfig maps the four logical row-groups onto workbook sheet names.
// Tags is optional; when empty, tags are read from the comma-separated
// "Tags" column of the constituents sheet.
type SheetsConfig struct {
	Constituents string `yaml:"constituents"`
	Emails       string `yaml:"emails"`
	Donations    string `yaml:"donations"`
	Tags         string `yaml:"tags"`
}

// OutputConfig defines where the two exports are written.
type OutputConfig struct {
	ConstituentsPath string `yaml:"constituents_path"`
	TagsPath         string `yaml:"tags_path"`
}

// TagsConfig controls the remote tag-mapping lookup and its fallback.
type TagsConfig struct {
	ServiceURL string            `yaml:"service_url"`
	TimeoutSec int               `yaml:"timeout_sec"`
	Fallback   map[string]string `yaml:"fallback"`
}

// RulesConfig holds the data-quality rule tables. All sets are extensible
// without code change.
type RulesConfig struct {
	TypoDomains      []string `yaml:"typo_domains"`
	NonCompanyValues []string `yaml:"non_company_values"`
	NoNamePolicy     string   `yaml:"no_name_policy"`
	PlaceholderName  string   `yaml:"placeholder_name"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default configures everything except the input file path, which has no
// sensible default.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Sheets: SheetsConfig{
				Constituents: "Input Constituents",
				Emails:       "Input Emails",
				Donations:    "Input Donation History",
			},
		},
		Output: OutputConfig{
			ConstituentsPath: "output/cuebox_constituents.csv",
			TagsPath:         "output/cuebox_tags.csv",
		},
		Tags: TagsConfig{
			TimeoutSec: 10,
			Fallback:   FallbackTagTable(),
		},
		Rules: RulesConfig{
			TypoDomains:      []string{"gmaill.com", "yaho.com", "hotmal.com"},
			NonCompanyValues: []string{"Retired", "...", "Used to work here."},
			NoNamePolicy:     NoNameKeep,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// FallbackTagTable returns the embedded raw-tag to canonical-tag mapping.
// It mirrors the documented contract of the remote mapping service and is
// used whenever the fetch fails. It is a default, not a cache of a prior
// successful fetch.
func FallbackTagTable() map[string]string {
	return map[string]string{
		"Major Donor 2021":        "Major Donor",
		"Top Donor":               "Major Donor",
		"Summer School 2016":      "Summer 2016",
		"Camp 2016":               "Summer 2016",
		"Pitch Perfect Volunteer": "Pitch Perfect",
		"Pitch Perfect Staff":     "Pitch Perfect",
		"Board Member":            "Board Member",
	}
}

// LoadConfig loads configuration from a YAML file, applying defaults for
// omitted sections.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Input.File == "" {
		return ErrMissingInputFile
	}

	if c.Input.Sheets.Constituents == "" {
		return ErrMissingConstituentsSheet
	}

	if c.Input.Sheets.Emails == "" {
		return ErrMissingEmailsSheet
	}

	if c.Input.Sheets.Donations == "" {
		return ErrMissingDonationsSheet
	}

	if c.Output.ConstituentsPath == "" {
		return ErrMissingConstituentsPath
	}

	if c.Output.TagsPath == "" {
		return ErrMissingTagsPath
	}

	if c.Tags.TimeoutSec < 1 {
		return ErrInvalidFetchTimeout
	}

	switch c.Rules.NoNamePolicy {
	case NoNameKeep, NoNameExclude:
	case NoNamePlaceholder:
		if c.Rules.PlaceholderName == "" {
			return ErrMissingPlaceholderName
		}
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidNoNamePolicy, c.Rules.NoNamePolicy)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// FetchTimeout returns the remote tag-mapping fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Tags.TimeoutSec) * time.Second
}

// TypoDomainSet returns the typo domains as a lowercased lookup set.
func (c *Config) TypoDomainSet() map[string]struct{} {
	return lowerSet(c.Rules.TypoDomains)
}

// NonCompanySet returns the "note, not a company" values as a lowercased
// lookup set.
func (c *Config) NonCompanySet() map[string]struct{} {
	return lowerSet(c.Rules.NonCompanyValues)
}

// HasTagsSheet reports whether a dedicated tags sheet is configured.
func (c *Config) HasTagsSheet() bool {
	return c.Input.Sheets.Tags != ""
}

func lowerSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}

	return set
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Outputs: [%s, %s], NoNamePolicy: %s}",
		c.Input.File,
		c.Output.ConstituentsPath,
		c.Output.TagsPath,
		c.Rules.NoNamePolicy,
	)
}
