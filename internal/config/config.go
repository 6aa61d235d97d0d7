package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the dedup configuration
type Config struct {
	// Scan settings
	Path   string `mapstructure:"path"`   // directory to scan when none is given on the command line
	Policy string `mapstructure:"policy"` // literal, keep-first

	// Report settings
	ReportFormat string `mapstructure:"report_format"` // text, json, md, yaml
	OutputFile   string `mapstructure:"output_file"`   // output file path
	NoProgress   bool   `mapstructure:"no_progress"`   // disable the progress bar
}

// RelocationPolicy selects what happens to a duplicate set
type RelocationPolicy int

const (
	// PolicyLiteral deletes the first-seen file and copies the later one into
	// quarantine while leaving it in place
	PolicyLiteral RelocationPolicy = iota
	// PolicyKeepFirst keeps the first-seen file and moves later ones into quarantine
	PolicyKeepFirst
)

// Policy names accepted in config and on the command line
const (
	PolicyNameLiteral   = "literal"
	PolicyNameKeepFirst = "keep-first"
)

// ValidReportFormats lists accepted report formats; empty means console output
var ValidReportFormats = []string{"text", "txt", "json", "md", "markdown", "yaml", "yml"}

// LoadConfig loads configuration from an optional .dewabbit.yaml in the
// working directory or $HOME, environment variables and defaults
func LoadConfig() (*Config, error) {
	return load(".", "$HOME")
}

func load(searchPaths ...string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("path", "")
	v.SetDefault("policy", PolicyNameLiteral)
	v.SetDefault("report_format", "")
	v.SetDefault("output_file", "")
	v.SetDefault("no_progress", false)

	// Optional config file
	v.SetConfigName(".dewabbit")
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Read environment variables
	v.SetEnvPrefix("DEWABBIT")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GetPolicy returns the relocation policy enum value
func (c *Config) GetPolicy() RelocationPolicy {
	switch strings.ToLower(c.Policy) {
	case PolicyNameKeepFirst:
		return PolicyKeepFirst
	default:
		return PolicyLiteral
	}
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch strings.ToLower(c.Policy) {
	case "", PolicyNameLiteral, PolicyNameKeepFirst:
	default:
		return fmt.Errorf("policy must be one of: %s, %s (got: %s)", PolicyNameLiteral, PolicyNameKeepFirst, c.Policy)
	}

	if c.ReportFormat != "" && !contains(ValidReportFormats, strings.ToLower(c.ReportFormat)) {
		return fmt.Errorf("report format must be one of: %s (got: %s)", strings.Join(ValidReportFormats, ", "), c.ReportFormat)
	}

	return nil
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
