package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	shellwords "github.com/mattn/go-shellwords"
	"gopkg.in/yaml.v3"
)

// Config represents sfkit configuration options
type Config struct {
	// Org is the default target org alias. Empty uses the sf CLI's own
	// default org.
	Org string `yaml:"org"`

	// CLI overrides the sf command, e.g. "sfdx" or "npx @salesforce/cli".
	// Split with shell-style word rules; the first word is the binary.
	CLI string `yaml:"cli"`

	// Timeout is the maximum execution time for a single invocation.
	// Bulk loads ignore this and derive their deadline from WaitMinutes.
	Timeout time.Duration `yaml:"timeout"`

	// WaitMinutes is the default wait budget for bulk jobs
	WaitMinutes int `yaml:"wait_minutes"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written. Empty disables
	// file logging.
	LogDir string `yaml:"log_dir"`

	// WarnThreshold is the row count above which a bulk load demands
	// confirmation
	WarnThreshold int `yaml:"warn_threshold"`

	// SampleRows is how many data rows a CSV preview shows
	SampleRows int `yaml:"sample_rows"`

	// ScratchDir receives transient payload files. Empty uses the
	// system temp directory.
	ScratchDir string `yaml:"scratch_dir"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Org:           "",
		CLI:           "",
		Timeout:       10 * time.Minute,
		WaitMinutes:   10,
		LogLevel:      "info",
		LogDir:        "", // file logging is opt-in
		WarnThreshold: 1000,
		SampleRows:    3,
		ScratchDir:    "",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	// Use a temporary struct to handle duration parsing
	type yamlConfig struct {
		Org           string `yaml:"org"`
		CLI           string `yaml:"cli"`
		Timeout       string `yaml:"timeout"`
		WaitMinutes   int    `yaml:"wait_minutes"`
		LogLevel      string `yaml:"log_level"`
		LogDir        string `yaml:"log_dir"`
		WarnThreshold int    `yaml:"warn_threshold"`
		SampleRows    int    `yaml:"sample_rows"`
		ScratchDir    string `yaml:"scratch_dir"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if yamlCfg.Org != "" {
		cfg.Org = yamlCfg.Org
	}
	if yamlCfg.CLI != "" {
		cfg.CLI = yamlCfg.CLI
	}
	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if yamlCfg.WaitMinutes != 0 {
		cfg.WaitMinutes = yamlCfg.WaitMinutes
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.WarnThreshold != 0 {
		cfg.WarnThreshold = yamlCfg.WarnThreshold
	}
	if yamlCfg.SampleRows != 0 {
		cfg.SampleRows = yamlCfg.SampleRows
	}
	if yamlCfg.ScratchDir != "" {
		cfg.ScratchDir = yamlCfg.ScratchDir
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .sfkit/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ".sfkit", "config.yaml")
	return LoadConfig(configPath)
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(org *string, timeout *time.Duration, waitMinutes *int, logLevel *string, logDir *string) {
	if org != nil {
		c.Org = *org
	}
	if timeout != nil {
		c.Timeout = *timeout
	}
	if waitMinutes != nil {
		c.WaitMinutes = *waitMinutes
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
}

// SplitCLI splits the CLI override into the binary and its leading
// arguments using shell-style word rules. An empty override returns
// empty values and no error.
func (c *Config) SplitCLI() (bin string, baseArgs []string, err error) {
	if c.CLI == "" {
		return "", nil, nil
	}
	words, err := shellwords.Parse(c.CLI)
	if err != nil {
		return "", nil, fmt.Errorf("invalid cli override %q: %w", c.CLI, err)
	}
	if len(words) == 0 {
		return "", nil, fmt.Errorf("invalid cli override %q: no command", c.CLI)
	}
	return words[0], words[1:], nil
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	// Validate log_level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	// Timeout can be 0 (no timeout) or positive, negative is invalid
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}

	if c.WaitMinutes < 0 {
		return fmt.Errorf("wait_minutes must be >= 0, got %d", c.WaitMinutes)
	}

	if c.WarnThreshold < 0 {
		return fmt.Errorf("warn_threshold must be >= 0, got %d", c.WarnThreshold)
	}

	if c.SampleRows < 0 {
		return fmt.Errorf("sample_rows must be >= 0, got %d", c.SampleRows)
	}

	if _, _, err := c.SplitCLI(); err != nil {
		return err
	}

	return nil
}
