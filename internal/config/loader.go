package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// An empty path yields the defaults. Environment variables are substituted
// in either case.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		cfg := DefaultConfig()
		if err := substituteEnvVars(cfg); err != nil {
			return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
		}
		return cfg, nil
	}

	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Read the config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := substituteEnvVars(cfg); err != nil {
		return nil, fmt.Errorf("failed to substitute environment variables: %w", err)
	}

	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func substituteEnvVars(cfg *Config) error {
	cfg.Input.Path = expandEnvVar(cfg.Input.Path)

	cfg.Database.Host = expandEnvVar(cfg.Database.Host)
	cfg.Database.User = expandEnvVar(cfg.Database.User)
	cfg.Database.Password = expandEnvVar(cfg.Database.Password)
	cfg.Database.Database = expandEnvVar(cfg.Database.Database)
	cfg.Database.Path = expandEnvVar(cfg.Database.Path)

	cfg.Output.Path = expandEnvVar(cfg.Output.Path)
	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)

	return nil
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat, inputPath, inputFormat string, noColor bool) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if inputPath != "" {
		c.Input.Path = inputPath
	}
	if inputFormat != "" {
		c.Input.Format = inputFormat
	}
	if noColor {
		c.Output.Color = false
	}
}

// OutputPath returns the artifact path: the configured one, or one derived
// from the input (records.json -> records_tree.json).
func (c *Config) OutputPath() string {
	if c.Output.Path != "" {
		return c.Output.Path
	}

	base := c.Input.Path
	switch c.Input.Format {
	case FormatMySQL:
		base = c.Database.Table
	case FormatSQLite:
		base = strings.TrimSuffix(c.Database.Path, ".db") + "_" + c.Database.Table
	}
	return strings.TrimSuffix(base, ".json") + "_tree.json"
}

// RootOutputPath returns the artifact path for one of several roots built
// from the same input: records_tree.json -> records_tree.<root>.json.
// Keys that are not a plain file name component are rejected.
func (c *Config) RootOutputPath(rootKey string) (string, error) {
	if rootKey == "" || rootKey == "." || rootKey == ".." ||
		filepath.Base(rootKey) != rootKey || strings.ContainsAny(rootKey, `/\`) {
		return "", fmt.Errorf("root key %q cannot be used in an output file name", rootKey)
	}
	base := c.OutputPath()
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "." + rootKey + ext, nil
}
