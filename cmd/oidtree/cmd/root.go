package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/oidtree/internal/config"
	"github.com/dbsmedya/oidtree/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile     string
	logLevel    string
	logFormat   string
	inputPath   string
	inputFormat string
	noColor     bool
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

var rootCmd = &cobra.Command{
	Use:   "oidtree",
	Short: "MIB OID tree builder and search",
	Long: `Rebuild the OID hierarchy of a compiled MIB and search it.

Records are read from a compiled MIB JSON file or from a MySQL/SQLite table
holding one JSON record per row. Each record with an "oid" is placed under
its nearest ancestor; records without one are reported as orphans.

Features:
  - Strict dotted-prefix placement (1.3.6.10 is not under 1.3.6.1)
  - Root discovery and multi-root builds sharing one visited set
  - Case-insensitive search over name, description and nodetype
  - Terminal tree view with enterprise vendor annotation`,
	Version:      Version,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"Path to configuration file (defaults apply when empty)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Input overrides
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "",
		"Override input path (compiled MIB JSON file)")
	rootCmd.PersistentFlags().StringVar(&inputFormat, "format", "",
		"Override input format (json, mysql, sqlite)")

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored terminal output")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel    string
	LogFormat   string
	InputPath   string
	InputFormat string
	NoColor     bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:    logLevel,
		LogFormat:   logFormat,
		InputPath:   inputPath,
		InputFormat: inputFormat,
		NoColor:     noColor,
	}
}

// loadConfig loads the configuration file, applies CLI overrides and
// builds the logger.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.InputPath, overrides.InputFormat, overrides.NoColor)

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
