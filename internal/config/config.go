// Package config provides configuration structures and loading for oidtree.
package config

// Config represents the complete application configuration.
type Config struct {
	Input    InputConfig    `yaml:"input" mapstructure:"input"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Build    BuildConfig    `yaml:"build" mapstructure:"build"`
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// Input formats.
const (
	FormatJSON   = "json"
	FormatMySQL  = "mysql"
	FormatSQLite = "sqlite"
)

// InputConfig selects where the flat record mapping is read from.
type InputConfig struct {
	Path   string `yaml:"path" mapstructure:"path"`     // compiled MIB JSON file
	Format string `yaml:"format" mapstructure:"format"` // json, mysql, sqlite
}

// DatabaseConfig describes a SQL table holding one JSON record per row.
type DatabaseConfig struct {
	Host           string `yaml:"host" mapstructure:"host"`
	Port           int    `yaml:"port" mapstructure:"port"`
	User           string `yaml:"user" mapstructure:"user"`
	Password       string `yaml:"password" mapstructure:"password"`
	Database       string `yaml:"database" mapstructure:"database"`
	TLS            string `yaml:"tls" mapstructure:"tls"`   // disable, preferred, required
	Path           string `yaml:"path" mapstructure:"path"` // sqlite database file
	Table          string `yaml:"table" mapstructure:"table"`
	KeyColumn      string `yaml:"key_column" mapstructure:"key_column"`
	RecordColumn   string `yaml:"record_column" mapstructure:"record_column"`
	MaxConnections int    `yaml:"max_connections" mapstructure:"max_connections"`
}

// BuildConfig controls tree reconstruction.
type BuildConfig struct {
	Roots        []string `yaml:"roots" mapstructure:"roots"`                 // empty: every top-level record
	ShareVisited bool     `yaml:"share_visited" mapstructure:"share_visited"` // one visited set across all roots
}

// SearchConfig controls filtered queries over a built tree.
type SearchConfig struct {
	Exclude  []string `yaml:"exclude" mapstructure:"exclude"`
	TreePath string   `yaml:"tree_path" mapstructure:"tree_path"` // JSONPath into a tree artifact
}

// OutputConfig controls artifact and terminal output.
type OutputConfig struct {
	Path           string `yaml:"path" mapstructure:"path"` // empty: <input>_tree.json
	Indent         int    `yaml:"indent" mapstructure:"indent"`
	IncludeOrphans bool   `yaml:"include_orphans" mapstructure:"include_orphans"`
	Color          bool   `yaml:"color" mapstructure:"color"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultExclude lists the fields dropped from search results unless configured otherwise.
var DefaultExclude = []string{"children", "object type", "class"}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Format: FormatJSON,
		},
		Database: DatabaseConfig{
			Port:           3306,
			TLS:            "preferred",
			Table:          "records",
			KeyColumn:      "id",
			RecordColumn:   "record",
			MaxConnections: 4,
		},
		Build: BuildConfig{
			ShareVisited: true,
		},
		Search: SearchConfig{
			Exclude:  append([]string(nil), DefaultExclude...),
			TreePath: "$.tree",
		},
		Output: OutputConfig{
			Indent: 2,
			Color:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// ExcludeSet returns the configured search exclusions as a set.
func (c *Config) ExcludeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Search.Exclude))
	for _, f := range c.Search.Exclude {
		set[f] = struct{}{}
	}
	return set
}
