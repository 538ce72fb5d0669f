// Package config provides configuration structures and loading for gocycle.
package config

// Config represents the complete application configuration.
type Config struct {
	Source  DatabaseConfig `yaml:"source" mapstructure:"source"`
	Input   InputConfig    `yaml:"input" mapstructure:"input"`
	Search  SearchConfig   `yaml:"search" mapstructure:"search"`
	Output  OutputConfig   `yaml:"output" mapstructure:"output"`
	Logging LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// DatabaseConfig represents a MySQL connection used as an edge source.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// InputConfig names the table and columns holding graph edges.
// Each row is one directed edge.
type InputConfig struct {
	Table             string `yaml:"table" mapstructure:"table"`
	SourceColumn      string `yaml:"source_column" mapstructure:"source_column"`
	DestinationColumn string `yaml:"destination_column" mapstructure:"destination_column"`
	WeightColumn      string `yaml:"weight_column" mapstructure:"weight_column"`
}

// SearchConfig controls the shortest-cycle search.
type SearchConfig struct {
	Workers         int  `yaml:"workers" mapstructure:"workers"`                   // Concurrent edge probes (1 = sequential)
	AcyclicShortcut bool `yaml:"acyclic_shortcut" mapstructure:"acyclic_shortcut"` // Skip probes for acyclic graphs
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format   string `yaml:"format" mapstructure:"format"` // text, json, or yaml
	ShowPath bool   `yaml:"show_path" mapstructure:"show_path"`
	Color    bool   `yaml:"color" mapstructure:"color"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
// Logs go to stderr so stdout carries only the result.
func DefaultConfig() *Config {
	return &Config{
		Source: DatabaseConfig{
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     4,
			MaxIdleConnections: 2,
		},
		Input: InputConfig{
			Table:             "edges",
			SourceColumn:      "source",
			DestinationColumn: "destination",
			WeightColumn:      "weight",
		},
		Search: SearchConfig{
			Workers:         1,
			AcyclicShortcut: true,
		},
		Output: OutputConfig{
			Format:   "text",
			ShowPath: false,
			Color:    true,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
			Output: "stderr",
		},
	}
}
