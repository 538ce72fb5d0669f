package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gocycle/internal/config"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile      string
	logLevel     string
	logFormat    string
	noColor      bool
	workers      int
	outputFormat string
	showPath     bool
)

// findSource holds the graph source flags of the root command.
var findSource sourceFlags

var rootCmd = &cobra.Command{
	Use:   "gocycle",
	Short: "Shortest directed cycle finder",
	Long: `Find the length of the shortest cycle in a weighted directed graph.

The graph is read from an adjacency file, one line per source vertex:

  SOURCE: DEST1 WEIGHT1 DEST2 WEIGHT2 ...

or from a MySQL table of (source, destination, weight) rows.
Weights must be non-negative integers. A graph without cycles
reports a length of 0.

Example:
  gocycle --input graph.txt
  gocycle --input graph.txt --show-path --workers 4
  gocycle --config gocycle.yaml --from-db --output json`,
	Version:      Version,
	SilenceUsage: true,
	RunE:         runFind,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag (optional; defaults apply without it)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")

	// Search and output overrides
	findSource.register(rootCmd)
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0,
		"Override number of concurrent edge probes")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "",
		"Override output format (text, json, yaml)")
	rootCmd.Flags().BoolVar(&showPath, "show-path", false,
		"Print the vertices of the shortest cycle")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() config.Overrides {
	return config.Overrides{
		LogLevel:     logLevel,
		LogFormat:    logFormat,
		Workers:      workers,
		OutputFormat: outputFormat,
		ShowPath:     showPath,
		NoColor:      noColor,
	}
}
