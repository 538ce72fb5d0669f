package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/gocycle/internal/config"
	"github.com/dbsmedya/gocycle/internal/database"
	"github.com/dbsmedya/gocycle/internal/graph"
	"github.com/dbsmedya/gocycle/internal/logger"
)

// sourceFlags selects where a command reads its graph from.
type sourceFlags struct {
	input  string
	fromDB bool
}

// register adds --input and --from-db to cmd. Exactly one must be given.
func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.input, "input", "i", "",
		"Input graph file")
	cmd.Flags().BoolVar(&s.fromDB, "from-db", false,
		"Read edges from the database table configured under 'input'")
	cmd.MarkFlagsOneRequired("input", "from-db")
	cmd.MarkFlagsMutuallyExclusive("input", "from-db")
}

// loadConfig loads the config file (if any), applies CLI overrides and
// validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ApplyOverrides(GetCLIOverrides())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	color.Enable = cfg.Output.Color
	return cfg, nil
}

// newRunLogger builds the logger for one command invocation.
func newRunLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log.WithRun(uuid.NewString()), nil
}

// loadGraph reads the graph selected by src. The returned label names the
// source for logs and reports.
func loadGraph(ctx context.Context, cfg *config.Config, src sourceFlags, log *logger.Logger) (*graph.Graph, string, error) {
	if !src.fromDB {
		log.Debugw("Parsing graph file", "path", src.input)
		g, err := graph.ParseFile(src.input)
		if err != nil {
			return nil, src.input, err
		}
		return g, src.input, nil
	}

	if err := cfg.ValidateSource(); err != nil {
		return nil, "", err
	}
	label := fmt.Sprintf("mysql://%s:%d/%s.%s", cfg.Source.Host, cfg.Source.Port, cfg.Source.Database, cfg.Input.Table)

	mgr := database.NewManager(&cfg.Source)
	if err := mgr.Connect(ctx); err != nil {
		return nil, label, err
	}
	defer func() {
		if err := mgr.Close(); err != nil {
			log.Warnw("Failed to close database connection", "error", err)
		}
	}()

	log.Debugw("Loading edges from database", "table", cfg.Input.Table)
	g, err := database.LoadGraph(ctx, mgr.Source, cfg.Input)
	if err != nil {
		return nil, label, err
	}
	return g, label, nil
}
