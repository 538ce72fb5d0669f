package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/gocycle/internal/graph"
)

var (
	// validateSource holds the graph source flags of the validate command.
	validateSource sourceFlags

	// requireAcyclic makes a cyclic graph fail validation.
	requireAcyclic bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and graph input",
	Long: `Validate checks the configuration and loads the graph without
searching it.

Checks performed:
  - Configuration syntax and allowed values
  - Input file existence and line format (SOURCE: DEST WEIGHT ...)
  - Integer vertices and non-negative integer weights
  - Database connectivity and edge table mapping (with --from-db)
  - No directed cycles (with --require-acyclic)

Example:
  gocycle validate --input graph.txt`,
	RunE: runValidate,
}

func init() {
	validateSource.register(validateCmd)
	validateCmd.Flags().BoolVar(&requireAcyclic, "require-acyclic", false,
		"Fail if the graph contains a directed cycle")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newRunLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()
	g, label, err := loadGraph(ctx, cfg, validateSource, log)
	if err != nil {
		fmt.Fprintf(out, "%s %s: %v\n", color.Red.Sprint("❌"), label, err)
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "%s %s: %d vertices, %d edges\n",
		color.Green.Sprint("✅"), label, g.VertexCount(), g.EdgeCount())

	if !requireAcyclic {
		return nil
	}

	if err := g.Validate(); err != nil {
		var cycleErr *graph.CycleError
		if errors.As(err, &cycleErr) && len(cycleErr.Info.CyclePath) > 0 {
			fmt.Fprintf(out, "%s %s: cycle %s\n", color.Red.Sprint("❌"), label,
				graph.JoinVertices(cycleErr.Info.CyclePath, " -> "))
		} else {
			fmt.Fprintf(out, "%s %s: %v\n", color.Red.Sprint("❌"), label, err)
		}
		return fmt.Errorf("validation failed: %w", graph.ErrCycleDetected)
	}

	fmt.Fprintf(out, "%s %s: acyclic\n", color.Green.Sprint("✅"), label)
	return nil
}
