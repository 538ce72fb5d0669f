package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gocycle/internal/database"
	"github.com/dbsmedya/gocycle/internal/graph"
)

func runFind(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newRunLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := database.SetupSignalHandler(parent, func(sig os.Signal) {
		log.Warnw("Received signal, aborting search", "signal", sig.String())
	})
	defer stop()

	g, label, err := loadGraph(ctx, cfg, findSource, log)
	if err != nil {
		return err
	}
	log = log.WithInput(label)
	log.Infow("Graph loaded", "vertices", g.VertexCount(), "edges", g.EdgeCount())

	start := time.Now()
	result, err := graph.FindShortestCycle(ctx, g,
		graph.WithWorkers(cfg.Search.Workers),
		graph.WithAcyclicShortcut(cfg.Search.AcyclicShortcut),
		graph.WithLogger(log),
	)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	log.SearchComplete(result.Found, result.Length, result.Probes, time.Since(start))

	return writeResult(cmd.OutOrStdout(), result, cfg.Output.Format, cfg.Output.ShowPath)
}
