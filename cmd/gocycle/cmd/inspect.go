package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/gocycle/internal/graph"
)

var (
	// inspectSource holds the graph source flags of the inspect command.
	inspectSource sourceFlags

	// inspectVertex is the vertex whose degrees and edges are listed.
	inspectVertex string
)

// maxListed caps vertex lists in the inspect report.
const maxListed = 20

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show structure of a graph",
	Long: `Inspect loads a graph and summarizes its structure without
running the shortest-cycle search.

The summary shows:
  - Vertex and edge counts, self-loops and parallel edges
  - Whether the graph is acyclic (Kahn's algorithm)
  - A topological order for acyclic graphs
  - Vertices on a cycle, vertices downstream of one, and an example cycle
  - With --vertex, the in-degree, out-degree and outgoing edges of one vertex

Example:
  gocycle inspect --input graph.txt
  gocycle inspect --input graph.txt --vertex 3`,
	RunE: runInspect,
}

func init() {
	inspectSource.register(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectVertex, "vertex", "",
		"Also report degrees and outgoing edges of this vertex")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newRunLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var vertex int
	if inspectVertex != "" {
		vertex, err = strconv.Atoi(inspectVertex)
		if err != nil {
			return fmt.Errorf("invalid --vertex %q: %w", inspectVertex, err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	g, label, err := loadGraph(ctx, cfg, inspectSource, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printGraphSummary(out, label, g)

	if inspectVertex != "" {
		fmt.Fprintln(out)
		return printVertexDetail(out, g, vertex)
	}
	return nil
}

// printVertexDetail writes the degrees and outgoing edges of v.
func printVertexDetail(w io.Writer, g *graph.Graph, v int) error {
	if !g.HasVertex(v) {
		return fmt.Errorf("%w: %d", graph.ErrVertexNotFound, v)
	}

	printSection(w, fmt.Sprintf("Vertex %d", v))

	edges := g.Edges(v)
	targets := make([]string, 0, len(edges))
	for _, e := range edges {
		targets = append(targets, fmt.Sprintf("%d (w=%d)", e.To, e.Weight))
	}
	listed := "-"
	if len(targets) > maxListed {
		listed = fmt.Sprintf("%s, ... (%d more)", strings.Join(targets[:maxListed], ", "), len(targets)-maxListed)
	} else if len(targets) > 0 {
		listed = strings.Join(targets, ", ")
	}

	printFields(w, [][2]string{
		{"Out-degree:", strconv.Itoa(g.OutDegree(v))},
		{"In-degree:", strconv.Itoa(g.InDegree(v))},
		{"Edges out:", listed},
	})
	return nil
}

// printGraphSummary writes the inspect report for g.
func printGraphSummary(w io.Writer, label string, g *graph.Graph) {
	printHeader(w, "Graph Summary: %s", label)

	fmt.Fprintln(w)
	printSection(w, "Counts")
	printFields(w, [][2]string{
		{"Vertices:", strconv.Itoa(g.VertexCount())},
		{"Edges:", strconv.Itoa(g.EdgeCount())},
		{"Self-loops:", strconv.Itoa(g.SelfLoops())},
		{"Parallel edges:", strconv.Itoa(g.ParallelEdges())},
	})

	fmt.Fprintln(w)
	printSection(w, "Structure")

	info := g.DetectIncompleteProcessing()
	if info == nil {
		rows := [][2]string{{"Acyclic:", yesNo(true, true)}}
		if order, err := g.TopologicalSort(); err == nil && len(order) > 0 {
			rows = append(rows, [2]string{"Topological order:", truncateVertices(order, maxListed, ", ")})
		}
		printFields(w, rows)
		return
	}

	rows := [][2]string{
		{"Acyclic:", yesNo(false, true)},
		{"Ordered vertices:", fmt.Sprintf("%d of %d", info.ProcessedNodes, info.TotalNodes)},
		{"Vertices in cycles:", truncateVertices(info.CycleParticipants, maxListed, ", ")},
	}
	if downstream := len(info.UnprocessedNodes) - len(info.CycleParticipants); downstream > 0 {
		rows = append(rows, [2]string{"Downstream of cycles:", strconv.Itoa(downstream)})
	}
	if len(info.CyclePath) > 0 {
		rows = append(rows, [2]string{"Example cycle:", truncateVertices(info.CyclePath, maxListed, " -> ")})
	}
	printFields(w, rows)
}
