package graph

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/gocycle/internal/logger"
)

// CycleResult is the outcome of a shortest-cycle search.
// Found distinguishes "no cycle" from a genuine zero-weight cycle.
type CycleResult struct {
	Found       bool   `json:"found" yaml:"found"`
	Length      int64  `json:"length" yaml:"length"`
	ClosingEdge Triple `json:"closing_edge" yaml:"closing_edge"` // Edge whose probe produced Length
	Path        []int  `json:"path,omitempty" yaml:"path,omitempty"`
	Probes      int    `json:"probes" yaml:"probes"` // Edge probes performed
}

// Value returns the cycle length, or 0 when no cycle was found.
func (r CycleResult) Value() int64 {
	if !r.Found {
		return 0
	}
	return r.Length
}

// tooLong marks a probe whose cycle exists but is longer than MaxDistance.
const tooLong int64 = -1

// FindOption customizes FindShortestCycle.
type FindOption func(*findOptions)

type findOptions struct {
	workers         int
	acyclicShortcut bool
	log             *logger.Logger
}

// WithWorkers sets how many edge probes may run concurrently.
// Values below 1 are treated as 1 (sequential).
func WithWorkers(n int) FindOption {
	return func(o *findOptions) {
		o.workers = n
	}
}

// WithAcyclicShortcut enables or disables the topological pre-check that
// skips all probes for an acyclic graph. Enabled by default.
func WithAcyclicShortcut(enabled bool) FindOption {
	return func(o *findOptions) {
		o.acyclicShortcut = enabled
	}
}

// WithLogger sets the logger used for search progress.
func WithLogger(log *logger.Logger) FindOption {
	return func(o *findOptions) {
		o.log = log
	}
}

// FindShortestCycle returns the shortest directed cycle of g.
//
// Every edge u->v is probed independently: shortest distances are computed
// from v with that one edge excluded, and if u is reachable the candidate
// cycle length is weight(u->v) + dist(v, u). The minimum candidate wins;
// ties go to the earliest edge in EdgeIDs order. The graph is never modified.
// If every cycle is longer than MaxDistance the search fails with
// ErrDistanceOverflow rather than reporting no cycle.
func FindShortestCycle(ctx context.Context, g *Graph, opts ...FindOption) (CycleResult, error) {
	o := findOptions{
		workers:         1,
		acyclicShortcut: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	if o.log == nil {
		o.log = logger.NewNop()
	}

	start := time.Now()
	log := o.log.WithSearch(g.VertexCount(), g.EdgeCount(), o.workers)

	if o.acyclicShortcut && !g.HasCycle() {
		log.Debugw("Graph is acyclic, skipping edge probes")
		return CycleResult{}, nil
	}

	// Snapshot of edge IDs; the adjacency lists are read-only from here on.
	ids := g.EdgeIDs()
	candidates := make([]int64, len(ids))

	progress := newSearchProgress(log, len(ids), start)

	var err error
	if o.workers == 1 {
		err = probeSequential(ctx, g, ids, candidates, progress)
	} else {
		err = probeParallel(ctx, g, ids, candidates, o.workers, progress)
	}
	if err != nil {
		return CycleResult{}, err
	}

	result := CycleResult{Probes: len(ids)}
	best, overlong := -1, 0
	for i, c := range candidates {
		if c == tooLong {
			overlong++
			continue
		}
		if c == Infinity {
			continue
		}
		if best < 0 || c < candidates[best] {
			best = i
		}
	}

	if best < 0 && overlong > 0 {
		log.Warnw("Every cycle is longer than the largest representable distance", "closing_edges", overlong)
		return CycleResult{}, fmt.Errorf("%w: all %d closing edges give cycles longer than %d", ErrDistanceOverflow, overlong, MaxDistance)
	}
	if best < 0 {
		log.Debugw("No cycle found", "probes", result.Probes, "duration", time.Since(start))
		return result, nil
	}

	id := ids[best]
	e, _ := g.Edge(id)
	result.Found = true
	result.Length = candidates[best]
	result.ClosingEdge = Triple{From: id.From, To: e.To, Weight: e.Weight}

	path, err := cyclePath(g, id)
	if err != nil {
		return CycleResult{}, err
	}
	result.Path = path

	log.WithEdge(id.From, e.To, e.Weight).Debugw("Shortest cycle found",
		"length", result.Length,
		"probes", result.Probes,
		"duration", time.Since(start),
	)
	return result, nil
}

// progressEvery is how many finished probes pass between progress logs.
const progressEvery = 1000

// searchProgress counts finished probes and logs every progressEvery of them.
type searchProgress struct {
	log   *logger.Logger
	total int
	start time.Time
	done  atomic.Int64
}

func newSearchProgress(log *logger.Logger, total int, start time.Time) *searchProgress {
	return &searchProgress{log: log, total: total, start: start}
}

func (p *searchProgress) add() {
	n := p.done.Add(1)
	if n%progressEvery == 0 || int(n) == p.total {
		p.log.SearchProgress(int(n), p.total, time.Since(p.start))
	}
}

func probeSequential(ctx context.Context, g *Graph, ids []EdgeID, candidates []int64, progress *searchProgress) error {
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		c, err := probeEdge(g, id)
		if err != nil {
			return err
		}
		candidates[i] = c
		progress.add()
	}
	return nil
}

func probeParallel(ctx context.Context, g *Graph, ids []EdgeID, candidates []int64, workers int, progress *searchProgress) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, id := range ids {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			c, err := probeEdge(g, id)
			if err != nil {
				return err
			}
			// Each goroutine owns exactly one slot.
			candidates[i] = c
			progress.add()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return err
	}
	// Wait returns nil if the loop stopped early on a parent cancellation.
	return ctx.Err()
}

// probeEdge returns the length of the shortest cycle that closes with the
// edge id. It returns Infinity if the edge's destination cannot reach its
// source without it, and tooLong if it can but the cycle exceeds MaxDistance.
func probeEdge(g *Graph, id EdgeID) (int64, error) {
	e, ok := g.Edge(id)
	if !ok {
		return Infinity, fmt.Errorf("%w: edge %d#%d", ErrVertexNotFound, id.From, id.Index)
	}

	dist, overflowed := dijkstra(g, e.To, pathOptions{excluded: &id})

	back := dist[id.From]
	if back == Infinity {
		if len(overflowed) > 0 && reachableWithout(g, e.To, id.From, id) {
			return tooLong, nil
		}
		return Infinity, nil
	}
	total, ok := addDistance(e.Weight, back)
	if !ok {
		return tooLong, nil
	}
	return total, nil
}

// cyclePath reruns the winning probe with predecessor tracking and returns
// the cycle as a vertex sequence from the edge's source back to itself.
func cyclePath(g *Graph, id EdgeID) ([]int, error) {
	e, _ := g.Edge(id)

	prev := make(map[int]int)
	dijkstra(g, e.To, pathOptions{excluded: &id, prev: prev})

	// Walk back from the edge source to the edge destination.
	back := []int{id.From}
	for v := id.From; v != e.To; {
		p, ok := prev[v]
		if !ok {
			return nil, fmt.Errorf("broken predecessor chain at vertex %d", v)
		}
		back = append(back, p)
		v = p
	}

	path := make([]int, 0, len(back)+1)
	path = append(path, id.From)
	for i := len(back) - 1; i >= 0; i-- {
		path = append(path, back[i])
	}
	return path, nil
}
