package graph

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
)

const (
	// Infinity is the distance recorded for vertices unreachable from the source.
	Infinity int64 = math.MaxInt64

	// MaxDistance is the largest distance a reachable vertex can have.
	MaxDistance = Infinity - 1
)

// ErrDistanceOverflow is returned when a path length does not fit in
// MaxDistance.
var ErrDistanceOverflow = errors.New("distance overflow")

// Distances maps each vertex to its shortest distance from a source.
type Distances map[int]int64

// Reachable returns true if v has a finite distance.
func (d Distances) Reachable(v int) bool {
	dist, ok := d[v]
	return ok && dist != Infinity
}

// PathOption customizes a ShortestDistances run.
type PathOption func(*pathOptions)

type pathOptions struct {
	excluded *EdgeID
	prev     map[int]int
}

// WithExcludedEdge makes the run behave as if the edge identified by id were
// absent. The graph itself is not modified.
func WithExcludedEdge(id EdgeID) PathOption {
	return func(o *pathOptions) {
		o.excluded = &id
	}
}

// WithPredecessors records the shortest-path tree into prev:
// prev[v] == u means the shortest path to v arrives through u.
// The source and unreachable vertices have no entry.
func WithPredecessors(prev map[int]int) PathOption {
	return func(o *pathOptions) {
		o.prev = prev
	}
}

// frontierItem is a tentative distance for a vertex. A vertex may appear
// several times; only the entry matching its recorded distance is live.
type frontierItem struct {
	vertex int
	dist   int64
}

// frontier is a binary min-heap of frontierItem ordered by distance.
type frontier []frontierItem

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) {
	*f = append(*f, x.(frontierItem))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// ShortestDistances computes the shortest distance from source to every
// vertex of g. Unreachable vertices map to Infinity and the source maps to 0.
// Returns ErrVertexNotFound if source is not a vertex of g, and
// ErrDistanceOverflow if a reachable vertex is farther than MaxDistance.
func ShortestDistances(g *Graph, source int, opts ...PathOption) (Distances, error) {
	if !g.HasVertex(source) {
		return nil, fmt.Errorf("%w: source %d", ErrVertexNotFound, source)
	}

	var o pathOptions
	for _, opt := range opts {
		opt(&o)
	}

	dist, overflowed := dijkstra(g, source, o)
	for _, v := range g.Vertices() {
		if _, ok := overflowed[v]; ok && dist[v] == Infinity {
			return nil, fmt.Errorf("%w: vertex %d from source %d", ErrDistanceOverflow, v, source)
		}
	}

	return dist, nil
}

// dijkstra runs the search from source. Relaxations whose sum exceeds
// MaxDistance are skipped and their target recorded in overflowed, so every
// distance in the result is exact and vertices only reachable through
// overlong paths stay at Infinity.
func dijkstra(g *Graph, source int, o pathOptions) (dist Distances, overflowed map[int]struct{}) {
	dist = make(Distances, g.VertexCount())
	for _, v := range g.Vertices() {
		dist[v] = Infinity
	}
	dist[source] = 0

	pq := frontier{{vertex: source, dist: 0}}

	for pq.Len() > 0 {
		current := heap.Pop(&pq).(frontierItem)

		// Stale entry: a shorter path was recorded after this one was pushed.
		if current.dist > dist[current.vertex] {
			continue
		}

		for i, e := range g.outgoing(current.vertex) {
			if o.excluded != nil && o.excluded.From == current.vertex && o.excluded.Index == i {
				continue
			}

			candidate, ok := addDistance(current.dist, e.Weight)
			if !ok {
				if overflowed == nil {
					overflowed = make(map[int]struct{})
				}
				overflowed[e.To] = struct{}{}
				continue
			}
			if candidate < dist[e.To] {
				dist[e.To] = candidate
				if o.prev != nil {
					o.prev[e.To] = current.vertex
				}
				heap.Push(&pq, frontierItem{vertex: e.To, dist: candidate})
			}
		}
	}

	return dist, overflowed
}

// reachableWithout reports whether target can be reached from source
// without using the edge excluded, ignoring weights.
func reachableWithout(g *Graph, source, target int, excluded EdgeID) bool {
	seen := map[int]bool{source: true}
	stack := []int{source}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if v == target {
			return true
		}
		for i, e := range g.outgoing(v) {
			if v == excluded.From && i == excluded.Index {
				continue
			}
			if !seen[e.To] {
				seen[e.To] = true
				stack = append(stack, e.To)
			}
		}
	}
	return false
}

// addDistance adds two non-negative distances. It returns false if the sum
// exceeds MaxDistance.
func addDistance(a, b int64) (int64, bool) {
	if a > MaxDistance-b {
		return 0, false
	}
	return a + b, true
}
