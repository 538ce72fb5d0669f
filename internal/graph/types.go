// Package graph provides the weighted directed graph and the shortest-cycle
// search for gocycle.
package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/elliotchance/orderedmap/v2"
)

// ErrNegativeWeight is returned when an edge with a negative weight is added.
// Shortest-path relaxation is only correct for non-negative weights.
var ErrNegativeWeight = errors.New("negative edge weight")

// ErrVertexNotFound is returned when an operation references a vertex that
// is not part of the graph.
var ErrVertexNotFound = errors.New("vertex not found")

// Edge is an outgoing directed edge stored in a vertex's adjacency list.
type Edge struct {
	To     int   // Destination vertex
	Weight int64 // Non-negative weight
}

// EdgeID identifies one edge by its source vertex and its position in the
// source's adjacency list. Parallel edges have distinct IDs.
type EdgeID struct {
	From  int
	Index int
}

// Triple is a fully qualified edge (source, destination, weight).
type Triple struct {
	From   int   `json:"from" yaml:"from"`
	To     int   `json:"to" yaml:"to"`
	Weight int64 `json:"weight" yaml:"weight"`
}

// Graph is a weighted directed graph with integer vertex IDs.
// Vertices and adjacency lists keep first-seen order so every traversal is
// deterministic.
type Graph struct {
	adjacency *orderedmap.OrderedMap[int, []Edge] // vertex -> outgoing edges
	edgeCount int
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		adjacency: orderedmap.NewOrderedMap[int, []Edge](),
	}
}

// AddVertex adds a vertex with no edges. Adding an existing vertex is a no-op.
func (g *Graph) AddVertex(v int) {
	if _, exists := g.adjacency.Get(v); exists {
		return
	}
	g.adjacency.Set(v, nil)
}

// AddEdge appends a from -> to edge. Both endpoints become vertices.
func (g *Graph) AddEdge(from, to int, weight int64) error {
	if weight < 0 {
		return fmt.Errorf("%w: edge %d->%d weight=%d", ErrNegativeWeight, from, to, weight)
	}

	g.AddVertex(from)
	g.AddVertex(to)

	edges, _ := g.adjacency.Get(from)
	g.adjacency.Set(from, append(edges, Edge{To: to, Weight: weight}))
	g.edgeCount++

	return nil
}

// HasVertex returns true if v is a vertex of the graph.
func (g *Graph) HasVertex(v int) bool {
	_, exists := g.adjacency.Get(v)
	return exists
}

// Vertices returns all vertices in first-seen order.
func (g *Graph) Vertices() []int {
	return g.adjacency.Keys()
}

// Edges returns a copy of the outgoing edges of v.
func (g *Graph) Edges(v int) []Edge {
	edges, _ := g.adjacency.Get(v)
	if len(edges) == 0 {
		return nil
	}
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

// outgoing returns the live adjacency list of v. Callers must not modify it.
func (g *Graph) outgoing(v int) []Edge {
	edges, _ := g.adjacency.Get(v)
	return edges
}

// Edge returns the edge identified by id.
func (g *Graph) Edge(id EdgeID) (Edge, bool) {
	edges := g.outgoing(id.From)
	if id.Index < 0 || id.Index >= len(edges) {
		return Edge{}, false
	}
	return edges[id.Index], true
}

// EdgeIDs returns the IDs of all edges, grouped by source vertex in vertex
// order and by adjacency position within a source.
func (g *Graph) EdgeIDs() []EdgeID {
	ids := make([]EdgeID, 0, g.edgeCount)
	for el := g.adjacency.Front(); el != nil; el = el.Next() {
		for i := range el.Value {
			ids = append(ids, EdgeID{From: el.Key, Index: i})
		}
	}
	return ids
}

// AllEdges returns every edge as a triple, in EdgeIDs order.
func (g *Graph) AllEdges() []Triple {
	triples := make([]Triple, 0, g.edgeCount)
	for el := g.adjacency.Front(); el != nil; el = el.Next() {
		for _, e := range el.Value {
			triples = append(triples, Triple{From: el.Key, To: e.To, Weight: e.Weight})
		}
	}
	return triples
}

// VertexCount returns the number of vertices in the graph.
func (g *Graph) VertexCount() int {
	return g.adjacency.Len()
}

// EdgeCount returns the number of edges in the graph, counting parallel
// edges individually.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// OutDegree returns the number of outgoing edges of v.
func (g *Graph) OutDegree(v int) int {
	return len(g.outgoing(v))
}

// InDegree returns the number of incoming edges of v.
func (g *Graph) InDegree(v int) int {
	count := 0
	for el := g.adjacency.Front(); el != nil; el = el.Next() {
		for _, e := range el.Value {
			if e.To == v {
				count++
			}
		}
	}
	return count
}

// SelfLoops returns the number of edges whose source equals their destination.
func (g *Graph) SelfLoops() int {
	count := 0
	for el := g.adjacency.Front(); el != nil; el = el.Next() {
		for _, e := range el.Value {
			if e.To == el.Key {
				count++
			}
		}
	}
	return count
}

// ParallelEdges returns the number of edges that duplicate the source and
// destination of an earlier edge (weights may differ).
func (g *Graph) ParallelEdges() int {
	count := 0
	for el := g.adjacency.Front(); el != nil; el = el.Next() {
		seen := make(map[int]bool, len(el.Value))
		for _, e := range el.Value {
			if seen[e.To] {
				count++
			}
			seen[e.To] = true
		}
	}
	return count
}

// Equal reports whether both graphs have the same vertex set and the same
// multiset of (source, destination, weight) triples. Insertion order is
// ignored.
func (g *Graph) Equal(other *Graph) bool {
	if other == nil {
		return false
	}
	if g.VertexCount() != other.VertexCount() || g.EdgeCount() != other.EdgeCount() {
		return false
	}
	for _, v := range g.Vertices() {
		if !other.HasVertex(v) {
			return false
		}
	}

	a, b := g.AllEdges(), other.AllEdges()
	sortTriples(a)
	sortTriples(b)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortTriples(triples []Triple) {
	sort.Slice(triples, func(i, j int) bool {
		if triples[i].From != triples[j].From {
			return triples[i].From < triples[j].From
		}
		if triples[i].To != triples[j].To {
			return triples[i].To < triples[j].To
		}
		return triples[i].Weight < triples[j].Weight
	})
}
