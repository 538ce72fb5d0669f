package graph

import (
	"fmt"
)

// Builder accumulates edges and isolated vertices and constructs a Graph.
// It is used by sources that produce edges row by row (files, databases).
type Builder struct {
	vertices []int
	edges    []Triple
}

// NewBuilder creates an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddVertex records a vertex that may have no edges.
func (b *Builder) AddVertex(v int) *Builder {
	b.vertices = append(b.vertices, v)
	return b
}

// AddEdge records a from -> to edge.
func (b *Builder) AddEdge(from, to int, weight int64) *Builder {
	b.edges = append(b.edges, Triple{From: from, To: to, Weight: weight})
	return b
}

// Build constructs the graph. Recorded vertices are added first, then the
// edges in recording order.
func (b *Builder) Build() (*Graph, error) {
	g := NewGraph()

	for _, v := range b.vertices {
		g.AddVertex(v)
	}

	for i, e := range b.edges {
		if err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i+1, err)
		}
	}

	return g, nil
}

// FromTriples is a convenience function that builds a graph from edge triples.
func FromTriples(triples ...Triple) (*Graph, error) {
	b := NewBuilder()
	for _, t := range triples {
		b.AddEdge(t.From, t.To, t.Weight)
	}
	return b.Build()
}
