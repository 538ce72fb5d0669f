package graph

import (
	"container/list"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ProcessingQueue wraps a list-based queue for Kahn's algorithm processing.
// It holds vertices whose remaining in-degree is 0.
type ProcessingQueue struct {
	queue *list.List
}

// NewProcessingQueue creates a new empty processing queue.
func NewProcessingQueue() *ProcessingQueue {
	return &ProcessingQueue{
		queue: list.New(),
	}
}

// InitializeQueue creates a processing queue populated with all vertices
// that have in-degree 0, in vertex order.
func (g *Graph) InitializeQueue(inDegree map[int]int) *ProcessingQueue {
	pq := NewProcessingQueue()

	for _, v := range g.Vertices() {
		if inDegree[v] == 0 {
			pq.Enqueue(v)
		}
	}

	return pq
}

// Enqueue adds a vertex to the back of the queue.
func (pq *ProcessingQueue) Enqueue(v int) {
	pq.queue.PushBack(v)
}

// Dequeue removes and returns the vertex at the front of the queue.
// Returns 0 and false if the queue is empty.
func (pq *ProcessingQueue) Dequeue() (int, bool) {
	if pq.queue.Len() == 0 {
		return 0, false
	}
	elem := pq.queue.Front()
	pq.queue.Remove(elem)
	return elem.Value.(int), true
}

// Len returns the number of vertices in the queue.
func (pq *ProcessingQueue) Len() int {
	return pq.queue.Len()
}

// IsEmpty returns true if the queue has no vertices.
func (pq *ProcessingQueue) IsEmpty() bool {
	return pq.queue.Len() == 0
}

// CalculateInDegrees computes the number of incoming edges for each vertex.
// Parallel edges and self-loops each count once per edge.
func (g *Graph) CalculateInDegrees() map[int]int {
	inDegree := make(map[int]int, g.VertexCount())

	for _, v := range g.Vertices() {
		inDegree[v] = 0
	}

	for el := g.adjacency.Front(); el != nil; el = el.Next() {
		for _, e := range el.Value {
			inDegree[e.To]++
		}
	}

	return inDegree
}

// ErrCycleDetected is returned when the graph contains a cycle, making
// topological ordering impossible.
var ErrCycleDetected = errors.New("cycle detected in graph")

// CycleInfo describes the part of the graph Kahn's algorithm could not order.
type CycleInfo struct {
	TotalNodes        int   // Total number of vertices in the graph
	ProcessedNodes    int   // Number of vertices successfully ordered
	UnprocessedNodes  []int // Vertices on a cycle or downstream of one
	CycleParticipants []int // Vertices that lie on a cycle (subset of UnprocessedNodes)
	CyclePath         []int // One cycle, start vertex repeated at the end
}

// CycleError reports a cycle found during topological ordering.
type CycleError struct {
	Info *CycleInfo
}

func (e *CycleError) Error() string {
	msg := fmt.Sprintf("cycle detected in graph: %d of %d vertices could not be ordered",
		len(e.Info.UnprocessedNodes), e.Info.TotalNodes)

	if len(e.Info.CyclePath) > 0 {
		msg += fmt.Sprintf("\nCycle path: %s", JoinVertices(e.Info.CyclePath, " -> "))
	}

	if len(e.Info.CycleParticipants) > 0 {
		msg += fmt.Sprintf("\nVertices in cycle: %s", JoinVertices(e.Info.CycleParticipants, ", "))
	}

	if len(e.Info.UnprocessedNodes) > len(e.Info.CycleParticipants) {
		participantSet := make(map[int]bool, len(e.Info.CycleParticipants))
		for _, p := range e.Info.CycleParticipants {
			participantSet[p] = true
		}

		var blocked []int
		for _, u := range e.Info.UnprocessedNodes {
			if !participantSet[u] {
				blocked = append(blocked, u)
			}
		}

		if len(blocked) > 0 {
			msg += fmt.Sprintf("\nVertices downstream of cycle: %s", JoinVertices(blocked, ", "))
		}
	}

	return msg
}

// Is lets errors.Is match a CycleError against ErrCycleDetected.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycleDetected
}

// JoinVertices formats vertex IDs separated by sep.
func JoinVertices(vertices []int, sep string) string {
	parts := make([]string, len(vertices))
	for i, v := range vertices {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}

// DetectIncompleteProcessing runs Kahn's algorithm and returns information
// about any vertices that could not be ordered, or nil for an acyclic graph.
func (g *Graph) DetectIncompleteProcessing() *CycleInfo {
	inDegree := g.CalculateInDegrees()
	queue := g.InitializeQueue(inDegree)

	processed := make(map[int]bool, g.VertexCount())

	for !queue.IsEmpty() {
		v, _ := queue.Dequeue()
		processed[v] = true

		for _, e := range g.outgoing(v) {
			inDegree[e.To]--
			if inDegree[e.To] == 0 {
				queue.Enqueue(e.To)
			}
		}
	}

	if len(processed) == g.VertexCount() {
		return nil
	}

	var unprocessed []int
	unprocessedSet := make(map[int]bool)
	for _, v := range g.Vertices() {
		if !processed[v] {
			unprocessed = append(unprocessed, v)
			unprocessedSet[v] = true
		}
	}

	var cycleParticipants []int
	for _, v := range unprocessed {
		if g.canReachSelf(v, unprocessedSet) {
			cycleParticipants = append(cycleParticipants, v)
		}
	}

	var cyclePath []int
	if len(cycleParticipants) > 0 {
		cyclePath = g.FindCyclePath(cycleParticipants[0], unprocessedSet)
	}

	return &CycleInfo{
		TotalNodes:        g.VertexCount(),
		ProcessedNodes:    len(processed),
		UnprocessedNodes:  unprocessed,
		CycleParticipants: cycleParticipants,
		CyclePath:         cyclePath,
	}
}

// HasCycle returns true if the graph contains at least one cycle,
// including a self-loop.
func (g *Graph) HasCycle() bool {
	return g.DetectIncompleteProcessing() != nil
}

// FindCyclePath returns one cycle through start using only vertices in
// allowed, with start at both ends. Returns nil if there is none.
func (g *Graph) FindCyclePath(start int, allowed map[int]bool) []int {
	visited := make(map[int]bool)
	path := []int{start}

	if g.dfsFindPath(start, start, visited, allowed, &path) {
		return path
	}

	return nil
}

func (g *Graph) dfsFindPath(current, target int, visited, allowed map[int]bool, path *[]int) bool {
	for _, e := range g.outgoing(current) {
		child := e.To
		if !allowed[child] {
			continue
		}

		if child == target {
			*path = append(*path, target)
			return true
		}

		if visited[child] {
			continue
		}

		visited[child] = true
		*path = append(*path, child)

		if g.dfsFindPath(child, target, visited, allowed, path) {
			return true
		}

		*path = (*path)[:len(*path)-1]
	}

	return false
}

// canReachSelf checks whether start can reach itself through allowed vertices.
func (g *Graph) canReachSelf(start int, allowed map[int]bool) bool {
	visited := make(map[int]bool)
	return g.dfsCanReach(start, start, visited, allowed, true)
}

// dfsCanReach is true only for the initial call to avoid an immediate self-match.
func (g *Graph) dfsCanReach(current, target int, visited, allowed map[int]bool, isStart bool) bool {
	if current == target && !isStart {
		return true
	}

	if visited[current] || !allowed[current] {
		return false
	}

	visited[current] = true

	for _, e := range g.outgoing(current) {
		if g.dfsCanReach(e.To, target, visited, allowed, false) {
			return true
		}
	}

	return false
}

// TopologicalSort returns the vertices in topological order using Kahn's
// algorithm. Returns a *CycleError if the graph contains a cycle.
func (g *Graph) TopologicalSort() ([]int, error) {
	inDegree := g.CalculateInDegrees()
	queue := g.InitializeQueue(inDegree)

	result := make([]int, 0, g.VertexCount())

	for !queue.IsEmpty() {
		v, _ := queue.Dequeue()
		result = append(result, v)

		for _, e := range g.outgoing(v) {
			inDegree[e.To]--
			if inDegree[e.To] == 0 {
				queue.Enqueue(e.To)
			}
		}
	}

	if len(result) != g.VertexCount() {
		return nil, &CycleError{Info: g.DetectIncompleteProcessing()}
	}

	return result, nil
}

// Validate returns a *CycleError if the graph contains a cycle, nil otherwise.
func (g *Graph) Validate() error {
	if info := g.DetectIncompleteProcessing(); info != nil {
		return &CycleError{Info: info}
	}
	return nil
}
