package graph

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestProcessingQueue_FIFO(t *testing.T) {
	pq := NewProcessingQueue()

	if !pq.IsEmpty() {
		t.Fatal("new queue should be empty")
	}

	pq.Enqueue(3)
	pq.Enqueue(1)
	pq.Enqueue(2)

	if pq.Len() != 3 {
		t.Errorf("expected length 3, got %d", pq.Len())
	}

	for _, want := range []int{3, 1, 2} {
		got, ok := pq.Dequeue()
		if !ok || got != want {
			t.Errorf("Dequeue() = %d, %v; want %d, true", got, ok, want)
		}
	}

	if _, ok := pq.Dequeue(); ok {
		t.Error("Dequeue() on empty queue should return false")
	}
}

func TestCalculateInDegrees(t *testing.T) {
	g := mustGraph(t,
		Triple{From: 1, To: 2, Weight: 1},
		Triple{From: 1, To: 2, Weight: 1},
		Triple{From: 2, To: 2, Weight: 1},
		Triple{From: 3, To: 2, Weight: 1},
	)

	want := map[int]int{1: 0, 2: 4, 3: 0}
	if got := g.CalculateInDegrees(); !reflect.DeepEqual(got, want) {
		t.Errorf("CalculateInDegrees() = %v, want %v", got, want)
	}
}

func TestTopologicalSort_DAG(t *testing.T) {
	// 1 -> 2 -> 4
	// 1 -> 3 -> 4
	g := mustGraph(t,
		Triple{From: 1, To: 2, Weight: 1},
		Triple{From: 1, To: 3, Weight: 1},
		Triple{From: 2, To: 4, Weight: 1},
		Triple{From: 3, To: 4, Weight: 1},
	)

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort() failed: %v", err)
	}

	want := []int{1, 2, 3, 4}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("TopologicalSort() = %v, want %v", order, want)
	}
}

func TestTopologicalSort_EmptyGraph(t *testing.T) {
	order, err := NewGraph().TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort() failed: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected empty order, got %v", order)
	}
}

func TestTopologicalSort_Cycle(t *testing.T) {
	g := mustGraph(t,
		Triple{From: 1, To: 2, Weight: 1},
		Triple{From: 2, To: 3, Weight: 1},
		Triple{From: 3, To: 1, Weight: 1},
	)

	_, err := g.TopologicalSort()
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}

	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError, got %T", err)
	}
	if cycleErr.Info.ProcessedNodes != 0 {
		t.Errorf("expected 0 processed vertices, got %d", cycleErr.Info.ProcessedNodes)
	}
}

func TestDetectIncompleteProcessing(t *testing.T) {
	// 0 -> 1 -> 2 -> 3 -> 1, 3 -> 4
	g := mustGraph(t,
		Triple{From: 0, To: 1, Weight: 1},
		Triple{From: 1, To: 2, Weight: 1},
		Triple{From: 2, To: 3, Weight: 1},
		Triple{From: 3, To: 1, Weight: 1},
		Triple{From: 3, To: 4, Weight: 1},
	)

	info := g.DetectIncompleteProcessing()
	if info == nil {
		t.Fatal("expected cycle info, got nil")
	}

	if info.TotalNodes != 5 {
		t.Errorf("TotalNodes = %d, want 5", info.TotalNodes)
	}
	if info.ProcessedNodes != 1 {
		t.Errorf("ProcessedNodes = %d, want 1", info.ProcessedNodes)
	}
	if want := []int{1, 2, 3, 4}; !reflect.DeepEqual(info.UnprocessedNodes, want) {
		t.Errorf("UnprocessedNodes = %v, want %v", info.UnprocessedNodes, want)
	}
	if want := []int{1, 2, 3}; !reflect.DeepEqual(info.CycleParticipants, want) {
		t.Errorf("CycleParticipants = %v, want %v", info.CycleParticipants, want)
	}
	if want := []int{1, 2, 3, 1}; !reflect.DeepEqual(info.CyclePath, want) {
		t.Errorf("CyclePath = %v, want %v", info.CyclePath, want)
	}

	msg := (&CycleError{Info: info}).Error()
	for _, part := range []string{
		"4 of 5",
		"Cycle path: 1 -> 2 -> 3 -> 1",
		"Vertices in cycle: 1, 2, 3",
		"Vertices downstream of cycle: 4",
	} {
		if !strings.Contains(msg, part) {
			t.Errorf("error message missing %q:\n%s", part, msg)
		}
	}
}

func TestDetectIncompleteProcessing_Acyclic(t *testing.T) {
	g := mustGraph(t, Triple{From: 1, To: 2, Weight: 1})
	g.AddVertex(3)

	if info := g.DetectIncompleteProcessing(); info != nil {
		t.Errorf("expected nil for acyclic graph, got %+v", info)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestHasCycle(t *testing.T) {
	tests := []struct {
		name    string
		triples []Triple
		want    bool
	}{
		{"empty", nil, false},
		{"chain", []Triple{{From: 1, To: 2, Weight: 1}, {From: 2, To: 3, Weight: 1}}, false},
		{"parallel edges only", []Triple{{From: 1, To: 2, Weight: 1}, {From: 1, To: 2, Weight: 2}}, false},
		{"self-loop", []Triple{{From: 1, To: 1, Weight: 5}}, true},
		{"two-cycle", []Triple{{From: 1, To: 2, Weight: 1}, {From: 2, To: 1, Weight: 1}}, true},
		{"zero-weight cycle", []Triple{{From: 1, To: 2, Weight: 0}, {From: 2, To: 1, Weight: 0}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGraph(t, tt.triples...)
			if got := g.HasCycle(); got != tt.want {
				t.Errorf("HasCycle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate_SelfLoop(t *testing.T) {
	g := mustGraph(t, Triple{From: 7, To: 7, Weight: 5})

	err := g.Validate()
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected, got %v", err)
	}

	var cycleErr *CycleError
	errors.As(err, &cycleErr)
	if want := []int{7, 7}; !reflect.DeepEqual(cycleErr.Info.CyclePath, want) {
		t.Errorf("CyclePath = %v, want %v", cycleErr.Info.CyclePath, want)
	}
}

func TestJoinVertices(t *testing.T) {
	if got := JoinVertices([]int{1, 22, 3}, " -> "); got != "1 -> 22 -> 3" {
		t.Errorf("JoinVertices() = %q", got)
	}
	if got := JoinVertices(nil, ", "); got != "" {
		t.Errorf("JoinVertices(nil) = %q, want empty", got)
	}
}
