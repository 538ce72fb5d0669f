package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrFileNotFound is returned by ParseFile when the input file does not exist.
	ErrFileNotFound = errors.New("input file not found")

	// ErrInvalidLineFormat is returned for a line without exactly one ':' separator.
	ErrInvalidLineFormat = errors.New("invalid line format")

	// ErrInvalidDestinationFormat is returned when destinations and weights
	// do not come in pairs.
	ErrInvalidDestinationFormat = errors.New("invalid destination format")
)

// ParseError reports a malformed line in an adjacency description.
type ParseError struct {
	Line int    // 1-based line number
	Text string // Offending line, trimmed
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// maxLineSize bounds a single adjacency line.
const maxLineSize = 16 * 1024 * 1024

// Parse reads an adjacency description and builds a graph.
//
// Each non-blank line has the form
//
//	SOURCE: DEST1 WEIGHT1 DEST2 WEIGHT2 ...
//
// A source with no destinations declares an isolated vertex. The first
// malformed line aborts parsing.
func Parse(r io.Reader) (*Graph, error) {
	g := NewGraph()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := parseLine(g, line); err != nil {
			return nil, &ParseError{Line: lineNum, Text: line, Err: err}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return g, nil
}

// parseLine adds the vertex and edges described by one line to g.
func parseLine(g *Graph, line string) error {
	parts := strings.Split(line, ":")
	if len(parts) != 2 {
		return ErrInvalidLineFormat
	}

	source, err := parseVertex(parts[0])
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}

	fields := strings.Fields(parts[1])
	if len(fields)%2 != 0 {
		return fmt.Errorf("%w: %d tokens after %d", ErrInvalidDestinationFormat, len(fields), source)
	}

	// Validate the whole line before touching the graph.
	edges := make([]Edge, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		dest, err := parseVertex(fields[i])
		if err != nil {
			return fmt.Errorf("destination: %w", err)
		}
		weight, err := strconv.ParseInt(fields[i+1], 10, 64)
		if err != nil {
			return fmt.Errorf("weight: %w", err)
		}
		if weight < 0 {
			return fmt.Errorf("%w: edge %d->%d weight=%d", ErrNegativeWeight, source, dest, weight)
		}
		edges = append(edges, Edge{To: dest, Weight: weight})
	}

	g.AddVertex(source)
	for _, e := range edges {
		if err := g.AddEdge(source, e.To, e.Weight); err != nil {
			return err
		}
	}

	return nil
}

func parseVertex(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return g, nil
}
