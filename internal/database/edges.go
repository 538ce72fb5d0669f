package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/dbsmedya/gocycle/internal/config"
	"github.com/dbsmedya/gocycle/internal/graph"
)

// QuoteIdentifier quotes a MySQL identifier with backticks, doubling any
// embedded backticks.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// validIdentifierRegex allows alphanumerics and underscores only.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// InvalidIdentifierError is returned when a configured table or column name
// contains characters outside [a-zA-Z0-9_].
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}

// QuoteIdentifierSafe validates and quotes an identifier.
func QuoteIdentifierSafe(name string) (string, error) {
	if !validIdentifierRegex.MatchString(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(name), nil
}

// BuildEdgeQuery returns the SELECT statement reading (source, destination,
// weight) rows from the configured table.
func BuildEdgeQuery(in config.InputConfig) (string, error) {
	names := []string{in.SourceColumn, in.DestinationColumn, in.WeightColumn, in.Table}
	quoted := make([]string, len(names))
	for i, name := range names {
		q, err := QuoteIdentifierSafe(name)
		if err != nil {
			return "", err
		}
		quoted[i] = q
	}

	// Ordering by source keeps vertex order stable across runs.
	return fmt.Sprintf("SELECT %s, %s, %s FROM %s ORDER BY %s",
		quoted[0], quoted[1], quoted[2], quoted[3], quoted[0]), nil
}

// LoadGraph reads every edge row from the configured table and builds a graph.
// A row with a negative or NULL weight fails the load.
func LoadGraph(ctx context.Context, db *sql.DB, in config.InputConfig) (*graph.Graph, error) {
	query, err := BuildEdgeQuery(in)
	if err != nil {
		return nil, fmt.Errorf("invalid edge table mapping: %w", err)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges from %s: %w", in.Table, err)
	}
	defer rows.Close()

	b := graph.NewBuilder()
	rowNum := 0
	for rows.Next() {
		rowNum++
		var from, to int
		var weight int64
		if err := rows.Scan(&from, &to, &weight); err != nil {
			return nil, fmt.Errorf("failed to scan edge row %d: %w", rowNum, err)
		}
		b.AddEdge(from, to, weight)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate edge rows: %w", err)
	}

	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid edge in %s: %w", in.Table, err)
	}
	return g, nil
}
