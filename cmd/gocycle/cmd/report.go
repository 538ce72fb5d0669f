package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/gocycle/internal/graph"
)

// resultLine is the text report printed for every search.
const resultLine = "The length of the shortest cycle is: %d\n"

// writeResult renders a search result in the requested format.
func writeResult(w io.Writer, result graph.CycleResult, format string, withPath bool) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		return enc.Close()
	case "text", "":
		if _, err := fmt.Fprintf(w, resultLine, result.Value()); err != nil {
			return err
		}
		if !withPath {
			return nil
		}
		if !result.Found {
			_, err := fmt.Fprintln(w, "No cycle found")
			return err
		}
		_, err := fmt.Fprintf(w, "Cycle: %s\n", graph.JoinVertices(result.Path, " -> "))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// printHeader prints a formatted header
func printHeader(w io.Writer, format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	width := runewidth.StringWidth(title) + 4
	fmt.Fprintln(w, strings.Repeat("=", width))
	fmt.Fprintf(w, "  %s\n", color.Cyan.Sprint(title))
	fmt.Fprintln(w, strings.Repeat("=", width))
}

// printSection prints a section header
func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "[%s]\n", color.Bold.Sprint(title))
	fmt.Fprintln(w, strings.Repeat("-", runewidth.StringWidth(title)+2))
}

// printFields prints label/value rows with the values aligned in one column.
func printFields(w io.Writer, rows [][2]string) {
	labelWidth := 0
	for _, row := range rows {
		if lw := runewidth.StringWidth(row[0]); lw > labelWidth {
			labelWidth = lw
		}
	}

	for _, row := range rows {
		fmt.Fprintf(w, "  %s  %s\n", runewidth.FillRight(row[0], labelWidth), row[1])
	}
}

// yesNo renders a boolean for reports, green for the good answer.
func yesNo(v bool, good bool) string {
	text := "no"
	if v {
		text = "yes"
	}
	if v == good {
		return color.Green.Sprint(text)
	}
	return color.Yellow.Sprint(text)
}

// truncateVertices formats at most limit vertices, noting how many were left out.
func truncateVertices(vertices []int, limit int, sep string) string {
	if len(vertices) <= limit {
		return graph.JoinVertices(vertices, sep)
	}
	return fmt.Sprintf("%s%s... (%d more)", graph.JoinVertices(vertices[:limit], sep), sep, len(vertices)-limit)
}
