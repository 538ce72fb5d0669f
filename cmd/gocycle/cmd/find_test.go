package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/gocycle/internal/config"
	"github.com/dbsmedya/gocycle/internal/graph"
)

const ringOfTwos = `1: 2 2
2: 3 2
3: 1 2
`

func TestFind_TextOutput(t *testing.T) {
	tests := []struct {
		name  string
		graph string
		want  string
	}{
		{"ring of twos", ringOfTwos, "The length of the shortest cycle is: 6\n"},
		{"acyclic", "1: 2 1 3 4\n2: 3 1\n", "The length of the shortest cycle is: 0\n"},
		{"self-loop", "1: 1 5\n", "The length of the shortest cycle is: 5\n"},
		{"empty file", "", "The length of the shortest cycle is: 0\n"},
		{
			name:  "disjoint cycles",
			graph: "1: 2 3\n2: 3 3\n3: 1 1\n10: 11 2\n11: 10 2\n",
			want:  "The length of the shortest cycle is: 4\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeGraphFile(t, tt.graph)

			out, err := executeCommand(t, "--no-color", "--input", path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestFind_ShowPath(t *testing.T) {
	path := writeGraphFile(t, ringOfTwos)

	out, err := executeCommand(t, "--no-color", "-i", path, "--show-path")
	require.NoError(t, err)
	assert.Equal(t, "The length of the shortest cycle is: 6\nCycle: 1 -> 2 -> 3 -> 1\n", out)
}

func TestFind_ShowPathWithoutCycle(t *testing.T) {
	path := writeGraphFile(t, "1: 2 1\n")

	out, err := executeCommand(t, "--no-color", "-i", path, "--show-path")
	require.NoError(t, err)
	assert.Contains(t, out, "No cycle found")
}

func TestFind_ParallelWorkers(t *testing.T) {
	path := writeGraphFile(t, ringOfTwos)

	out, err := executeCommand(t, "--no-color", "-i", path, "--workers", "4")
	require.NoError(t, err)
	assert.Equal(t, "The length of the shortest cycle is: 6\n", out)
}

func TestFind_JSONOutput(t *testing.T) {
	path := writeGraphFile(t, ringOfTwos)

	out, err := executeCommand(t, "--no-color", "-i", path, "-o", "json")
	require.NoError(t, err)

	var result graph.CycleResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Found)
	assert.Equal(t, int64(6), result.Length)
	assert.Equal(t, []int{1, 2, 3, 1}, result.Path)
	assert.Equal(t, graph.Triple{From: 1, To: 2, Weight: 2}, result.ClosingEdge)
	assert.Equal(t, 3, result.Probes)
}

func TestFind_YAMLOutput(t *testing.T) {
	path := writeGraphFile(t, "1: 2 1\n")

	out, err := executeCommand(t, "--no-color", "-i", path, "-o", "yaml")
	require.NoError(t, err)

	var result graph.CycleResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &result))
	assert.False(t, result.Found)
	assert.Equal(t, int64(0), result.Value())
}

func TestFind_ConfigFile(t *testing.T) {
	path := writeGraphFile(t, ringOfTwos)
	cfgPath := filepath.Join(t.TempDir(), "gocycle.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
search:
  workers: 2
output:
  format: json
logging:
  level: error
`), 0o644))

	out, err := executeCommand(t, "--no-color", "-c", cfgPath, "-i", path)
	require.NoError(t, err)

	var result graph.CycleResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, int64(6), result.Length)
}

func TestFind_FlagOverridesConfigFile(t *testing.T) {
	path := writeGraphFile(t, ringOfTwos)
	cfgPath := filepath.Join(t.TempDir(), "gocycle.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output:\n  format: json\n"), 0o644))

	out, err := executeCommand(t, "--no-color", "-c", cfgPath, "-i", path, "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "The length of the shortest cycle is: 6\n", out)
}

func TestFind_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	tests := []struct {
		name    string
		graph   string
		args    func(path string) []string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing file",
			args:    func(string) []string { return []string{"-i", missing} },
			wantErr: graph.ErrFileNotFound,
		},
		{
			name:    "malformed line",
			graph:   "1 2 3\n",
			args:    func(p string) []string { return []string{"-i", p} },
			wantErr: graph.ErrInvalidLineFormat,
		},
		{
			name:    "odd destination tokens",
			graph:   "1: 2\n",
			args:    func(p string) []string { return []string{"-i", p} },
			wantErr: graph.ErrInvalidDestinationFormat,
		},
		{
			name:    "negative weight",
			graph:   "1: 2 -1\n",
			args:    func(p string) []string { return []string{"-i", p} },
			wantErr: graph.ErrNegativeWeight,
		},
		{
			name:    "no source flag",
			args:    func(string) []string { return nil },
			wantMsg: "input",
		},
		{
			name:    "both source flags",
			graph:   ringOfTwos,
			args:    func(p string) []string { return []string{"-i", p, "--from-db"} },
			wantMsg: "from-db",
		},
		{
			name:    "unknown output format",
			graph:   ringOfTwos,
			args:    func(p string) []string { return []string{"-i", p, "-o", "xml"} },
			wantMsg: "output.format",
		},
		{
			name:    "database without settings",
			args:    func(string) []string { return []string{"--from-db"} },
			wantMsg: "source.host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeGraphFile(t, tt.graph)

			args := append([]string{"--no-color"}, tt.args(path)...)
			out, err := executeCommand(t, args...)
			require.Error(t, err)
			assert.Empty(t, out, "nothing should be printed on failure")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestFind_DatabaseValidationErrors(t *testing.T) {
	_, err := executeCommand(t, "--no-color", "--from-db")
	require.Error(t, err)

	var validationErrs config.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.NotEmpty(t, validationErrs)
}

func TestFind_CycleTooLong(t *testing.T) {
	path := writeGraphFile(t, "1: 2 4611686018427387904\n2: 1 4611686018427387904\n")

	out, err := executeCommand(t, "--no-color", "-i", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrDistanceOverflow)
	assert.Contains(t, err.Error(), "search failed")
	assert.Empty(t, out)
}
