package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/weaver/internal/output"
	"github.com/simonhull/firebird-suite/weaver/pkg/config"
	"github.com/simonhull/firebird-suite/weaver/pkg/export"
	"github.com/simonhull/firebird-suite/weaver/pkg/graph"
)

const report = `{
  "report_version": "0.1",
  "data_clumps": {
    "c1": {
      "data_clump_type": "parameters_to_parameters_data_clump",
      "from_file_path": "src/Order.java",
      "from_class_or_interface_key": "Order",
      "from_class_or_interface_name": "Order",
      "from_method_key": "Order.ship",
      "from_method_name": "ship",
      "to_file_path": "src/Invoice.java",
      "to_class_or_interface_key": "Invoice",
      "to_class_or_interface_name": "Invoice",
      "to_method_key": "Invoice.send",
      "to_method_name": "send",
      "data_clump_data": {
        "a": {"key": "Order.ship.street", "name": "street",
          "to_variable": {"key": "Invoice.send.street", "name": "street"}},
        "b": {"key": "Order.ship.city", "name": "city",
          "to_variable": {"key": "Invoice.send.city", "name": "city"}}
      }
    }
  }
}`

// workspace is a temp dir holding a report and a config path.
type workspace struct {
	dir    string
	report string
	config string
	out    string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	ws := &workspace{
		dir:    dir,
		report: filepath.Join(dir, "report.json"),
		config: filepath.Join(dir, "weaver.yaml"),
		out:    filepath.Join(dir, "out"),
	}
	require.NoError(t, os.WriteFile(ws.report, []byte(report), 0644))
	return ws
}

func (ws *workspace) writeConfig(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(ws.config, []byte(content), 0644))
}

// run executes the CLI with stdin and returns what it printed to stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		output.SetOutput(nil)
		output.SetVerbose(false)
	})

	cmd := RootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "Weaver v0.1.0\n", out)
}

func TestGraph_DefaultFormats(t *testing.T) {
	ws := newWorkspace(t)

	out, err := run(t, "", "graph", ws.report, "--config", ws.config, "--out", ws.out)
	require.NoError(t, err)

	assert.Contains(t, out, "Built graph: 10 nodes, 12 edges")
	assert.FileExists(t, filepath.Join(ws.out, "graph.json"))
	assert.FileExists(t, filepath.Join(ws.out, "graph.html"))
	assert.NoFileExists(t, filepath.Join(ws.out, "graph.mmd"))

	data, err := os.ReadFile(filepath.Join(ws.out, "graph.json"))
	require.NoError(t, err)

	var g graph.Graph
	require.NoError(t, json.Unmarshal(data, &g))
	assert.Len(t, g.Nodes, 10)
	assert.Equal(t, 4, g.Stats.RelatedEdges)
}

func TestGraph_Flags(t *testing.T) {
	ws := newWorkspace(t)

	_, err := run(t, "", "graph", ws.report,
		"--config", ws.config,
		"--out", ws.out,
		"--format", "mermaid",
		"--format", "json",
		"--dedupe",
		"--from-file", "src/Order.java")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(ws.out, "graph.mmd"))
	data, err := os.ReadFile(filepath.Join(ws.out, "graph.json"))
	require.NoError(t, err)

	var g graph.Graph
	require.NoError(t, json.Unmarshal(data, &g))
	assert.Equal(t, 2, g.Stats.RelatedEdges, "dedupe keeps one edge per pair")
}

func TestGraph_FilterExcludesEverything(t *testing.T) {
	ws := newWorkspace(t)

	out, err := run(t, "", "graph", ws.report,
		"--config", ws.config, "--out", ws.out, "--format", "json",
		"--from-file", "src/Nope.java")
	require.NoError(t, err)
	assert.Contains(t, out, "Built graph: 0 nodes, 0 edges")
}

func TestGraph_ExistingOutputsNeedForce(t *testing.T) {
	ws := newWorkspace(t)
	args := []string{"graph", ws.report, "--config", ws.config, "--out", ws.out, "--format", "json"}

	_, err := run(t, "", args...)
	require.NoError(t, err)

	_, err = run(t, "", args...)
	assert.ErrorIs(t, err, export.ErrOutputExists)

	_, err = run(t, "", append(args, "--force")...)
	assert.NoError(t, err)
}

func TestGraph_Errors(t *testing.T) {
	ws := newWorkspace(t)

	_, err := run(t, "", "graph", ws.report, "--config", ws.config, "--out", ws.out, "--format", "pdf")
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	_, err = run(t, "", "graph", filepath.Join(ws.dir, "missing.json"), "--config", ws.config, "--out", ws.out)
	assert.Error(t, err)

	_, err = run(t, "", "graph", "--config", ws.config)
	assert.Error(t, err, "report argument is required")

	ws.writeConfig(t, "graph:\n  large_graph_threshold: -1\n")
	_, err = run(t, "", "graph", ws.report, "--config", ws.config)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestGraph_LargeGraphGuard(t *testing.T) {
	ws := newWorkspace(t)
	ws.writeConfig(t, "graph:\n  large_graph_threshold: 2\n")
	args := []string{"graph", ws.report, "--config", ws.config, "--out", ws.out, "--format", "html"}

	out, err := run(t, "n\n", args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Graph is very large")
	assert.Contains(t, out, "Export skipped")
	assert.NoFileExists(t, filepath.Join(ws.out, "graph.html"))

	out, err = run(t, "y\n", args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Built graph")
	assert.FileExists(t, filepath.Join(ws.out, "graph.html"))

	// --force skips the prompt
	out, err = run(t, "", append(args, "--force")...)
	require.NoError(t, err)
	assert.NotContains(t, out, "Export anyway?")

	// json alone never prompts
	out, err = run(t, "", "graph", ws.report, "--config", ws.config, "--out", ws.out, "--format", "json")
	require.NoError(t, err)
	assert.NotContains(t, out, "Export anyway?")
}

func TestStats(t *testing.T) {
	ws := newWorkspace(t)

	t.Run("summary", func(t *testing.T) {
		out, err := run(t, "", "stats", ws.report, "--config", ws.config)
		require.NoError(t, err)

		assert.Contains(t, out, "Summary:")
		assert.Contains(t, out, "1 occurrences (1 processed, 0 filtered, 0 unknown)")
		assert.Contains(t, out, "2 variable pairs")
		assert.Contains(t, out, "parameter: 4")
		assert.Contains(t, out, "field: 0")
		assert.Contains(t, out, "Edges: 12")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "", "stats", ws.report, "--config", ws.config, "--json")
		require.NoError(t, err)

		var stats graph.Stats
		require.NoError(t, json.Unmarshal([]byte(out), &stats))
		assert.Equal(t, 10, stats.Nodes)
		assert.Equal(t, 2, stats.NodesByKind[graph.KindMethod])
		assert.Equal(t, 8, stats.ContainsEdges)
		assert.Equal(t, 4, stats.RelatedEdges)
	})
}

func TestBatch(t *testing.T) {
	ws := newWorkspace(t)
	root := filepath.Join(ws.dir, "reports")
	for _, rel := range []string{"a.json", "nested/b.json"} {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(report), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0644))

	out, err := run(t, "", "batch", root, "--config", ws.config, "--out", ws.out, "--format", "json")
	require.NoError(t, err)

	assert.Contains(t, out, "Found 2 reports")
	assert.Contains(t, out, "Built 2 graphs")
	assert.FileExists(t, filepath.Join(ws.out, "a", "graph.json"))
	assert.FileExists(t, filepath.Join(ws.out, "nested", "b", "graph.json"))

	t.Run("broken report fails the run", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(root, "broken.json"), []byte("{not json"), 0644))

		_, err := run(t, "", "batch", root, "--config", ws.config, "--out", ws.out, "--format", "json", "--force")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 3 reports failed")
	})

	t.Run("nothing matches", func(t *testing.T) {
		out, err := run(t, "", "batch", root, "--config", ws.config, "--include", "**.xml")
		require.NoError(t, err)
		assert.Contains(t, out, "No reports found")
	})
}

func TestInit(t *testing.T) {
	ws := newWorkspace(t)

	out, err := run(t, "", "init", "--config", ws.config)
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	cfg, err := config.LoadConfig(ws.config)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Theme, cfg.Theme)

	_, err = run(t, "", "init", "--config", ws.config)
	assert.Error(t, err)

	_, err = run(t, "", "init", "--config", ws.config, "--force")
	assert.NoError(t, err)
}

func TestReportDir(t *testing.T) {
	tests := []struct {
		root, report, want string
	}{
		{"reports", "reports/a.json", filepath.Join("out", "a")},
		{"reports", "reports/nested/b.json", filepath.Join("out", "nested", "b")},
		{"reports", "elsewhere/c.json", filepath.Join("out", "c")},
	}

	for _, tt := range tests {
		t.Run(tt.report, func(t *testing.T) {
			assert.Equal(t, tt.want, reportDir("out", tt.root, filepath.FromSlash(tt.report)))
		})
	}
}
