package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/weaver/pkg/graph"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.Graph.LargeGraphThreshold)
	assert.Equal(t, []string{"json", "html"}, cfg.Output.Formats)
	assert.Equal(t, "#fbb900", cfg.Theme.Method.Color)
	assert.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, graph.DefaultTheme(), cfg.GraphTheme())
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	for _, path := range []string{filepath.Join(t.TempDir(), "weaver.yaml"), ""} {
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assertSameSettings(t, DefaultConfig(), cfg)
	}
}

// assertSameSettings compares configs without caring whether empty lists
// are nil.
func assertSameSettings(t *testing.T, want, got *Config) {
	t.Helper()
	assert.Equal(t, want.Log, got.Log)
	assert.Equal(t, want.Output, got.Output)
	assert.Equal(t, want.Graph, got.Graph)
	assert.Equal(t, want.Theme, got.Theme)
	assert.Equal(t, want.Batch.Include, got.Batch.Include)
	assert.ElementsMatch(t, want.Batch.Exclude, got.Batch.Exclude)
	assert.Equal(t, want.Watch, got.Watch)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weaver.yaml")
	content := `
output:
  path: ./graphs
  formats: [mermaid]
graph:
  dedupe_relations: true
  large_graph_threshold: 50
theme:
  method:
    color: "#123456"
watch:
  debounce: 1s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./graphs", cfg.Output.Path)
	assert.Equal(t, []string{"mermaid"}, cfg.Output.Formats)
	assert.True(t, cfg.Graph.DedupeRelations)
	assert.Equal(t, 50, cfg.Graph.LargeGraphThreshold)
	assert.Equal(t, "#123456", cfg.Theme.Method.Color)
	assert.Equal(t, "#000000", cfg.Theme.Method.TextColor, "unset keys keep defaults")
	assert.Equal(t, time.Second, cfg.Watch.Debounce)

	opts := cfg.GraphOptions()
	assert.True(t, opts.DedupeRelations)
	assert.False(t, opts.ApplyToFilePath)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("WEAVER_OUTPUT_PATH", "/tmp/from-env")
	t.Setenv("WEAVER_GRAPH_DARK_MODE", "true")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env", cfg.Output.Path)
	assert.True(t, cfg.Graph.DarkMode)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown format", "output:\n  formats: [pdf]\n"},
		{"bad color", "theme:\n  file:\n    color: grey\n"},
		{"zero threshold", "graph:\n  large_graph_threshold: 0\n"},
		{"bad level", "log:\n  level: loud\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "weaver.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadConfig(path)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "weaver.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output: [unclosed"), 0644))

		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weaver.yaml")

	cfg := DefaultConfig()
	cfg.Output.Formats = []string{"html"}
	cfg.Theme.Field.Color = "#abcdef"
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assertSameSettings(t, cfg, loaded)
}
