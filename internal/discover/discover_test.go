package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	rels := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}

func TestMatcher(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		path    string
		want    bool
	}{
		{"double star top level", []string{"**.json"}, nil, "report.json", true},
		{"double star nested", []string{"**.json"}, nil, "a/b/report.json", true},
		{"single star stays in segment", []string{"*.json"}, nil, "a/report.json", false},
		{"wrong extension", []string{"**.json"}, nil, "notes.txt", false},
		{"excluded", []string{"**.json"}, []string{"**/package.json"}, "web/package.json", false},
		{"exclude wins over include", []string{"reports/**"}, []string{"reports/old/**"}, "reports/old/x.json", false},
		{"no include means all", nil, nil, "anything.bin", true},
		{"alternatives", []string{"**.{json,dc}"}, nil, "x/y.dc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatcher(tt.include, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(tt.path))
		})
	}
}

func TestNewMatcher_InvalidPattern(t *testing.T) {
	_, err := NewMatcher([]string{"[unclosed"}, nil)
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = NewMatcher(nil, []string{"[bad"})
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestReports(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root,
		"b.json",
		"a.json",
		"nested/deep/report.json",
		"nested/readme.md",
		"node_modules/pkg/package.json",
		".cache/hidden.json",
		"weaver-out/a/graph.json",
		"custom-out/b/graph.json",
	)

	got, err := Reports(root, Options{
		Include:   []string{"**.json"},
		SkipPaths: []string{filepath.Join(root, "custom-out")},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.json", "b.json", "nested/deep/report.json"}, relPaths(t, root, got))
}

func TestReports_Options(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, "a.json", ".hidden/b.json", "skip/c.json")

	got, err := Reports(root, Options{
		Include:       []string{"**.json"},
		Exclude:       []string{"skip/**"},
		IncludeHidden: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden/b.json", "a.json"}, relPaths(t, root, got))
}

func TestReports_Errors(t *testing.T) {
	root := t.TempDir()
	createFiles(t, root, "file.json")

	_, err := Reports(filepath.Join(root, "file.json"), Options{})
	assert.ErrorIs(t, err, ErrNotDirectory)

	_, err = Reports(filepath.Join(root, "missing"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Reports(root, Options{Include: []string{"[bad"}})
	assert.ErrorIs(t, err, ErrInvalidPattern)
}
