package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/simonhull/firebird-suite/weaver/pkg/graph"
	"github.com/simonhull/firebird-suite/weaver/pkg/logger"
)

// ErrOutputExists is returned when a staged file already exists and the
// transaction is not forced.
var ErrOutputExists = errors.New("output file already exists")

// Transaction stages rendered outputs and writes them together. Files
// written before a failure are removed again.
type Transaction struct {
	files     []stagedFile
	committed bool
	logger    logger.Logger
}

type stagedFile struct {
	path    string
	format  Format
	content []byte
	// existed records whether path was present before Commit; rollback
	// only removes files this transaction created.
	existed bool
	written bool
}

// NewTransaction creates an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{logger: logger.Default()}
}

// WithLogger sets the logger used for commit and rollback messages.
func (t *Transaction) WithLogger(log logger.Logger) *Transaction {
	t.logger = log
	return t
}

// Stage renders g with e into memory under dir.
func (t *Transaction) Stage(dir string, e Exporter, g *graph.Graph) error {
	var buf bytes.Buffer
	if err := e.Export(&buf, g); err != nil {
		return fmt.Errorf("rendering %s: %w", e.Format(), err)
	}
	t.files = append(t.files, stagedFile{
		path:    filepath.Join(dir, e.Filename()),
		format:  e.Format(),
		content: buf.Bytes(),
	})
	return nil
}

// Paths returns the staged paths in staging order.
func (t *Transaction) Paths() []string {
	paths := make([]string, len(t.files))
	for i, f := range t.files {
		paths[i] = f.path
	}
	return paths
}

// Conflicts returns staged paths that already exist on disk.
func (t *Transaction) Conflicts() []string {
	var conflicts []string
	for _, f := range t.files {
		if _, err := os.Stat(f.path); err == nil {
			conflicts = append(conflicts, f.path)
		}
	}
	return conflicts
}

// Commit writes every staged file. Without force an existing target aborts
// the commit before anything is written.
func (t *Transaction) Commit(force bool) error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	if !force {
		if conflicts := t.Conflicts(); len(conflicts) > 0 {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrOutputExists, conflicts[0])
		}
	}

	for i := range t.files {
		f := &t.files[i]
		if _, err := os.Stat(f.path); err == nil {
			f.existed = true
		}

		dir := filepath.Dir(f.path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.rollback()
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}

		if err := os.WriteFile(f.path, f.content, 0644); err != nil {
			t.rollback()
			return fmt.Errorf("writing %s: %w", f.path, err)
		}

		t.logger.Debug("Wrote output",
			logger.F("format", f.format),
			logger.F("path", f.path),
			logger.F("bytes", len(f.content)))
		f.written = true
	}

	t.committed = true
	return nil
}

// Rollback removes files written by an uncommitted transaction. It is safe
// to defer.
func (t *Transaction) Rollback() {
	if t.committed {
		return
	}
	t.rollback()
}

func (t *Transaction) rollback() {
	for i := range t.files {
		f := &t.files[i]
		if !f.written || f.existed {
			continue
		}
		if err := os.Remove(f.path); err == nil {
			t.logger.Debug("Rolled back output", logger.F("path", f.path))
		}
		f.written = false
	}
}

// WriteAll renders g with every exporter and commits the outputs to dir.
// It returns the written paths.
func WriteAll(dir string, g *graph.Graph, exporters []Exporter, force bool, log logger.Logger) ([]string, error) {
	if log == nil {
		log = logger.Default()
	}
	tx := NewTransaction().WithLogger(log)
	defer tx.Rollback()

	for _, e := range exporters {
		if err := tx.Stage(dir, e, g); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(force); err != nil {
		return nil, err
	}
	return tx.Paths(), nil
}
