// Package discover finds data-clump reports below a directory.
package discover

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrNotDirectory indicates the batch root is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrInvalidPattern indicates an include or exclude glob did not compile.
	ErrInvalidPattern = errors.New("invalid glob pattern")
)

// DefaultIgnoreDirs are directory names never descended into.
var DefaultIgnoreDirs = []string{
	"node_modules", "vendor", ".git", ".svn", ".hg",
	"dist", "build", "bin", "tmp", "temp",
	".idea", ".vscode", ".vs",
	"weaver-out",
}

// Options configures a report search.
type Options struct {
	// Include globs select files by slash-separated path relative to the
	// root. Empty means every file.
	Include []string
	Exclude []string
	// IgnoreDirs defaults to DefaultIgnoreDirs.
	IgnoreDirs    []string
	IncludeHidden bool
	// SkipPaths are directories skipped wherever they appear, typically the
	// output directory of a batch run.
	SkipPaths []string
}

// Matcher applies include and exclude globs to relative paths.
type Matcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

// NewMatcher compiles the patterns with '/' as separator, so '*' stays
// within one path segment and '**' crosses segments.
func NewMatcher(include, exclude []string) (*Matcher, error) {
	inc, err := compile(include)
	if err != nil {
		return nil, err
	}
	exc, err := compile(exclude)
	if err != nil {
		return nil, err
	}
	return &Matcher{include: inc, exclude: exc}, nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Match reports whether rel is included and not excluded.
func (m *Matcher) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, g := range m.exclude {
		if g.Match(rel) {
			return false
		}
	}
	if len(m.include) == 0 {
		return true
	}
	for _, g := range m.include {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// Reports walks root and returns matching files in lexical order.
func Reports(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	matcher, err := NewMatcher(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	ignoreDirs := opts.IgnoreDirs
	if len(ignoreDirs) == 0 {
		ignoreDirs = DefaultIgnoreDirs
	}
	skip := make(map[string]bool, len(opts.SkipPaths))
	for _, p := range opts.SkipPaths {
		if abs, err := filepath.Abs(p); err == nil {
			skip[abs] = true
		}
	}

	var reports []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		name := d.Name()
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			for _, ignore := range ignoreDirs {
				if name == ignore {
					return filepath.SkipDir
				}
			}
			if abs, err := filepath.Abs(path); err == nil && skip[abs] {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if matcher.Match(rel) {
			reports = append(reports, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}
