// ============================================================================
// rspm - Script Package Metadata
// ============================================================================
//
// Package:     scan
// Description: Concurrent multi-file script loader with hot-reload support
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/msto63/rspm/pkg/core/cache"
	"github.com/msto63/rspm/pkg/core/logging"
	"github.com/msto63/rspm/pkg/script/parser"
)

// ErrNoFiles is returned when discovery finds no script files
var ErrNoFiles = errors.New("no script files found")

// Result is the outcome of parsing one file. Exactly one of Package and Err
// is set.
type Result struct {
	Path     string
	Package  *parser.Package
	Err      error
	Duration time.Duration
	LoadedAt time.Time
	Cached   bool // content was unchanged since an earlier successful parse
}

// OK reports whether the file parsed successfully
func (r *Result) OK() bool {
	return r.Err == nil
}

// Options configures a Loader
type Options struct {
	// Extensions selects files during directory walks (default ".rsc")
	Extensions []string

	// Exclude holds base name globs that are skipped during walks
	Exclude []string

	// Workers bounds the number of files parsed at once (default NumCPU)
	Workers int

	// Debounce delays reloads after file events (default 300ms)
	Debounce time.Duration

	// CacheSize bounds the number of parsed packages kept for unchanged
	// content (default 1024)
	CacheSize int

	// Parser is the template for every per-file parser. Name is derived
	// from the file path and Logger is replaced by the loader's logger.
	Parser parser.Options

	Logger *logging.Logger
}

// Loader discovers and parses script files. Every file gets its own parser;
// files never see each other's declarations unless Parser.Globals is set.
type Loader struct {
	mu       sync.RWMutex
	results  map[string]*Result // path -> last result
	opts     Options
	logger   *logging.Logger
	runID    string
	cache    *cache.Cache[*parser.Package]
	watcher  *fsnotify.Watcher
	onChange func(result *Result)
	onDelete func(path string)
	stopCh   chan struct{}
	stopOnce *sync.Once
	doneCh   chan struct{}
	running  bool
}

// NewLoader creates a new loader. Each loader carries a random run ID that
// is attached to all of its log entries.
func NewLoader(opts Options) *Loader {
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".rsc"}
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetDefault()
	}

	runID := uuid.New().String()
	return &Loader{
		results: make(map[string]*Result),
		opts:    opts,
		logger:  opts.Logger.WithFields(logging.Fields{"component": "scan", "run_id": runID}),
		runID:   runID,
		cache:   cache.New[*parser.Package](cache.Config{MaxItems: opts.CacheSize}),
	}
}

// RunID returns the identifier of this loader run
func (l *Loader) RunID() string {
	return l.runID
}

// SetOnChange sets the callback invoked after a watched file was reparsed
func (l *Loader) SetOnChange(fn func(result *Result)) {
	l.onChange = fn
}

// SetOnDelete sets the callback invoked after a watched file disappeared
func (l *Loader) SetOnDelete(fn func(path string)) {
	l.onDelete = fn
}

// Discover returns the script files under roots in sorted order. Roots that
// are files are taken as they are; directories are walked recursively,
// skipping hidden directories and applying the extension and exclude filters.
func (l *Loader) Discover(roots ...string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if l.matches(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// matches applies the extension and exclude filters to a file path
func (l *Loader) matches(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range l.opts.Exclude {
		if ok, _ := filepath.Match(pattern, base); ok {
			return false
		}
	}
	ext := filepath.Ext(base)
	for _, want := range l.opts.Extensions {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// LoadAll discovers and parses all files under roots with a bounded worker
// pool. Results are returned in path order, failed files included. The
// returned error is only set when discovery fails or ctx is cancelled.
func (l *Loader) LoadAll(ctx context.Context, roots ...string) ([]*Result, error) {
	files, err := l.Discover(roots...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, strings.Join(roots, ", "))
	}

	timer := l.logger.StartTimer("load").WithLevel(logging.LevelInfo).WithField("files", len(files))

	workers := l.opts.Workers
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]*Result, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = l.Load(files[i])
			}
		}()
	}

dispatch:
	for i := range files {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		timer.StopWithError(err)
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}
	timer.WithField("failed", failed).Stop()

	return results, nil
}

// Load parses a single file and records the result. Packages are cached
// by path and content, so unchanged files are not parsed again.
func (l *Loader) Load(path string) *Result {
	path = filepath.Clean(path)
	start := time.Now()
	result := &Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = fmt.Errorf("open %s: %w", path, err)
	} else {
		key := cache.Key([]byte(path), data)
		if pkg, ok := l.cache.Get(key); ok {
			result.Package = pkg
			result.Cached = true
		} else {
			opts := l.opts.Parser
			opts.Name = parser.PackageName(path)
			opts.Logger = l.logger
			result.Package, result.Err = parser.ParseSource(path, bytes.NewReader(data), opts)
			if result.Err == nil {
				l.cache.Set(key, result.Package)
			}
		}
	}
	result.Duration = time.Since(start)
	result.LoadedAt = time.Now()

	switch {
	case result.Err != nil:
		l.logger.Warn("Failed to parse script", "file", path, "error", result.Err.Error())
	case result.Cached:
		l.logger.Debug("Script unchanged, using cached package", "file", path)
	default:
		l.logger.Debug("Script parsed", "file", path, "package", result.Package.Name, "nodes", result.Package.Len())
	}

	l.mu.Lock()
	l.results[path] = result
	l.mu.Unlock()

	return result
}

// Get returns the last result for path
func (l *Loader) Get(path string) (*Result, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	r, ok := l.results[filepath.Clean(path)]
	return r, ok
}

// Results returns the last result of every known file in path order
func (l *Loader) Results() []*Result {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*Result, 0, len(l.results))
	for _, r := range l.results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Globals merges the global variables and functions of all successfully
// parsed files in path order, so later paths shadow earlier ones.
func (l *Loader) Globals() *parser.Table {
	var tables []*parser.Table
	for _, r := range l.Results() {
		if r.OK() {
			tables = append(tables, r.Package.Table)
		}
	}
	return parser.MergeGlobals(tables...)
}

func (l *Loader) forget(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.results[path]; !ok {
		return false
	}
	delete(l.results, path)
	return true
}
