// ============================================================================
// rspm - Script Package Metadata
// ============================================================================
//
// Package:     scan
// Description: fsnotify based watcher that reparses changed script files
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// StartWatching watches the directories under roots and reparses matching
// files after they change. Events for the same file within the debounce
// delay are coalesced into one reload. The watch loop runs until ctx is
// cancelled or Stop is called.
func (l *Loader) StartWatching(ctx context.Context, roots ...string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	dirs, err := watchDirs(roots)
	if err != nil {
		watcher.Close()
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	l.watcher = watcher
	l.stopCh = make(chan struct{})
	l.stopOnce = &sync.Once{}
	l.doneCh = make(chan struct{})
	l.running = true
	l.logger.Info("Started watching for script changes", "dirs", len(dirs), "debounce", l.opts.Debounce.String())

	go l.watchLoop(ctx)

	return nil
}

// Stop stops the watcher and waits for the watch loop to exit
func (l *Loader) Stop() {
	l.mu.RLock()
	stopCh, stopOnce, doneCh := l.stopCh, l.stopOnce, l.doneCh
	l.mu.RUnlock()
	if stopCh == nil {
		return
	}

	stopOnce.Do(func() { close(stopCh) })
	<-doneCh
}

// Done is closed when the watch loop has exited. It is nil before
// StartWatching.
func (l *Loader) Done() <-chan struct{} {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.doneCh
}

// watchDirs lists every non-hidden directory under roots. For file roots
// the containing directory is watched.
func watchDirs(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}
		if !info.IsDir() {
			seen[filepath.Dir(root)] = true
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			seen[path] = true
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs, nil
}

// watchLoop handles file system events
func (l *Loader) watchLoop(ctx context.Context) {
	l.mu.RLock()
	watcher, stopCh, doneCh := l.watcher, l.stopCh, l.doneCh
	l.mu.RUnlock()

	defer func() {
		watcher.Close()
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
		close(doneCh)
	}()

	pending := make(map[string]fsnotify.Op)
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping file watcher (context cancelled)")
			return

		case <-stopCh:
			l.logger.Info("Stopping file watcher (stop signal)")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					l.addDir(watcher, event.Name)
					continue
				}
			}
			if !l.matches(event.Name) {
				continue
			}

			pending[filepath.Clean(event.Name)] |= event.Op
			fire = time.After(l.opts.Debounce)

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			for _, path := range paths {
				l.handleFileEvent(path, pending[path])
			}
			pending = make(map[string]fsnotify.Op)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			l.logger.Error("Watcher error", "error", err)
		}
	}
}

// addDir starts watching a directory created after the watcher started
func (l *Loader) addDir(watcher *fsnotify.Watcher, dir string) {
	if strings.HasPrefix(filepath.Base(dir), ".") {
		return
	}
	dirs, err := watchDirs([]string{dir})
	if err != nil {
		l.logger.Warn("Failed to scan new directory", "dir", dir, "error", err)
		return
	}
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			l.logger.Warn("Failed to watch new directory", "dir", d, "error", err)
		}
	}
}

// handleFileEvent reparses a changed file or drops a removed one. The
// current state on disk decides, not the coalesced event ops. Files whose
// content did not change since the last good parse are not reported.
func (l *Loader) handleFileEvent(path string, op fsnotify.Op) {
	if _, err := os.Stat(path); err != nil {
		if l.forget(path) {
			l.logger.Info("Script removed", "file", path, "op", op.String())
			if l.onDelete != nil {
				l.onDelete(path)
			}
		}
		return
	}

	prev, known := l.Get(path)
	result := l.Load(path)
	if result.Cached && known && prev.OK() {
		l.logger.Debug("Script touched without content change", "file", path, "op", op.String())
		return
	}

	l.logger.Info("Script changed, reparsed", "file", path, "op", op.String())
	if l.onChange != nil {
		l.onChange(result)
	}
}
