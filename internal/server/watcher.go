package server

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the site's content directories for changes and invokes a
// callback after debouncing rapid successive events. Paths matched by the
// ignore predicate are never watched and never trigger the callback, which
// keeps the output directory from feeding rebuilds back into itself.
type Watcher struct {
	paths    []string
	ignore   func(string) bool
	onChange func()
	debounce time.Duration
	watcher  *fsnotify.Watcher
	done     chan struct{}
	once     sync.Once
}

// NewWatcher creates a Watcher over the given paths. ignore may be nil.
func NewWatcher(paths []string, debounce time.Duration, ignore func(string) bool, onChange func()) *Watcher {
	if ignore == nil {
		ignore = func(string) bool { return false }
	}
	return &Watcher{
		paths:    paths,
		ignore:   ignore,
		onChange: onChange,
		debounce: debounce,
		done:     make(chan struct{}),
	}
}

// DefaultIgnore returns the ignore predicate applied during serve: the
// output directory, hidden path segments, and double-underscore segments.
func DefaultIgnore(outputPath string) func(string) bool {
	return func(path string) bool {
		if outputPath != "" {
			if rel, err := filepath.Rel(outputPath, path); err == nil && !strings.HasPrefix(rel, "..") {
				return true
			}
		}
		for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
			if seg == "." || seg == ".." || seg == "" {
				continue
			}
			if strings.HasPrefix(seg, ".") || strings.Contains(seg, "__") {
				return true
			}
		}
		return false
	}
}

// Start begins watching. It blocks until Stop is called or a fatal error
// occurs.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.watcher = fsw

	for _, p := range w.paths {
		info, err := os.Stat(p)
		if err != nil {
			// Path may not exist (e.g. no static directory yet); skip.
			continue
		}
		if info.IsDir() {
			if err := w.addRecursive(p); err != nil {
				log.Printf("warning: failed to watch %s: %v", p, err)
			}
		} else if !w.ignore(p) {
			if err := fsw.Add(p); err != nil {
				log.Printf("warning: failed to watch %s: %v", p, err)
			}
		}
	}

	var timer *time.Timer
	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if w.ignore(event.Name) {
				continue
			}

			// Newly created directories need their own watches.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.addRecursive(event.Name)
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.onChange)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher error: %v", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return fsw.Close()
		}
	}
}

// Stop signals the watcher to stop monitoring files.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.done)
	})
}

// addRecursive adds a directory tree to the watcher, skipping ignored paths.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignore(path) {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}
