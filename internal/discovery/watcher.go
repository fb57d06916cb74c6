package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"launchpad/internal/eventbus"
	"launchpad/internal/logging"
)

// DefaultRescanDelay is how long the folder must stay quiet before a rescan
const DefaultRescanDelay = 500 * time.Millisecond

// Watcher requests a rescan whenever the launch folder changes
type Watcher struct {
	bus      eventbus.EventBus
	root     string
	maxDepth int
	delay    time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for root
func NewWatcher(bus eventbus.EventBus, root string, maxDepth int) *Watcher {
	if maxDepth <= 0 {
		maxDepth = 3
	}
	return &Watcher{
		bus:      bus,
		root:     root,
		maxDepth: maxDepth,
		delay:    DefaultRescanDelay,
	}
}

// Run blocks until ctx is done, publishing ScanRequestedEvent after bursts
// of filesystem activity.
func (w *Watcher) Run(ctx context.Context) error {
	log := logging.FromContext(logging.WithComponent(ctx, "discovery-watch"))

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addTree(fw); err != nil {
		return err
	}
	log.Debug().Str("root", w.root).Msg("watching launch folder")

	defer w.stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Chmod) {
				continue
			}
			if event.Has(fsnotify.Create) {
				// new subdirectories need their own watch
				if err := w.addDir(fw, event.Name); err != nil {
					log.Debug().Err(err).Str("path", event.Name).Msg("not watching new path")
				}
			}
			w.schedule()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, func() {
		w.bus.Publish(eventbus.ScanRequestedEvent{Roots: []string{w.root}})
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) addTree(fw *fsnotify.Watcher) error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == w.root {
				return fmt.Errorf("failed to watch %s: %w", w.root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && (skipDir(d.Name()) || strings.EqualFold(filepath.Ext(path), ".app")) {
			return fs.SkipDir
		}
		if w.depth(path) > w.maxDepth {
			return fs.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) addDir(fw *fsnotify.Watcher, path string) error {
	if w.depth(path) > w.maxDepth || skipDir(filepath.Base(path)) {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return err
	}
	return fw.Add(path)
}

func (w *Watcher) depth(path string) int {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
