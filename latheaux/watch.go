package latheaux

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SceneWatcher reloads scene files when they change on disk.
type SceneWatcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	debounce  time.Duration
	callbacks map[string]func(Scene, error)
	timers    map[string]*time.Timer
}

// NewSceneWatcher creates a watcher that waits for debounce after the last
// change to a file before reloading it.
func NewSceneWatcher(debounce time.Duration) (*SceneWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &SceneWatcher{
		watcher:   watcher,
		debounce:  debounce,
		callbacks: make(map[string]func(Scene, error)),
		timers:    make(map[string]*time.Timer),
	}, nil
}

// Add registers a scene file. onChange receives the reloaded scene or the error
// encountered loading it. The file's directory is watched so editors that
// replace files on save are also noticed.
func (sw *SceneWatcher) Add(path string, onChange func(Scene, error)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if err := sw.watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", absPath, err)
	}
	sw.callbacks[absPath] = onChange
	return nil
}

// Run dispatches file events until ctx is done or the watcher is closed.
// Watcher errors are reported through onError, which may be nil.
func (sw *SceneWatcher) Run(ctx context.Context, onError func(error)) error {
	for {
		select {
		case <-ctx.Done():
			sw.stopTimers()
			return ctx.Err()
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				sw.handleFileChange(event.Name)
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}

func (sw *SceneWatcher) handleFileChange(name string) {
	absPath, err := filepath.Abs(name)
	if err != nil {
		return
	}
	sw.mu.Lock()
	defer sw.mu.Unlock()
	callback, exists := sw.callbacks[absPath]
	if !exists {
		return
	}
	if timer, exists := sw.timers[absPath]; exists {
		timer.Stop()
	}
	sw.timers[absPath] = time.AfterFunc(sw.debounce, func() {
		callback(LoadScene(absPath))
	})
}

func (sw *SceneWatcher) stopTimers() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	for _, timer := range sw.timers {
		timer.Stop()
	}
}

// Close stops the watcher.
func (sw *SceneWatcher) Close() error {
	sw.stopTimers()
	return sw.watcher.Close()
}
