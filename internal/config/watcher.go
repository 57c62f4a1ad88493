package config

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// Setting keys passed to OnSettingChanged callbacks.
const (
	KeyIgnoreViewMetadata = "ignore-view-metadata"
	KeyDefaultView        = "default-folder-viewer"
	KeyZoomTable          = "zoom-table"
	KeyBaseDir            = "base-dir"
	KeyReferenceColor     = "reference-color"
	KeyLogLevel           = "log-level"

	// keyZoomDefaultSuffix is appended to a view name, e.g. "list-view.default-zoom-level".
	keyZoomDefaultSuffix = ".default-zoom-level"
)

// ZoomDefaultKey returns the setting key for a view's default zoom level.
func ZoomDefaultKey(view string) string {
	return view + keyZoomDefaultSuffix
}

// Watcher holds the current configuration, reloads it when the file changes,
// and notifies registered callbacks of the settings that changed.
// It implements viewsize.Settings against the latest configuration.
type Watcher struct {
	path   string
	logger hclog.Logger

	mu        sync.RWMutex
	cfg       Config
	callbacks []func(key string)

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher loads the configuration at path and returns a Watcher for it.
// Call Start to begin watching the file.
func NewWatcher(path string, logger hclog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:   filepath.Clean(path),
		logger: logger.Named("config"),
		cfg:    cfg,
	}, nil
}

// OnSettingChanged registers fn to be called with each changed setting key.
// Callbacks run on the watcher goroutine, or on the caller of Reload.
func (w *Watcher) OnSettingChanged(fn func(key string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, fn)
}

// Config returns a snapshot of the current configuration.
func (w *Watcher) Config() Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.cfg
}

// IgnoreViewMetadata implements viewsize.Settings.
func (w *Watcher) IgnoreViewMetadata() bool {
	return w.Config().View.IgnoreViewMetadata()
}

// DefaultView implements viewsize.Settings.
func (w *Watcher) DefaultView() string {
	return w.Config().View.DefaultView()
}

// DefaultZoomLevel implements viewsize.Settings.
func (w *Watcher) DefaultZoomLevel(view string) string {
	return w.Config().View.DefaultZoomLevel(view)
}

// Start watches the configuration file's directory. Editors commonly replace
// files rather than write them in place, so the directory is watched and
// events are filtered by name.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	w.fsw = fsw
	w.done = make(chan struct{})
	w.wg.Add(1)
	go w.loop()

	w.logger.Debug("watching configuration", "path", w.path)
	return nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	if w.fsw == nil {
		return nil
	}
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	w.fsw = nil
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			if _, err := w.Reload(); err != nil {
				w.logger.Warn("keeping previous configuration", "path", w.path, "error", err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// Reload re-reads the configuration and fires callbacks for changed settings.
// On error the previous configuration is kept.
func (w *Watcher) Reload() ([]string, error) {
	next, err := Load(w.path)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	changed := Diff(w.cfg, next)
	w.cfg = next
	callbacks := slices.Clone(w.callbacks)
	w.mu.Unlock()

	for _, key := range changed {
		w.logger.Info("setting changed", "key", key)
		for _, fn := range callbacks {
			fn(key)
		}
	}
	return changed, nil
}

// Diff returns the sorted setting keys that differ between two configurations.
func Diff(prev, next Config) []string {
	var keys []string

	if prev.View.IgnoreMetadata != next.View.IgnoreMetadata {
		keys = append(keys, KeyIgnoreViewMetadata)
	}
	if prev.View.Default != next.View.Default {
		keys = append(keys, KeyDefaultView)
	}
	if !maps.EqualFunc(prev.View.ZoomTable, next.View.ZoomTable, slices.Equal[[]int]) {
		keys = append(keys, KeyZoomTable)
	}
	if prev.BaseDir != next.BaseDir {
		keys = append(keys, KeyBaseDir)
	}
	if prev.ReferenceColor != next.ReferenceColor {
		keys = append(keys, KeyReferenceColor)
	}
	if prev.LogLevel != next.LogLevel {
		keys = append(keys, KeyLogLevel)
	}

	views := make(map[string]struct{})
	for v := range prev.View.ZoomDefaults {
		views[v] = struct{}{}
	}
	for v := range next.View.ZoomDefaults {
		views[v] = struct{}{}
	}
	for v := range views {
		if prev.View.DefaultZoomLevel(v) != next.View.DefaultZoomLevel(v) {
			keys = append(keys, ZoomDefaultKey(v))
		}
	}

	sort.Strings(keys)
	return keys
}
