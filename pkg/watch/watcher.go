package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"mercator-hq/lexicon/pkg/config"

	"github.com/fsnotify/fsnotify"
)

// Config contains configuration for the file watcher.
type Config struct {
	// Path is the file or directory to watch
	Path string

	// Debounce is the quiet period after the last event before the
	// callback runs
	Debounce time.Duration

	// Extensions is the list of file extensions to watch (e.g., ".lex")
	Extensions []string

	// SkipHidden controls whether to skip hidden files and directories
	SkipHidden bool
}

// ConfigFrom builds a watcher configuration for path from the application
// configuration.
func ConfigFrom(path string, cfg *config.Config) *Config {
	return &Config{
		Path:       path,
		Debounce:   cfg.Watch.Debounce,
		Extensions: slices.Clone(cfg.Notation.Extensions),
		SkipHidden: true,
	}
}

// Event describes the change that triggered a callback.
type Event struct {
	// Path is the changed file
	Path string

	// Op is "create", "write", "remove" or "rename"
	Op string
}

// FileWatcher watches notation files and calls back after changes settle.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	config   *Config
	debounce *Debouncer

	// file is set when a single file is watched through its directory
	file string

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewFileWatcher creates a new file watcher. A nil logger discards output.
func NewFileWatcher(cfg *Config, logger *slog.Logger) (*FileWatcher, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, fmt.Errorf("watch path is required")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = config.DefaultWatchDebounce
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = slices.Clone(config.DefaultExtensions)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		logger:   logger,
		config:   cfg,
		debounce: NewDebouncer(cfg.Debounce),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Watch blocks until ctx is cancelled or Stop is called, invoking onChange
// once per settled burst of events. Callback errors are logged and do not
// stop the watcher.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func(Event) error) error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	fw.running = true
	fw.mu.Unlock()

	defer close(fw.doneCh)

	if err := fw.addPath(fw.config.Path); err != nil {
		return fmt.Errorf("failed to watch %q: %w", fw.config.Path, err)
	}

	fw.logger.Info("File watcher started",
		"path", fw.config.Path,
		"debounce_ms", fw.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			fw.logger.Info("File watcher stopped (context cancelled)")
			return nil

		case <-fw.stopCh:
			fw.logger.Info("File watcher stopped")
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !fw.shouldProcessEvent(event) {
				continue
			}

			// New subdirectories join the watch.
			if event.Has(fsnotify.Create) && fw.file == "" {
				if isDir, err := isDirectory(event.Name); err == nil && isDir {
					if err := fw.addDirectory(event.Name); err != nil {
						fw.logger.Warn("Failed to watch new directory", "path", event.Name, "error", err)
					}
					continue
				}
			}

			ev := Event{Path: event.Name, Op: opName(event.Op)}
			fw.logger.Debug("File event detected", "path", ev.Path, "op", ev.Op)

			fw.debounce.Trigger(func() {
				if err := onChange(ev); err != nil {
					fw.logger.Error("Change handler failed", "path", ev.Path, "error", err)
				}
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("File watcher error", "error", err)
		}
	}
}

// Stop stops the watcher, cancels any pending callback and releases the
// underlying fsnotify watcher. It is safe to call more than once.
func (fw *FileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		fw.mu.Lock()
		running := fw.running
		fw.mu.Unlock()

		close(fw.stopCh)
		if running {
			<-fw.doneCh
		}
		fw.debounce.Stop()

		if cerr := fw.watcher.Close(); cerr != nil {
			err = fmt.Errorf("failed to close watcher: %w", cerr)
		}
	})
	return err
}

func (fw *FileWatcher) addPath(path string) error {
	isDir, err := isDirectory(path)
	if err != nil {
		return err
	}
	if isDir {
		return fw.addDirectory(path)
	}

	fw.file = filepath.Clean(path)
	return fw.watcher.Add(filepath.Dir(fw.file))
}

// addDirectory adds a directory and all subdirectories to the watcher.
func (fw *FileWatcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if fw.config.SkipHidden && path != dir && isHidden(path) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		fw.logger.Debug("Watching directory", "path", path)
		return nil
	})
}

func (fw *FileWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if fw.file != "" {
		return filepath.Clean(event.Name) == fw.file
	}
	if fw.config.SkipHidden && isHidden(event.Name) {
		return false
	}
	if event.Has(fsnotify.Create) {
		if isDir, err := isDirectory(event.Name); err == nil && isDir {
			return true
		}
	}
	return fw.hasValidExtension(filepath.Ext(event.Name))
}

func (fw *FileWatcher) hasValidExtension(ext string) bool {
	for _, valid := range fw.config.Extensions {
		if strings.EqualFold(ext, valid) {
			return true
		}
	}
	return false
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return "write"
	}
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func isDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
