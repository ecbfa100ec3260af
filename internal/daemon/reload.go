package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/pipecue/internal/config"
	"github.com/jmylchreest/pipecue/internal/notify"
)

// ConfigWatcher watches the config file and hands valid new configs to a
// callback. Invalid configs are reported and the old one stays in effect.
type ConfigWatcher struct {
	logger     *slog.Logger
	configPath string
	notifier   notify.Notifier
	onReload   func(cfg *config.Config)
}

// NewConfigWatcher creates a ConfigWatcher for path.
func NewConfigWatcher(path string, notifier notify.Notifier, onReload func(cfg *config.Config), logger *slog.Logger) *ConfigWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = notify.NewLog(logger)
	}
	return &ConfigWatcher{
		logger:     logger,
		configPath: path,
		notifier:   notifier,
		onReload:   onReload,
	}
}

// Run watches until ctx is done.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory containing the file (more reliable for editors
	// that replace the file on save)
	dir := filepath.Dir(w.configPath)
	if err := watcher.Add(dir); err != nil {
		w.logger.Debug("config directory not watchable, hot reload disabled", "dir", dir, "error", err)
		<-ctx.Done()
		return nil
	}

	w.logger.Debug("config watcher started", "path", w.configPath)
	filename := filepath.Base(w.configPath)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

// reload loads and validates the config file.
func (w *ConfigWatcher) reload() {
	cfg, err := config.LoadConfig(w.configPath)
	if err != nil {
		w.logger.Warn("config reload failed", "path", w.configPath, "error", err)
		w.notifier.Notify("config-error", "Configuration Error",
			"Failed to reload configuration: "+err.Error(), notify.LevelWarning)
		return
	}

	w.logger.Info("config reloaded", "path", w.configPath)
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
