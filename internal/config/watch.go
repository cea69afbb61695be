package config

import (
	"context"
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch rereads the file at path whenever it is written or replaced and hands
// every changed Config to apply. Configs are passed on unvalidated so the
// caller can layer its own overrides first; files that fail to parse are
// logged and dropped. It blocks until ctx is done.
func Watch(ctx context.Context, path string, logger *zap.Logger, apply func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config watcher: %w", err)
	}
	defer w.Close()

	// watch the directory: editors often replace the file instead of writing it
	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	logger.Info("config_watch_started", zap.String("path", target))

	// baseline is the file as read, before any caller overrides
	last, err := Read(target)
	if err != nil {
		logger.Warn("config_reload_invalid", zap.String("path", target), zap.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config_watch_error", zap.Error(err))
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			cfg, err := Read(target)
			if err != nil {
				logger.Warn("config_reload_invalid", zap.String("path", target), zap.Error(err))
				continue
			}
			if reflect.DeepEqual(cfg, last) {
				continue
			}
			last = cfg
			logger.Info("config_reloaded",
				zap.String("ping_address", cfg.PingAddress),
				zap.Int("polling_interval_seconds", cfg.PollingIntervalSeconds),
				zap.Int("ping_count", cfg.PingCount),
			)
			apply(cfg)
		}
	}
}
