package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/arxivtools/paperbot/pkg/activity"
	"github.com/arxivtools/paperbot/pkg/config"
)

// WatchConfig reloads the global configuration whenever the config file
// is written. The watch is on the containing directory, so a file that
// only appears after startup is still picked up. Blocks until ctx is
// cancelled.
func WatchConfig(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	log.Printf("watching %s for configuration changes", path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				reloadConfig()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watcher error: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func reloadConfig() {
	before := config.Get().Keywords

	if err := config.Reload(); err != nil {
		log.Printf("failed to reload configuration: %v", err)
		return
	}

	after := config.Get().Keywords
	log.Printf("configuration reloaded, %d keyword(s) active", len(after))

	if !equalKeywords(before, after) {
		activity.Log(activity.KeywordsEvent{Old: before, New: after, Source: "file"})
	}
}

func equalKeywords(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
