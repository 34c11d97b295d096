package cerebras

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchConfig follows a config file and sends a reloaded Config whenever the
// file changes, enabling API key rotation without restarting. The channel is
// closed when the context is cancelled. Reloads that fail to parse or that
// produce no visible change are skipped.
// Uses fsnotify for efficient file watching with polling fallback.
func WatchConfig(ctx context.Context, path string) <-chan Config {
	ch := make(chan Config, 1)

	go func() {
		defer close(ch)

		last, err := LoadConfigFile(path)
		if err != nil {
			// Nothing loadable yet; keep watching, first good parse wins.
			last = Config{}
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			watchPolling(ctx, ch, path, last)
			return
		}
		defer watcher.Close()

		// Watch the directory: editors and secret managers replace files
		// rather than writing in place, which drops a file-level watch.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			watcher.Close()
			watchPolling(ctx, ch, path, last)
			return
		}

		base := filepath.Base(path)
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				last = reload(ctx, ch, path, last)

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Usually recoverable; keep watching.
			}
		}
	}()

	return ch
}

// watchPolling is the fallback when fsnotify is unavailable.
func watchPolling(ctx context.Context, ch chan<- Config, path string, last Config) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			last = reload(ctx, ch, path, last)
		}
	}
}

// reload re-reads the file and emits the config if it changed.
func reload(ctx context.Context, ch chan<- Config, path string, last Config) Config {
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return last
	}
	if cfg == last {
		return last
	}
	select {
	case ch <- cfg:
	case <-ctx.Done():
	}
	return cfg
}
