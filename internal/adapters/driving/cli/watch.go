package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/personarank/internal/logger"
)

// watchDebounce collapses bursts of file events into one run.
const watchDebounce = 500 * time.Millisecond

// watch runs fn once, then again after every settled change under paths.
// Files are watched through their parent directory so editors that
// replace a file on save keep triggering runs. Changes to skip are ignored.
func watch(ctx context.Context, cmd *cobra.Command, paths []string, skip string, fn func(context.Context) error) error {
	rerun := func() {
		if err := fn(ctx); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}
	rerun()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range watchDirs(paths) {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		logger.Debug("Watching %s", dir)
	}

	cmd.Println("Watching for changes. Press Ctrl+C to stop.")
	ignore := filepath.Clean(skip)
	return watchLoop(ctx, watcher.Events, watcher.Errors, watchDebounce, func(ev fsnotify.Event) bool {
		return relevantEvent(ev, ignore)
	}, rerun)
}

// watchDirs maps each path to the directory to watch, without duplicates.
// Anything that is not an existing directory is watched through its parent.
func watchDirs(paths []string) []string {
	var dirs []string
	for _, p := range paths {
		if p == "" {
			continue
		}
		dir := filepath.Clean(p)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			dir = filepath.Dir(dir)
		}
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// relevantEvent reports whether ev should trigger a run. Hidden files,
// permission changes and the report itself are skipped.
func relevantEvent(ev fsnotify.Event, skip string) bool {
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}
	if ev.Op == fsnotify.Chmod {
		return false
	}
	return skip == "" || skip == "." || filepath.Clean(ev.Name) != skip
}

// watchLoop calls trigger once events stop arriving for debounce.
// It returns when ctx is done or either channel closes.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	debounce time.Duration,
	relevant func(fsnotify.Event) bool,
	trigger func(),
) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			logger.Debug("Change: %s", ev)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case <-fire:
			fire = nil
			trigger()
		}
	}
}
