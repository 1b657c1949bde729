package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch runs a check of paths, then re-runs it after every burst of
// relevant file changes until ctx is done. report is called with each
// run's results from a single goroutine.
func (c *Checker) Watch(ctx context.Context, paths []string, debounce time.Duration, report func([]Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	explicit := make(map[string]bool)
	for _, p := range paths {
		if err := c.watchPath(watcher, p, explicit); err != nil {
			return err
		}
	}

	rerun := func() error {
		files, err := c.Collect(paths)
		if err != nil {
			return err
		}
		results, err := c.Run(ctx, files)
		if err != nil {
			return err
		}
		report(results)
		return nil
	}

	if err := rerun(); err != nil {
		return err
	}

	// Timer fires are delivered on this channel so report stays on the
	// watch goroutine.
	var debounceTimer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = c.watchPath(watcher, event.Name, explicit)
					continue
				}
			}
			if !explicit[filepath.Clean(event.Name)] && !c.Matches(event.Name) {
				continue
			}
			c.logger.Debug("change detected", "path", event.Name, "op", event.Op.String())

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			if err := rerun(); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				c.logger.Warn("re-check failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watcher error", "error", err)
		}
	}
}

// watchPath adds p to the watcher: directories recursively, files via
// their parent directory so editors that replace files are still seen.
func (c *Checker) watchPath(watcher *fsnotify.Watcher, p string, explicit map[string]bool) error {
	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", p, err)
	}
	if !info.IsDir() {
		explicit[filepath.Clean(p)] = true
		return watcher.Add(filepath.Dir(p))
	}

	return filepath.Walk(p, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != p && len(info.Name()) > 1 && info.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}
