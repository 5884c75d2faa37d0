// Package watch reruns a callback when files under a directory change.
package watch

import (
	"context"
	"errors"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"io/fs"
	"path/filepath"
	"time"
)

const DefaultDebounce = 200 * time.Millisecond

// Watcher calls OnChange once per burst of write, create, remove or
// rename events under Dir. Errors from OnChange are logged and watching
// continues.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	OnChange func(ctx context.Context) error
	Logger   zerolog.Logger
}

// Run blocks until ctx is done or the underlying watcher fails to start.
func (w *Watcher) Run(ctx context.Context) error {
	if w.OnChange == nil {
		return errors.New("watch: missing OnChange")
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := addTree(fw, w.Dir); err != nil {
		return err
	}
	w.Logger.Info().Str("dir", w.Dir).Dur("debounce", debounce).Msg("watching for changes")

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Has(fsnotify.Create) {
				w.watchCreated(fw, ev.Name)
			}
			w.Logger.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("change")
			timer.Reset(debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn().Err(err).Msg("watcher error")
		case <-timer.C:
			if err := w.OnChange(ctx); err != nil {
				w.Logger.Error().Err(err).Msg("rebuild failed")
			}
		}
	}
}

// watchCreated adds a watch for a newly created directory. A path that is
// already gone is skipped; any other failure leaves that subtree unwatched
// and is logged.
func (w *Watcher) watchCreated(fw *fsnotify.Watcher, path string) {
	err := addTree(fw, path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return
	}
	w.Logger.Warn().Err(err).Str("path", path).Msg("cannot watch new directory")
}

// addTree watches root and every directory below it. A root that is a
// plain file is ignored.
func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}
