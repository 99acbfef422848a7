package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/howeyc/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// defaultWatchDelay is how long the watcher waits for more changes before it
// updates the library.
const defaultWatchDelay = 2 * time.Second

// Watcher keeps the albums in the library in sync with the directories under
// its roots for as long as it is running. Changed directories are scanned
// again and albums whose directories went away are removed.
type Watcher struct {
	lib     *LocalLibrary
	scanner *Scanner
	log     zerolog.Logger

	// Delay is the quiet period after the last filesystem event before the
	// changed directories are refreshed. Copying a whole album produces many
	// events and it is refreshed only once.
	Delay time.Duration
}

// NewWatcher returns a Watcher which stores into lib the albums found by scanner.
func NewWatcher(lib *LocalLibrary, scanner *Scanner, log zerolog.Logger) *Watcher {
	return &Watcher{
		lib:     lib,
		scanner: scanner,
		log:     log,
		Delay:   defaultWatchDelay,
	}
}

// Watch watches the directory trees under roots and refreshes the library on
// every change. It blocks until ctx is done.
func (w *Watcher) Watch(ctx context.Context, roots ...string) error {
	fsw, err := w.start(roots)
	if err != nil {
		return err
	}
	defer fsw.Close()

	w.loop(ctx, fsw)
	return nil
}

func (w *Watcher) start(roots []string) (*fsnotify.Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating directory watcher: %w", err)
	}

	for _, root := range roots {
		w.watchTree(fsw, root)
	}

	return fsw, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.Delay)
	timer.Stop()
	defer timer.Stop()

	defer func() {
		w.log.Debug().Msg("directory watcher stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Event:
			if !ok || ev == nil {
				return
			}
			if ev.IsAttrib() {
				continue
			}

			dir, isDir := w.affectedDir(ev.Name)
			if ev.IsCreate() && isDir {
				w.watchTree(fsw, ev.Name)
			}

			pending[dir] = struct{}{}
			timer.Reset(w.Delay)
		case err, ok := <-fsw.Error:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("directory watcher error")
		case <-timer.C:
			dirs := make([]string, 0, len(pending))
			for dir := range pending {
				dirs = append(dirs, dir)
			}
			pending = make(map[string]struct{})

			if err := w.Refresh(ctx, dirs...); err != nil {
				w.log.Error().Err(err).Msg("refreshing library")
			}
		}
	}
}

// affectedDir returns the directory which has to be refreshed after a change
// of path. isDir tells whether path itself is an existing directory.
func (w *Watcher) affectedDir(path string) (dir string, isDir bool) {
	st, err := w.scanner.fs.Stat(path)
	if err == nil && st.IsDir() {
		return path, true
	}

	if err != nil && !supportedFormats[strings.ToLower(filepath.Ext(path))] {
		// Gone and not an audio file. Most likely a removed directory.
		return path, false
	}

	return filepath.Dir(path), false
}

func (w *Watcher) watchTree(fsw *fsnotify.Watcher, root string) {
	err := afero.Walk(w.scanner.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			w.log.Warn().Err(err).Str("path", path).Msg("walking watched directory")
			return nil
		}
		if !info.IsDir() {
			return nil
		}

		if err := fsw.Watch(path); err != nil {
			w.log.Warn().Err(err).Str("path", path).Msg("watching directory")
		}
		return nil
	})
	if err != nil {
		w.log.Warn().Err(err).Str("root", root).Msg("watching directory tree")
	}
}

// Refresh scans dirs again. The albums found are saved and the albums stored
// under dirs which were not found any more are removed from the library.
func (w *Watcher) Refresh(ctx context.Context, dirs ...string) error {
	sort.Strings(dirs)

	for _, dir := range dirs {
		dir = filepath.Clean(dir)

		exists, err := afero.DirExists(w.scanner.fs, dir)
		if err != nil {
			return fmt.Errorf("checking %s: %w", dir, err)
		}

		found := make(map[string]struct{})
		if exists {
			albums, err := w.scanner.Collect(ctx, dir)
			if err != nil {
				return err
			}

			for _, album := range albums {
				if _, err := w.lib.SaveAlbum(ctx, album); err != nil {
					return err
				}
				found[album.Path] = struct{}{}
			}
		}

		removed, err := w.lib.removeAlbums(ctx, []string{dir}, func(album Album) (bool, error) {
			_, ok := found[album.Path]
			return !ok, nil
		})
		if err != nil {
			return err
		}

		w.log.Info().
			Str("dir", dir).
			Int("albums", len(found)).
			Int("removed", removed).
			Msg("library refreshed")
	}

	return nil
}
