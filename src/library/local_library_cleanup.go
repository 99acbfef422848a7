package library

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// batchLimit is the size of cleanup batch which will be selected from the
// database.
const batchLimit = 100

// Cleanup walks through all albums in the database and removes those whose
// directories are not present on fsys. Only albums under one of roots are
// checked. When roots is empty all albums are checked. Returns the number of
// removed albums.
func (lib *LocalLibrary) Cleanup(
	ctx context.Context,
	fsys afero.Fs,
	roots ...string,
) (int, error) {
	return lib.removeAlbums(ctx, roots, func(album Album) (bool, error) {
		exists, err := afero.DirExists(fsys, album.Path)
		if err != nil {
			return false, fmt.Errorf("checking %s: %w", album.Path, err)
		}
		return !exists, nil
	})
}

// removeAlbums goes through the albums under roots in batches and removes every
// one for which shouldRemove returns true.
func (lib *LocalLibrary) removeAlbums(
	ctx context.Context,
	roots []string,
	shouldRemove func(Album) (bool, error),
) (int, error) {
	var (
		cursor  int64
		removed int
	)

	for {
		albums, err := queryAlbums(ctx, lib.db,
			[]string{"al.id > ?"},
			fmt.Sprintf("ORDER BY al.id ASC LIMIT %d", batchLimit),
			cursor,
		)
		if err != nil {
			return removed, fmt.Errorf("selecting cleanup batch: %w", err)
		}

		if len(albums) == 0 {
			return removed, nil
		}

		for _, album := range albums {
			cursor = album.ID

			if !underAnyRoot(album.Path, roots) {
				continue
			}

			remove, err := shouldRemove(album)
			if err != nil {
				return removed, err
			}
			if !remove {
				continue
			}

			if _, err := lib.db.ExecContext(ctx, `
				DELETE FROM albums
				WHERE id = ?
			`, album.ID); err != nil {
				return removed, fmt.Errorf("removing album %s: %w", album.Path, err)
			}

			lib.log.Debug().Str("path", album.Path).Msg("removed album")
			removed++
		}
	}
}

func underAnyRoot(path string, roots []string) bool {
	if len(roots) == 0 {
		return true
	}

	for _, root := range roots {
		root = filepath.Clean(root)
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}

	return false
}
