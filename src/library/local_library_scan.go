package library

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// supportedFormats are the file extensions which are read while scanning.
var supportedFormats = map[string]bool{
	".mp3":  true,
	".flac": true,
	".ogg":  true,
	".oga":  true,
	".m4a":  true,
	".mp4":  true,
	".dsf":  true,
}

// AlbumSaver stores albums found during a scan.
type AlbumSaver interface {
	SaveAlbum(ctx context.Context, album Album) (int64, error)
}

// ScanStats summarizes a finished scan.
type ScanStats struct {
	// Albums is the number of albums saved.
	Albums int

	// Matched is the number of saved albums which have a MusicBrainz album ID.
	Matched int
}

// Scanner finds albums by reading the tags of audio files.
type Scanner struct {
	fs       afero.Fs
	log      zerolog.Logger
	readTags func(io.ReadSeeker) (tag.Metadata, error)
}

// NewScanner returns a Scanner which reads files from fsys.
func NewScanner(fsys afero.Fs, log zerolog.Logger) *Scanner {
	return &Scanner{
		fs:       fsys,
		log:      log,
		readTags: tag.ReadFrom,
	}
}

// Scan walks every one of the roots and saves the found albums with saver.
func (s *Scanner) Scan(
	ctx context.Context,
	saver AlbumSaver,
	roots ...string,
) (ScanStats, error) {
	var stats ScanStats
	start := time.Now()

	for _, root := range roots {
		albums, err := s.Collect(ctx, root)
		if err != nil {
			return stats, err
		}

		for _, album := range albums {
			if _, err := saver.SaveAlbum(ctx, album); err != nil {
				return stats, err
			}

			stats.Albums++
			if album.MBAlbumID != "" {
				stats.Matched++
			}
		}
	}

	s.log.Info().
		Int("albums", stats.Albums).
		Int("matched", stats.Matched).
		Dur("took", time.Since(start)).
		Msg("library scan finished")

	return stats, nil
}

// Collect walks the directory tree under root and returns one album for every
// directory which contains tagged audio files. Files which could not be read are
// logged and skipped.
func (s *Scanner) Collect(ctx context.Context, root string) ([]Album, error) {
	var (
		order  []string
		albums = make(map[string]*Album)
	)

	walkFunc := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("walking library")
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if info.IsDir() || !supportedFormats[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		meta, err := s.readFile(path)
		if err != nil {
			s.log.Debug().Err(err).Str("path", path).Msg("skipping file")
			return nil
		}

		dir := filepath.Dir(path)
		album, ok := albums[dir]
		if !ok {
			album = &Album{Path: dir}
			albums[dir] = album
			order = append(order, dir)
		}
		mergeAlbumTags(album, meta)

		return nil
	}

	if err := afero.Walk(s.fs, root, walkFunc); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	out := make([]Album, 0, len(order))
	for _, dir := range order {
		out = append(out, *albums[dir])
	}

	return out, nil
}

func (s *Scanner) readFile(path string) (tag.Metadata, error) {
	fh, err := s.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	return s.readTags(fh)
}

// mergeAlbumTags fills the fields of album which are still empty with values
// from the tags of one of its files.
func mergeAlbumTags(album *Album, meta tag.Metadata) {
	if album.Name == "" {
		album.Name = meta.Album()
	}

	if album.AlbumArtist == "" {
		album.AlbumArtist = meta.AlbumArtist()
		if album.AlbumArtist == "" {
			album.AlbumArtist = meta.Artist()
		}
	}

	if album.Year == 0 {
		album.Year = meta.Year()
	}

	mbTags := musicBrainzTags(meta.Raw())
	fill := func(field *string, tagName string) {
		if *field == "" {
			*field = mbTags[tagName]
		}
	}

	fill(&album.AlbumArtistSort, tagAlbumArtistSort)
	fill(&album.MBAlbumID, tagMBAlbumID)
	fill(&album.MBAlbumArtistID, tagMBAlbumArtistID)
	fill(&album.MBReleaseGroupID, tagMBReleaseGroupID)
}
