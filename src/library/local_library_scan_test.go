package library

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhowden/tag"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/ironsmile/following/src/assert"
)

// stubMetadata is a tag.Metadata whose values come from a text "file". Methods
// which are not overridden panic.
type stubMetadata struct {
	tag.Metadata

	album       string
	albumArtist string
	artist      string
	year        int
	raw         map[string]interface{}
}

func (m stubMetadata) Album() string                { return m.album }
func (m stubMetadata) AlbumArtist() string          { return m.albumArtist }
func (m stubMetadata) Artist() string               { return m.artist }
func (m stubMetadata) Year() int                    { return m.year }
func (m stubMetadata) Raw() map[string]interface{} { return m.raw }

// readStubTags "parses" files with lines in the form `key=value`. Files which
// start with "garbage" are reported as having no tags.
func readStubTags(r io.ReadSeeker) (tag.Metadata, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(string(content), "garbage") {
		return nil, tag.ErrNoTagsFound
	}

	meta := stubMetadata{raw: make(map[string]interface{})}
	for _, line := range strings.Split(string(content), "\n") {
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		switch key {
		case "album":
			meta.album = val
		case "albumartist":
			meta.albumArtist = val
		case "artist":
			meta.artist = val
		case "year":
			if val == "1982" {
				meta.year = 1982
			}
		default:
			meta.raw[key] = val
		}
	}

	return meta, nil
}

func getScanner(t *testing.T, files map[string]string) *Scanner {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for path, content := range files {
		err := afero.WriteFile(fsys, filepath.FromSlash(path), []byte(content), 0o644)
		assert.NilErr(t, err, "writing %s", path)
	}

	scanner := NewScanner(fsys, zerolog.Nop())
	scanner.readTags = readStubTags
	return scanner
}

// TestScannerCollect checks that one album is found per directory and that
// the MusicBrainz identifiers are read from the files in it.
func TestScannerCollect(t *testing.T) {
	scanner := getScanner(t, map[string]string{
		"/music/maiden/01.mp3": "album=The Number of the Beast\n" +
			"artist=Iron Maiden\n" +
			"year=1982\n",
		"/music/maiden/02.mp3": "album=The Number of the Beast\n" +
			"musicbrainz_albumid=37e955d4-a53c-45aa-b812-1a2b1b6e0d4f\n" +
			"musicbrainz_albumartistid=" + maidenID + "\n" +
			"musicbrainz_releasegroupid=9c3b5ba2-6bb8-3ae0-8da9-1f5a9ea63e2b\n",
		"/music/maiden/cover.jpg":   "not audio",
		"/music/broken/01.flac":     "garbage",
		"/music/various/a/01.FLAC":  "album=Compilation\nalbumartist=Various Artists\n",
		"/music/various/a/notes.md": "album=Not an album",
	})

	albums, err := scanner.Collect(context.Background(), filepath.FromSlash("/music"))
	assert.NilErr(t, err)
	assert.Equal(t, 2, len(albums))

	maiden := albums[0]
	assert.Equal(t, filepath.FromSlash("/music/maiden"), maiden.Path)
	assert.Equal(t, "The Number of the Beast", maiden.Name)
	assert.Equal(t, "Iron Maiden", maiden.AlbumArtist)
	assert.Equal(t, 1982, maiden.Year)
	assert.Equal(t, "37e955d4-a53c-45aa-b812-1a2b1b6e0d4f", maiden.MBAlbumID)
	assert.Equal(t, maidenID, maiden.MBAlbumArtistID)
	assert.Equal(t, "9c3b5ba2-6bb8-3ae0-8da9-1f5a9ea63e2b", maiden.MBReleaseGroupID)

	various := albums[1]
	assert.Equal(t, filepath.FromSlash("/music/various/a"), various.Path)
	assert.Equal(t, "Various Artists", various.AlbumArtist)
	assert.Equal(t, "", various.MBAlbumID)
}

// TestScannerScan makes sure found albums are saved and counted.
func TestScannerScan(t *testing.T) {
	lib := getLibrary(t)
	scanner := getScanner(t, map[string]string{
		"/one/a/01.mp3": "album=A\nartist=X\nmusicbrainz_albumid=" + maidenID,
		"/one/b/01.mp3": "album=B\nartist=X\n",
		"/two/c/01.ogg": "album=C\nartist=Y\n",
	})

	stats, err := scanner.Scan(
		context.Background(),
		lib,
		filepath.FromSlash("/one"),
		filepath.FromSlash("/two"),
	)
	assert.NilErr(t, err)
	assert.Equal(t, ScanStats{Albums: 3, Matched: 1}, stats)

	albums, err := lib.Albums(context.Background(), "artist")
	assert.NilErr(t, err)
	assert.Equal(t, 0, len(albums))

	albums, err = lib.Albums(context.Background(), "albumartist:x")
	assert.NilErr(t, err)
	assert.Equal(t, 2, len(albums))
}

// TestScannerCancelled checks that scanning stops when its context is done.
func TestScannerCancelled(t *testing.T) {
	scanner := getScanner(t, map[string]string{
		"/music/a/01.mp3": "album=A\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scanner.Collect(ctx, filepath.FromSlash("/music"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled but got %v", err)
	}
}
