package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ironsmile/following/src/assert"
)

const (
	maidenID  = "ca891d65-d9b0-4258-89f7-e6ba29d83767"
	beatlesID = "b10bbbfc-cf9e-42e0-be17-e2c3e1d2600d"
)

// getLibrary returns an initialized library in a temporary directory. It is
// removed when the test finishes.
func getLibrary(t *testing.T) *LocalLibrary {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "library.db")
	sqlFiles := os.DirFS(filepath.Join("..", "..", "sqls"))

	lib, err := NewLocalLibrary(dbPath, sqlFiles, zerolog.Nop())
	assert.NilErr(t, err, "creating library")
	t.Cleanup(func() {
		_ = lib.Close()
	})

	assert.NilErr(t, lib.Initialize(), "initializing library")

	return lib
}

func populateLibrary(t *testing.T, lib *LocalLibrary) {
	t.Helper()

	albums := []Album{
		{
			Name:             "The Number of the Beast",
			AlbumArtist:      "Iron Maiden",
			AlbumArtistSort:  "Iron Maiden",
			MBAlbumID:        "37e955d4-a53c-45aa-b812-1a2b1b6e0d4f",
			MBAlbumArtistID:  maidenID,
			MBReleaseGroupID: "9c3b5ba2-6bb8-3ae0-8da9-1f5a9ea63e2b",
			Year:             1982,
			Path:             "/music/Iron Maiden/1982 - The Number of the Beast",
		},
		{
			Name:             "Abbey Road",
			AlbumArtist:      "The Beatles",
			AlbumArtistSort:  "Beatles, The",
			MBAlbumID:        "6f4d7b1a-5b64-4c1e-9c3a-8d2d2b1f1a10",
			MBAlbumArtistID:  beatlesID,
			MBReleaseGroupID: "9162580e-5df4-32de-80cc-f45a8d8a9b1d",
			Year:             1969,
			Path:             "/music/The Beatles/Abbey Road",
		},
		{
			Name:            "Piece of Mind",
			AlbumArtist:     "Iron Maiden",
			MBAlbumArtistID: maidenID,
			Year:            1983,
			Path:            "/music/Iron Maiden/1983 - Piece of Mind",
		},
		{
			Name:        "Unknown tape 100%",
			AlbumArtist: "Nobody",
			Path:        "/music/unsorted",
		},
	}

	for _, album := range albums {
		_, err := lib.SaveAlbum(context.Background(), album)
		assert.NilErr(t, err, "saving album %s", album.Name)
	}
}

// TestAlbumsQueries saves albums into the library and then queries them with
// different kinds of queries.
func TestAlbumsQueries(t *testing.T) {
	lib := getLibrary(t)
	populateLibrary(t, lib)

	tests := []struct {
		query    string
		expected []string
	}{
		{
			query: "",
			expected: []string{
				"The Number of the Beast",
				"Abbey Road",
				"Piece of Mind",
				"Unknown tape 100%",
			},
		},
		{
			query:    "mb_albumartistid::^" + maidenID + "$",
			expected: []string{"The Number of the Beast", "Piece of Mind"},
		},
		{
			query:    "albumartistid::^" + beatlesID + "$",
			expected: []string{"Abbey Road"},
		},
		{
			query:    "albumartist:maiden",
			expected: []string{"The Number of the Beast", "Piece of Mind"},
		},
		{
			query:    "maiden piece",
			expected: []string{"Piece of Mind"},
		},
		{
			query:    "year::^19[6-7]",
			expected: []string{"Abbey Road"},
		},
		{
			query:    "albumartist_sort:beatles",
			expected: []string{"Abbey Road"},
		},
		{
			query:    "album:100%",
			expected: []string{"Unknown tape 100%"},
		},
		{
			query:    "album:10_",
			expected: nil,
		},
		{
			query:    `album:"of the"`,
			expected: []string{"The Number of the Beast"},
		},
	}

	for _, test := range tests {
		t.Run(test.query, func(t *testing.T) {
			albums, err := lib.Albums(context.Background(), test.query)
			assert.NilErr(t, err)

			var names []string
			for _, album := range albums {
				names = append(names, album.Name)
			}
			assert.SliceEqual(t, test.expected, names)
		})
	}
}

// TestAlbumsBadQuery makes sure query errors are returned to the caller.
func TestAlbumsBadQuery(t *testing.T) {
	lib := getLibrary(t)

	_, err := lib.Albums(context.Background(), "genre:metal")
	assert.ErrorIs(t, err, ErrUnknownField)
}

// TestSaveAlbumUpdates checks that saving an album with the same path updates
// the stored record instead of creating a new one.
func TestSaveAlbumUpdates(t *testing.T) {
	lib := getLibrary(t)
	ctx := context.Background()

	album := Album{
		Name:        "Killers",
		AlbumArtist: "Iron Maiden",
		Path:        "/music/Iron Maiden/Killers",
	}

	firstID, err := lib.SaveAlbum(ctx, album)
	assert.NilErr(t, err)

	album.MBAlbumID = "b6f3a4e1-2f2e-4c59-9c8b-3a3a1a4a8d77"
	album.MBReleaseGroupID = "2b1b7d2a-8c59-3a56-b1ab-6d4b3f2f6d5e"
	album.Year = 1981

	secondID, err := lib.SaveAlbum(ctx, album)
	assert.NilErr(t, err)
	assert.Equal(t, firstID, secondID, "album ID changed after update")

	albums, err := lib.Albums(ctx, "")
	assert.NilErr(t, err)
	assert.Equal(t, 1, len(albums))

	found := albums[0]
	found.ID = 0
	assert.Equal(t, album, found)
}

// TestSaveAlbumWithoutPath makes sure albums without path are refused.
func TestSaveAlbumWithoutPath(t *testing.T) {
	lib := getLibrary(t)

	_, err := lib.SaveAlbum(context.Background(), Album{Name: "Nowhere"})
	assert.NotNilErr(t, err)
}

// TestTruncate checks that truncating removes the database file.
func TestTruncate(t *testing.T) {
	lib := getLibrary(t)

	assert.NilErr(t, lib.Truncate())
	if _, err := os.Stat(lib.database); !os.IsNotExist(err) {
		t.Errorf("expected the database file to be removed but stat returned: %v", err)
	}

	assert.NilErr(t, lib.Close(), "closing a closed library")
}
