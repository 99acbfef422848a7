package following_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ironsmile/following/src/assert"
	"github.com/ironsmile/following/src/following"
	"github.com/ironsmile/following/src/library"
)

const (
	maidenID  = "ca891d65-d9b0-4258-89f7-e6ba29d83767"
	beatlesID = "b10bbbfc-cf9e-42e0-be17-e2c3e1d2600d"
	abbaID    = "d87e52c5-bb8d-4da8-b941-9f4928627dc8"
)

// TestExtractArtists checks that every artist is returned once and that the
// artists are sorted in descending order of their sort names.
func TestExtractArtists(t *testing.T) {
	albums := []library.Album{
		{
			Name:            "Abbey Road",
			AlbumArtist:     "The Beatles",
			AlbumArtistSort: "Beatles, The",
			MBAlbumID:       "a1",
			MBAlbumArtistID: beatlesID,
		},
		{
			Name:            "Senjutsu",
			AlbumArtist:     "Iron Maiden",
			MBAlbumID:       "a2",
			MBAlbumArtistID: maidenID,
		},
		{
			Name:            "Waterloo",
			AlbumArtist:     "ABBA",
			AlbumArtistSort: "abba",
			MBAlbumID:       "a3",
			MBAlbumArtistID: abbaID,
		},
		{
			Name:            "Let It Be",
			AlbumArtist:     "The Beatles",
			AlbumArtistSort: "Beatles, The",
			MBAlbumID:       "a4",
			MBAlbumArtistID: beatlesID,
		},
	}

	artists := following.ExtractArtists(zerolog.Nop(), albums)

	expected := []following.Artist{
		{ID: maidenID, SortName: "Iron Maiden"},
		{ID: beatlesID, SortName: "Beatles, The"},
		{ID: abbaID, SortName: "abba"},
	}
	assert.SliceEqual(t, expected, artists)
}

// TestExtractArtistsCaseInsensitive checks that upper and lower case letters
// sort together.
func TestExtractArtistsCaseInsensitive(t *testing.T) {
	albums := []library.Album{
		{MBAlbumID: "a1", MBAlbumArtistID: "id-1", AlbumArtist: "alpha"},
		{MBAlbumID: "a2", MBAlbumArtistID: "id-2", AlbumArtist: "Bravo"},
		{MBAlbumID: "a3", MBAlbumArtistID: "id-3", AlbumArtist: "charlie"},
	}

	artists := following.ExtractArtists(zerolog.Nop(), albums)

	assert.Equal(t, 3, len(artists))
	assert.Equal(t, "charlie", artists[0].SortName)
	assert.Equal(t, "Bravo", artists[1].SortName)
	assert.Equal(t, "alpha", artists[2].SortName)
}

// TestExtractArtistsLastSortNameWins checks that artists are keyed by their
// ID even when their albums have different sort names.
func TestExtractArtistsLastSortNameWins(t *testing.T) {
	albums := []library.Album{
		{MBAlbumID: "a1", MBAlbumArtistID: maidenID, AlbumArtistSort: "Maiden, Iron"},
		{MBAlbumID: "a2", MBAlbumArtistID: maidenID, AlbumArtistSort: "Iron Maiden"},
	}

	artists := following.ExtractArtists(zerolog.Nop(), albums)

	expected := []following.Artist{
		{ID: maidenID, SortName: "Iron Maiden"},
	}
	assert.SliceEqual(t, expected, artists)
}

// TestExtractArtistsSkipsUnmatched checks that albums without MusicBrainz IDs
// are logged and left out.
func TestExtractArtistsSkipsUnmatched(t *testing.T) {
	var logOut bytes.Buffer
	log := zerolog.New(&logOut)

	albums := []library.Album{
		{Name: "Untagged Bootleg", AlbumArtist: "Iron Maiden"},
		{Name: "No Artist ID", AlbumArtist: "Iron Maiden", MBAlbumID: "a1"},
		{Name: "Senjutsu", AlbumArtist: "Iron Maiden", MBAlbumID: "a2", MBAlbumArtistID: maidenID},
	}

	artists := following.ExtractArtists(log, albums)

	expected := []following.Artist{
		{ID: maidenID, SortName: "Iron Maiden"},
	}
	assert.SliceEqual(t, expected, artists)

	logged := logOut.String()
	if !strings.Contains(logged, "Untagged Bootleg") {
		t.Errorf("expected skipped album to be logged but log was: %s", logged)
	}
	if !strings.Contains(logged, "No Artist ID") {
		t.Errorf("expected album without artist ID to be logged but log was: %s", logged)
	}
	if strings.Contains(logged, "Senjutsu") {
		t.Errorf("matched album should not have been logged: %s", logged)
	}
}

// TestExtractArtistsEmpty checks that no albums means no artists.
func TestExtractArtistsEmpty(t *testing.T) {
	artists := following.ExtractArtists(zerolog.Nop(), nil)
	assert.Equal(t, 0, len(artists))
}
