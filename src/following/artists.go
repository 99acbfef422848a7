package following

import (
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/ironsmile/following/src/library"
)

// Artist is an album artist from the local library.
type Artist struct {
	// ID is the MusicBrainz ID of the artist.
	ID string `json:"id"`

	// SortName is the album artist sort name as found in the library.
	SortName string `json:"sort_name"`
}

// ExtractArtists returns the distinct album artists of albums. Albums which have
// not been matched with MusicBrainz are skipped and logged. Artists are keyed by
// their MusicBrainz ID. When albums of the same artist have different sort names
// the last one wins.
//
// The result is sorted by sort name in descending, case-insensitive order.
func ExtractArtists(log zerolog.Logger, albums []library.Album) []Artist {
	byID := make(map[string]int)
	var artists []Artist

	for _, album := range albums {
		if album.MBAlbumID == "" {
			log.Info().
				Str("album", album.Name).
				Str("path", album.Path).
				Msg("Skipping album with no MusicBrainz album ID")
			continue
		}

		if album.MBAlbumArtistID == "" {
			log.Info().
				Str("album", album.Name).
				Str("path", album.Path).
				Msg("Skipping album with no MusicBrainz album artist ID")
			continue
		}

		artist := Artist{
			ID:       album.MBAlbumArtistID,
			SortName: album.ArtistSortName(),
		}

		if idx, ok := byID[artist.ID]; ok {
			artists[idx] = artist
			continue
		}

		byID[artist.ID] = len(artists)
		artists = append(artists, artist)
	}

	sortArtists(artists)
	return artists
}

func sortArtists(artists []Artist) {
	folder := cases.Fold()
	keys := make(map[string]string, len(artists))
	for _, artist := range artists {
		keys[artist.ID] = folder.String(artist.SortName)
	}

	sort.SliceStable(artists, func(i, j int) bool {
		ki, kj := keys[artists[i].ID], keys[artists[j].ID]
		if ki != kj {
			return ki > kj
		}
		return artists[i].ID < artists[j].ID
	})
}
