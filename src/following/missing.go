package following

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ironsmile/following/src/catalog"
	"github.com/ironsmile/following/src/library"
)

// unknownArtist is the artist name used when none could be found for a release
// group.
const unknownArtist = "Could not extract artist"

// MissingAlbum is a release group from the remote catalog which is not in the
// local library.
type MissingAlbum struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`

	// Year is the year of the first release. Zero when not known.
	Year int `json:"year"`

	ReleaseGroupID string `json:"release_group_id"`
}

// MissingAlbums returns the release groups from remote which are not among the
// release groups of the local albums. Albums released in or before the year
// `after` are left out when `after` is positive.
//
// The result is sorted by year and then by title.
func MissingAlbums(
	artist Artist,
	local []library.Album,
	remote []catalog.ReleaseGroup,
	after int,
) []MissingAlbum {
	have := make(map[string]struct{}, len(local))
	for _, album := range local {
		if album.MBReleaseGroupID == "" {
			continue
		}
		have[album.MBReleaseGroupID] = struct{}{}
	}

	var missing []MissingAlbum
	for _, rg := range remote {
		if _, ok := have[rg.ID]; ok {
			continue
		}

		album := MissingAlbum{
			Artist:         artistName(artist, rg),
			Title:          rg.Title,
			Year:           ParseYear(rg.FirstReleaseDate),
			ReleaseGroupID: rg.ID,
		}

		if after > 0 && album.Year <= after {
			continue
		}

		missing = append(missing, album)
	}

	SortMissing(missing)
	return missing
}

// SortMissing sorts albums by year and then by title.
func SortMissing(albums []MissingAlbum) {
	sort.SliceStable(albums, func(i, j int) bool {
		if albums[i].Year != albums[j].Year {
			return albums[i].Year < albums[j].Year
		}
		return albums[i].Title < albums[j].Title
	})
}

// ParseYear returns the year from a date such as "1994-03-02" or "1994". Zero is
// returned for dates which do not start with a number.
func ParseYear(date string) int {
	yearStr, _, _ := strings.Cut(date, "-")
	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil {
		return 0
	}
	return year
}

// artistName returns the name under which a missing release group is reported.
func artistName(artist Artist, rg catalog.ReleaseGroup) string {
	if artist.SortName != "" {
		return artist.SortName
	}

	if len(rg.ArtistCredit) > 0 {
		credited := rg.ArtistCredit[0].Artist
		if credited != nil && credited.Name != "" {
			return credited.Name
		}
	}

	return unknownArtist
}
