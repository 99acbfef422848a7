// Package library deals with the local music library. It keeps one record per album
// in an SQLite database together with the MusicBrainz identifiers found in the
// album's tags, and answers free-text queries for albums.
//
// Albums get into the database by scanning directories with audio files. Every
// directory with tagged audio files is considered one album.
package library

import "context"

// Album is a single album from the local library.
type Album struct {
	ID int64 `json:"id"`

	// Name is the title of the album.
	Name string `json:"name"`

	AlbumArtist     string `json:"album_artist"`
	AlbumArtistSort string `json:"album_artist_sort"`

	// MBAlbumID is the MusicBrainz release ID. Empty when the album has not been
	// matched with MusicBrainz.
	MBAlbumID string `json:"mb_albumid"`

	// MBAlbumArtistID is the MusicBrainz ID of the album artist.
	MBAlbumArtistID string `json:"mb_albumartistid"`

	// MBReleaseGroupID is the MusicBrainz release group this album is part of.
	// Could be empty.
	MBReleaseGroupID string `json:"mb_releasegroupid"`

	Year int    `json:"year"`
	Path string `json:"path"`
}

// ArtistSortName returns the name which should be used when sorting and
// displaying this album's artist. It is the album artist sort name when present
// and the album artist otherwise.
func (a Album) ArtistSortName() string {
	if a.AlbumArtistSort != "" {
		return a.AlbumArtistSort
	}
	return a.AlbumArtist
}

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Querier

// Querier is the query interface of the library.
type Querier interface {
	// Albums returns all albums matching the free-text `query`. See ParseQuery
	// for the query syntax. An empty query matches every album.
	Albums(ctx context.Context, query string) ([]Album, error)
}
