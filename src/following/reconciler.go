package following

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/ironsmile/following/src/catalog"
	"github.com/ironsmile/following/src/library"
)

// ErrRemoteCatalog wraps all errors returned by the remote catalog.
var ErrRemoteCatalog = errors.New("remote catalog error")

const (
	// albumReleaseType is the release type requested from the remote catalog.
	albumReleaseType = "album"

	// albumType is the only release group type which is reported.
	albumType = "Album"

	includeArtistCredits = "artist-credits"
)

// ArtistReport is the result of the reconciliation for a single artist.
type ArtistReport struct {
	Artist  Artist         `json:"artist"`
	Missing []MissingAlbum `json:"missing"`
}

// Reconciler finds albums which are missing from the library.
type Reconciler struct {
	library library.Querier
	catalog catalog.Catalog
	log     zerolog.Logger

	// ArtistCredits makes the remote requests include the artist credits of
	// release groups.
	ArtistCredits bool
}

// NewReconciler returns a Reconciler which uses lib for querying the local
// library and cat for the remote catalog.
func NewReconciler(
	lib library.Querier,
	cat catalog.Catalog,
	log zerolog.Logger,
) *Reconciler {
	return &Reconciler{
		library:       lib,
		catalog:       cat,
		log:           log,
		ArtistCredits: true,
	}
}

// Each finds the missing albums for every artist of the albums matching query.
// fn is called with the report for an artist as soon as it is ready. Artists are
// processed one by one and any error stops the processing.
func (r *Reconciler) Each(
	ctx context.Context,
	query string,
	after int,
	fn func(ArtistReport) error,
) error {
	albums, err := r.library.Albums(ctx, query)
	if err != nil {
		return fmt.Errorf("querying library: %w", err)
	}

	artists := ExtractArtists(r.log, albums)
	r.log.Debug().
		Int("albums", len(albums)).
		Int("artists", len(artists)).
		Msg("collected artists")

	for _, artist := range artists {
		report, err := r.artistReport(ctx, artist, after)
		if err != nil {
			return err
		}

		if err := fn(report); err != nil {
			return err
		}
	}

	return nil
}

// Run finds the missing albums for the artists of the albums matching query and
// reports them to rep. Each artist is reported as soon as it is reconciled.
func (r *Reconciler) Run(
	ctx context.Context,
	query string,
	after int,
	rep *Reporter,
) error {
	err := r.Each(ctx, query, after, rep.Report)
	if err != nil {
		return err
	}

	return rep.Flush()
}

// Reconcile returns the reports for all artists of the albums matching query.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	query string,
	after int,
) ([]ArtistReport, error) {
	reports := []ArtistReport{}
	err := r.Each(ctx, query, after, func(report ArtistReport) error {
		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *Reconciler) artistReport(
	ctx context.Context,
	artist Artist,
	after int,
) (ArtistReport, error) {
	local, err := r.LocalDiscography(ctx, artist.ID)
	if err != nil {
		return ArtistReport{}, err
	}

	remote, err := r.RemoteDiscography(ctx, artist.ID)
	if err != nil {
		return ArtistReport{}, err
	}

	missing := MissingAlbums(artist, local, remote, after)
	r.log.Debug().
		Str("artist", artist.SortName).
		Int("local", len(local)).
		Int("remote", len(remote)).
		Int("missing", len(missing)).
		Msg("artist reconciled")

	return ArtistReport{
		Artist:  artist,
		Missing: missing,
	}, nil
}

// LocalDiscography returns all albums in the library by the artist with
// MusicBrainz ID artistID.
func (r *Reconciler) LocalDiscography(
	ctx context.Context,
	artistID string,
) ([]library.Album, error) {
	query := fmt.Sprintf(`mb_albumartistid::"^%s$"`, regexp.QuoteMeta(artistID))

	albums, err := r.library.Albums(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying library for artist %s: %w", artistID, err)
	}

	return albums, nil
}

// RemoteDiscography returns the albums published by the artist with MusicBrainz
// ID artistID. Release groups which the remote catalog returns for the album type
// but are actually of another type (such as compilations or live albums) are
// dropped.
func (r *Reconciler) RemoteDiscography(
	ctx context.Context,
	artistID string,
) ([]catalog.ReleaseGroup, error) {
	var includes []string
	if r.ArtistCredits {
		includes = []string{includeArtistCredits}
	}

	groups, err := r.catalog.BrowseReleaseGroups(ctx, artistID, albumReleaseType, includes)
	if err != nil {
		return nil, fmt.Errorf("%w: browsing release groups for %s: %w",
			ErrRemoteCatalog, artistID, err,
		)
	}

	albums := groups[:0:0]
	for _, rg := range groups {
		if rg.Type != albumType {
			continue
		}
		albums = append(albums, rg)
	}

	return albums, nil
}
