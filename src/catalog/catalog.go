package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	cca "gopkg.in/mineo/gocaa.v1"
)

// ErrInvalidMBID is returned when an identifier which is not a valid MusicBrainz
// ID is used for a request.
var ErrInvalidMBID = errors.New("invalid MusicBrainz ID")

// ErrCoverNotFound is returned when the Cover Art Archive has no front cover for a
// release group.
var ErrCoverNotFound = errors.New("cover not found")

// ErrUnexpectedResponse is returned when the MusicBrainz API answers with something
// other than a successful response.
var ErrUnexpectedResponse = errors.New("unexpected MusicBrainz response")

// ReleaseGroup is a MusicBrainz release group: the album as a logical work which
// groups all of its editions.
type ReleaseGroup struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// Type is the combined type of the release group as reported by MusicBrainz.
	// It is the primary type ("Album", "Single", "EP") unless there is a more
	// specific secondary type such as "Compilation" or "Live".
	Type string `json:"type"`

	PrimaryType string `json:"primary_type,omitempty"`

	// FirstReleaseDate is the date of the earliest release in the group. It could
	// be partial ("1982", "1982-03") or empty.
	FirstReleaseDate string `json:"first_release_date,omitempty"`

	ArtistCredit []NameCredit `json:"artist_credit,omitempty"`
}

// NameCredit is a single entry from the artist credit of a release group.
type NameCredit struct {
	// Name is the name as credited. It is empty when it matches the artist name.
	Name       string          `json:"name,omitempty"`
	JoinPhrase string          `json:"join_phrase,omitempty"`
	Artist     *CreditedArtist `json:"artist,omitempty"`
}

// CreditedArtist is the artist of a NameCredit.
type CreditedArtist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SortName string `json:"sort_name"`
}

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Catalog

// Catalog is the remote catalog as seen by the rest of the program.
type Catalog interface {
	// BrowseReleaseGroups returns all release groups of the artist with MusicBrainz
	// ID artistID. releaseType limits the results to particular release type
	// ("album", "single"...) and could be left empty. includes is a list of
	// additional information to be requested. Only "artist-credits" is supported.
	BrowseReleaseGroups(
		ctx context.Context,
		artistID string,
		releaseType string,
		includes []string,
	) ([]ReleaseGroup, error)
}

// Client is a client for the MusicBrainz and Cover Art Archive web services. It
// throttles itself so that no more than one request per `delay` is made to
// MusicBrainz. It is safe for concurrent use.
//
// It implements Catalog.
type Client struct {
	sync.Mutex

	delay     time.Duration
	delayer   *time.Timer
	useragent string
	caaClient CAAClient

	musicBrainzAPIHost string
}

// NewClient returns fully configured Client.
//
// The kind people at MusicBrainz provide their API at no cost for everyone
// to use. For that reason they have kindly asked for all applications to
// throttle their usage as much as possible and do not exceed one request
// per second. So we are good citizen and throttle ourselves.
// More info: https://musicbrainz.org/doc/MusicBrainz_API/Rate_Limiting
//
// The user agent is used for representing itself when contacting the MusicBrainz
// API. It is required so that they can use it for throttling and filtering out bad
// applications.
func NewClient(useragent string, delay time.Duration) *Client {
	return &Client{
		useragent:          useragent,
		delay:              delay,
		delayer:            time.NewTimer(0),
		caaClient:          cca.NewCAAClient(useragent),
		musicBrainzAPIHost: "https://musicbrainz.org",
	}
}

// throttle blocks until the next MusicBrainz request is allowed. It must be
// called with the Client lock held. The returned function must be called once
// the request is done.
func (c *Client) throttle(ctx context.Context) (func(), error) {
	select {
	case <-c.delayer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return func() {
		c.delayer.Reset(c.delay)
	}, nil
}
