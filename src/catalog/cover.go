package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pborman/uuid"
	cca "gopkg.in/mineo/gocaa.v1"
)

//counterfeiter:generate . CAAClient

// CAAClient represents a Cover Art Archive client for getting a release group
// front image.
type CAAClient interface {
	GetReleaseGroupFront(mbid uuid.UUID, size int) (image cca.CoverArtImage, err error)
}

// FrontCover returns the front cover image of the release group with MusicBrainz
// ID releaseGroupID. ErrCoverNotFound is returned when the Cover Art Archive does
// not have one.
func (c *Client) FrontCover(ctx context.Context, releaseGroupID string) ([]byte, error) {
	mbid := uuid.Parse(releaseGroupID)
	if mbid == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMBID, releaseGroupID)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Release groups in the Cover Art Archive are only available in their
	// original size.
	img, err := c.caaClient.GetReleaseGroupFront(mbid, cca.ImageSizeOriginal)

	var httpErr cca.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return nil, ErrCoverNotFound
	} else if err != nil {
		return nil, fmt.Errorf("getting front cover for %s: %w", releaseGroupID, err)
	}

	if len(img.Data) == 0 {
		return nil, ErrCoverNotFound
	}

	return img.Data, nil
}

// SetCoverArtArchiveURL makes the Client use the Cover Art Archive at apiURL.
func (c *Client) SetCoverArtArchiveURL(apiURL string) {
	caac := cca.NewCAAClient(c.useragent)
	caac.BaseURL = apiURL
	c.caaClient = caac
}
