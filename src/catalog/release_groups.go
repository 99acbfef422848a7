package catalog

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pborman/uuid"
)

const (
	musicBrainzReleaseGroupEndpoint = "%s/ws/2/release-group"

	// browsePageSize is the maximum number of entities MusicBrainz returns for a
	// single browse request.
	browsePageSize = 100
)

// BrowseReleaseGroups implements Catalog. It pages through the results until all
// release groups of the artist have been received.
func (c *Client) BrowseReleaseGroups(
	ctx context.Context,
	artistID string,
	releaseType string,
	includes []string,
) ([]ReleaseGroup, error) {
	if uuid.Parse(artistID) == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMBID, artistID)
	}

	var groups []ReleaseGroup
	for {
		page, err := c.browseReleaseGroupsPage(
			ctx,
			artistID,
			releaseType,
			includes,
			len(groups),
		)
		if err != nil {
			return nil, err
		}

		for _, rg := range page.ReleaseGroups {
			groups = append(groups, rg.toReleaseGroup())
		}

		if len(page.ReleaseGroups) == 0 || len(groups) >= page.Count {
			break
		}
	}

	return groups, nil
}

func (c *Client) browseReleaseGroupsPage(
	ctx context.Context,
	artistID string,
	releaseType string,
	includes []string,
	offset int,
) (mbReleaseGroupList, error) {
	c.Lock()
	defer c.Unlock()

	done, err := c.throttle(ctx)
	if err != nil {
		return mbReleaseGroupList{}, err
	}
	defer done()

	mbURL := fmt.Sprintf(musicBrainzReleaseGroupEndpoint, c.musicBrainzAPIHost)
	req, err := http.NewRequest(http.MethodGet, mbURL, nil)
	if err != nil {
		return mbReleaseGroupList{}, fmt.Errorf(
			"error creating MusicBrainz XML API req: %w", err,
		)
	}

	query := req.URL.Query()
	query.Set("artist", artistID)
	if releaseType != "" {
		query.Set("type", releaseType)
	}
	if len(includes) > 0 {
		query.Set("inc", strings.Join(includes, " "))
	}
	query.Set("limit", strconv.Itoa(browsePageSize))
	query.Set("offset", strconv.Itoa(offset))
	req.URL.RawQuery = query.Encode()
	req.Header.Set("User-Agent", c.useragent)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	req = req.WithContext(ctx)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return mbReleaseGroupList{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return mbReleaseGroupList{}, fmt.Errorf(
			"%w: release group browse XML API returned HTTP %d",
			ErrUnexpectedResponse,
			resp.StatusCode,
		)
	}

	root := mbReleaseGroupMetadata{}
	dec := xml.NewDecoder(resp.Body)

	if err := dec.Decode(&root); err != nil {
		return mbReleaseGroupList{}, fmt.Errorf(
			"%w: decoding release group browse XML API response: %s",
			ErrUnexpectedResponse,
			err,
		)
	}

	return root.ReleaseGroupList, nil
}

// The following are structures only used to decode the XML response from MusicBrainz
// API. And only the stuff we are interested and nothing more.
/*
Truncated example:

<metadata>
	<release-group-list count="2" offset="0">
		<release-group id="id" type="Album" type-id="typeid">
			<title>The Number of the Beast</title>
			<first-release-date>1982-03-22</first-release-date>
			<primary-type id="typeid">Album</primary-type>
			<artist-credit>
				<name-credit>
					<artist id="artistid" type="Group">
						<name>Iron Maiden</name>
						<sort-name>Iron Maiden</sort-name>
					</artist>
				</name-credit>
			</artist-credit>
		</release-group>
	</release-group-list>
</metadata>
*/
type mbReleaseGroupMetadata struct {
	ReleaseGroupList mbReleaseGroupList `xml:"release-group-list"`
}

type mbReleaseGroupList struct {
	Count         int              `xml:"count,attr"`
	Offset        int              `xml:"offset,attr"`
	ReleaseGroups []mbReleaseGroup `xml:"release-group"`
}

type mbReleaseGroup struct {
	ID               string         `xml:"id,attr"`
	Type             string         `xml:"type,attr"`
	Title            string         `xml:"title"`
	FirstReleaseDate string         `xml:"first-release-date"`
	PrimaryType      string         `xml:"primary-type"`
	NameCredits      []mbNameCredit `xml:"artist-credit>name-credit"`
}

type mbNameCredit struct {
	JoinPhrase string    `xml:"joinphrase,attr"`
	Name       string    `xml:"name"`
	Artist     *mbArtist `xml:"artist"`
}

type mbArtist struct {
	ID       string `xml:"id,attr"`
	Name     string `xml:"name"`
	SortName string `xml:"sort-name"`
}

func (rg mbReleaseGroup) toReleaseGroup() ReleaseGroup {
	out := ReleaseGroup{
		ID:               rg.ID,
		Title:            rg.Title,
		Type:             rg.Type,
		PrimaryType:      rg.PrimaryType,
		FirstReleaseDate: strings.TrimSpace(rg.FirstReleaseDate),
	}

	for _, nc := range rg.NameCredits {
		credit := NameCredit{
			Name:       nc.Name,
			JoinPhrase: nc.JoinPhrase,
		}
		if nc.Artist != nil {
			credit.Artist = &CreditedArtist{
				ID:       nc.Artist.ID,
				Name:     nc.Artist.Name,
				SortName: nc.Artist.SortName,
			}
		}
		out.ArtistCredit = append(out.ArtistCredit, credit)
	}

	return out
}
