package webserver

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ironsmile/following/src/following"
	"github.com/ironsmile/following/src/webserver/webutils"
)

// MissingFinder finds the albums missing from the library.
type MissingFinder interface {
	Reconcile(ctx context.Context, query string, after int) ([]following.ArtistReport, error)
}

// MissingHandler is a http.Handler which returns the missing albums for the
// artists of the albums matching a query.
type MissingHandler struct {
	finder MissingFinder
	log    zerolog.Logger
}

// NewMissingHandler returns a new MissingHandler.
func NewMissingHandler(finder MissingFinder, log zerolog.Logger) *MissingHandler {
	return &MissingHandler{
		finder: finder,
		log:    log,
	}
}

// ServeHTTP is required by the http.Handler's interface
func (mh *MissingHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	WithJSONErrors(mh.log, mh.find)(writer, req)
}

func (mh *MissingHandler) find(writer http.ResponseWriter, req *http.Request) error {
	params := req.URL.Query()

	var after int
	if afterStr := params.Get("after"); afterStr != "" {
		parsed, err := strconv.Atoi(afterStr)
		if err != nil || parsed < 0 {
			return fmt.Errorf("%w: after must be a year, not %q", errBadRequest, afterStr)
		}
		after = parsed
	}

	reports, err := mh.finder.Reconcile(req.Context(), params.Get("q"), after)
	if err != nil {
		return err
	}

	for i := range reports {
		if reports[i].Missing == nil {
			reports[i].Missing = []following.MissingAlbum{}
		}
	}

	return webutils.JSON(writer, reports)
}
