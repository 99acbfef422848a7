package webserver

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ironsmile/following/src/library"
	"github.com/ironsmile/following/src/webserver/webutils"
)

// AlbumsHandler is a http.Handler which lists the albums in the library
// matching a query.
type AlbumsHandler struct {
	library library.Querier
	log     zerolog.Logger
}

// NewAlbumsHandler returns a new AlbumsHandler.
func NewAlbumsHandler(lib library.Querier, log zerolog.Logger) *AlbumsHandler {
	return &AlbumsHandler{
		library: lib,
		log:     log,
	}
}

// ServeHTTP is required by the http.Handler's interface
func (ah *AlbumsHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	WithJSONErrors(ah.log, ah.find)(writer, req)
}

func (ah *AlbumsHandler) find(writer http.ResponseWriter, req *http.Request) error {
	albums, err := ah.library.Albums(req.Context(), req.URL.Query().Get("q"))
	if err != nil {
		return err
	}

	if albums == nil {
		albums = []library.Album{}
	}

	return webutils.JSON(writer, albums)
}
