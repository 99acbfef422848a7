package webserver

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ironsmile/following/src/catalog"
	"github.com/ironsmile/following/src/following"
	"github.com/ironsmile/following/src/library"
	"github.com/ironsmile/following/src/scaler"
	"github.com/ironsmile/following/src/webserver/webutils"
)

// errBadRequest is returned by handlers for requests with invalid parameters.
var errBadRequest = errors.New("bad request")

// HandlerFuncWithError is similar to http.HandlerFunc but returns an error when
// the handling of the request failed.
type HandlerFuncWithError func(http.ResponseWriter, *http.Request) error

// WithJSONErrors converts a HandlerFuncWithError to http.HandlerFunc. Errors
// returned by fnc are written as JSON objects with a status code depending on
// the kind of error.
func WithJSONErrors(log zerolog.Logger, fnc HandlerFuncWithError) http.HandlerFunc {
	return func(writer http.ResponseWriter, req *http.Request) {
		err := fnc(writer, req)
		if err == nil {
			return
		}

		status := errorStatus(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("path", req.URL.Path).Msg("request failed")
		}

		if err := webutils.JSONError(writer, err.Error(), status); err != nil {
			log.Warn().Err(err).Msg("error writing error response")
		}
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, following.ErrRemoteCatalog):
		return http.StatusBadGateway
	case errors.Is(err, errBadRequest),
		errors.Is(err, library.ErrBadQuery),
		errors.Is(err, library.ErrUnknownField),
		errors.Is(err, catalog.ErrInvalidMBID),
		errors.Is(err, scaler.ErrBadWidth):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrCoverNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
