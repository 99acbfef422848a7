package webserver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// CoverFinder returns the front cover of a release group.
type CoverFinder interface {
	FrontCover(ctx context.Context, releaseGroupID string) ([]byte, error)
}

// ImageScaler resizes images to a particular width.
type ImageScaler interface {
	Scale(ctx context.Context, img io.Reader, toWidth int) ([]byte, error)
}

// CoverHandler is a http.Handler which serves the front cover of a release
// group. The cover could be scaled down with the `width` query parameter.
type CoverHandler struct {
	covers CoverFinder
	scaler ImageScaler
	log    zerolog.Logger
}

// NewCoverHandler returns a new CoverHandler.
func NewCoverHandler(
	covers CoverFinder,
	scaler ImageScaler,
	log zerolog.Logger,
) *CoverHandler {
	return &CoverHandler{
		covers: covers,
		scaler: scaler,
		log:    log,
	}
}

// ServeHTTP is required by the http.Handler's interface
func (ch *CoverHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	WithJSONErrors(ch.log, ch.find)(writer, req)
}

func (ch *CoverHandler) find(writer http.ResponseWriter, req *http.Request) error {
	releaseGroupID, ok := mux.Vars(req)["releaseGroupID"]
	if !ok {
		return fmt.Errorf("%w: no release group ID", errBadRequest)
	}

	var width int
	if widthStr := req.URL.Query().Get("width"); widthStr != "" {
		parsed, err := strconv.Atoi(widthStr)
		if err != nil {
			return fmt.Errorf("%w: width must be a number, not %q", errBadRequest, widthStr)
		}
		width = parsed
	}

	img, err := ch.covers.FrontCover(req.Context(), releaseGroupID)
	if err != nil {
		return err
	}

	if width != 0 {
		img, err = ch.scaler.Scale(req.Context(), bytes.NewReader(img), width)
		if err != nil {
			return fmt.Errorf("scaling cover: %w", err)
		}
	}

	writer.Header().Set("Content-Type", http.DetectContentType(img))
	writer.Header().Set("Cache-Control", "max-age=86400")
	if _, err := writer.Write(img); err != nil {
		ch.log.Warn().Err(err).Msg("error writing cover")
	}

	return nil
}
