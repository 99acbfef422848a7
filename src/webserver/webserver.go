// Package webserver contains the HTTP API for finding missing albums and
// browsing the library.
package webserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ironsmile/following/src/library"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP API server.
type Server struct {
	listen string
	log    zerolog.Logger

	library library.Querier
	missing MissingFinder
	covers  CoverFinder
	scaler  ImageScaler
}

// NewServer returns a new Server which will listen on the listen address. The
// returned server is ready and calling its Serve method will start it.
func NewServer(
	listen string,
	lib library.Querier,
	missing MissingFinder,
	covers CoverFinder,
	scaler ImageScaler,
	log zerolog.Logger,
) *Server {
	return &Server{
		listen:  listen,
		log:     log,
		library: lib,
		missing: missing,
		covers:  covers,
		scaler:  scaler,
	}
}

// Handler returns the HTTP handler with all API endpoints.
func (srv *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.StrictSlash(true)
	router.UseEncodedPath()

	handlers := map[string]http.Handler{
		APIv1EndpointMissing: NewMissingHandler(srv.missing, srv.log),
		APIv1EndpointAlbums:  NewAlbumsHandler(srv.library, srv.log),
		APIv1EndpointCover:   NewCoverHandler(srv.covers, srv.scaler, srv.log),
		APIv1EndpointAbout:   NewAboutHandler(),
	}

	for endpoint, handler := range handlers {
		router.Handle(endpoint, handler).Methods(APIv1Methods[endpoint]...)
	}

	return NewGzipHandler(router, []string{"/api/v1/cover/"})
}

// Serve starts listening and blocks until ctx is done. Then the server is
// shut down gracefully.
func (srv *Server) Serve(ctx context.Context) error {
	lsn, err := net.Listen("tcp", srv.listen)
	if err != nil {
		return err
	}

	return srv.serve(ctx, lsn)
}

func (srv *Server) serve(ctx context.Context, lsn net.Listener) error {
	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		srv.log.Info().Str("address", lsn.Addr().String()).Msg("Webserver started")
		err := httpSrv.Serve(lsn)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := httpSrv.Shutdown(shutdownCtx)
		srv.log.Info().Msg("Webserver stopped")
		return err
	})

	return g.Wait()
}
