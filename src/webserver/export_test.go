package webserver

import (
	"context"
	"net"
)

// ServeListener is Serve with an already opened listener.
func (srv *Server) ServeListener(ctx context.Context, lsn net.Listener) error {
	return srv.serve(ctx, lsn)
}
