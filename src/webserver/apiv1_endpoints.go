package webserver

import "net/http"

// The following are URL Path endpoints for certain API calls.
const (
	APIv1EndpointMissing = "/api/v1/missing"
	APIv1EndpointAlbums  = "/api/v1/albums"
	APIv1EndpointCover   = "/api/v1/cover/{releaseGroupID}"
	APIv1EndpointAbout   = "/api/v1/about"
)

// APIv1Methods defines on which HTTP methods APIv1 endpoints will respond to.
// It is an uri_path => list of HTTP methods map.
var APIv1Methods = map[string][]string{
	APIv1EndpointMissing: {http.MethodGet},
	APIv1EndpointAlbums:  {http.MethodGet},
	APIv1EndpointCover:   {http.MethodGet},
	APIv1EndpointAbout:   {http.MethodGet},
}
