package webserver

import (
	"net/http"

	"github.com/ironsmile/following/src/version"
	"github.com/ironsmile/following/src/webserver/webutils"
)

type aboutHandler struct {
	resp aboutResponse
}

// NewAboutHandler returns the HTTP handler which shows a JSON with information
// about the server.
func NewAboutHandler() http.Handler {
	return &aboutHandler{
		resp: aboutResponse{
			ServerVersion: version.Version,
			UserAgent:     version.UserAgent(),
		},
	}
}

func (h *aboutHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	if err := webutils.JSON(writer, h.resp); err != nil {
		msg := "Failed to encode JSON response: " + err.Error()
		http.Error(writer, msg, http.StatusInternalServerError)
		return
	}
}

type aboutResponse struct {
	ServerVersion string `json:"server_version"`
	UserAgent     string `json:"user_agent"`
}
