// Package site serves the embedded scoreboard page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the scoreboard page at / to mux. Other unmatched paths
// stay 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /{$}", http.FileServer(FS()))
}
