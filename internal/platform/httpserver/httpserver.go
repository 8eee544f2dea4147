package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server. Write timeout leaves headroom for the simulated
// payment round trip; the router applies its own per-request timeout.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
