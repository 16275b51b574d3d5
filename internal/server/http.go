package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"title-reader/config"
)

// NewHTTPServer sizes WriteTimeout to outlast the slowest fetch: backend
// startup plus the full title timeout.
func NewHTTPServer(cfg *config.Config, mux *chi.Mux) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Browser.StartupTimeout + cfg.Browser.FetchTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
