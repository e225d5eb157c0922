package api

import (
	"net/http"
	"os"
	"time"

	"github.com/angelmondragon/sales-analytics/pkg/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

// NewServer returns the HTTP server cmd/api runs. PORT overrides the configured port.
func NewServer(cfg config.AppConfig, handler http.Handler) *http.Server {
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
