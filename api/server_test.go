package api

import (
	"net/http"
	"testing"

	"github.com/angelmondragon/sales-analytics/pkg/config"
)

func TestNewServerUsesConfiguredPort(t *testing.T) {
	t.Setenv("PORT", "")
	srv := NewServer(config.AppConfig{Port: "9090"}, http.NotFoundHandler())
	if srv.Addr != ":9090" {
		t.Fatalf("expected :9090, got %q", srv.Addr)
	}
	if srv.ReadHeaderTimeout != readHeaderTimeout {
		t.Fatalf("expected read header timeout to be set")
	}
}

func TestNewServerPrefersPortEnv(t *testing.T) {
	t.Setenv("PORT", "7000")
	srv := NewServer(config.AppConfig{Port: "9090"}, http.NotFoundHandler())
	if srv.Addr != ":7000" {
		t.Fatalf("expected :7000, got %q", srv.Addr)
	}
}
