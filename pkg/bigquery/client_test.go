package bigquery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/api/googleapi"

	"github.com/angelmondragon/sales-analytics/pkg/config"
)

func TestOrdersTableTrimsWhitespace(t *testing.T) {
	if got := ordersTable(config.BigQueryConfig{OrdersTable: " orders_flat "}); got != "orders_flat" {
		t.Fatalf("expected orders_flat, got %q", got)
	}
	if got := ordersTable(config.BigQueryConfig{}); got != "" {
		t.Fatalf("expected empty table, got %q", got)
	}
}

func TestQualifiedTable(t *testing.T) {
	got := QualifiedTable("acme-prod", "sales", "orders_flat")
	if got != "`acme-prod.sales.orders_flat`" {
		t.Fatalf("unexpected table reference %s", got)
	}
}

func TestNewClientValidatesConfig(t *testing.T) {
	ctx := context.Background()
	if _, err := NewClient(ctx, config.GCPConfig{}, config.BigQueryConfig{Dataset: "sales", OrdersTable: "o"}, nil); !errors.Is(err, errProjectIDRequired) {
		t.Fatalf("expected project id error, got %v", err)
	}
	if _, err := NewClient(ctx, config.GCPConfig{ProjectID: "p"}, config.BigQueryConfig{OrdersTable: "o"}, nil); !errors.Is(err, errDatasetRequired) {
		t.Fatalf("expected dataset error, got %v", err)
	}
	if _, err := NewClient(ctx, config.GCPConfig{ProjectID: "p"}, config.BigQueryConfig{Dataset: "sales"}, nil); !errors.Is(err, errTableNameRequired) {
		t.Fatalf("expected table error, got %v", err)
	}
}

func TestNilClientGuards(t *testing.T) {
	var client *Client
	if err := client.Ping(context.Background()); !errors.Is(err, errClientNotInitialized) {
		t.Fatalf("expected not initialized, got %v", err)
	}
	if _, err := client.Query(context.Background(), "SELECT 1", nil); !errors.Is(err, errClientNotInitialized) {
		t.Fatalf("expected not initialized, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close on nil client should be a no-op, got %v", err)
	}
	if client.OrdersTable() != "" {
		t.Fatal("expected empty table reference for nil client")
	}
}

func TestIsNotFound(t *testing.T) {
	notFound := fmt.Errorf("wrapped: %w", &googleapi.Error{Code: http.StatusNotFound})
	if !isNotFound(notFound) {
		t.Fatal("expected wrapped 404 to be detected")
	}
	if isNotFound(&googleapi.Error{Code: http.StatusForbidden}) {
		t.Fatal("403 is not a not-found error")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatal("plain errors are not not-found errors")
	}
}

func TestClientOptionsPrioritizesJSON(t *testing.T) {
	gcp := config.GCPConfig{
		CredentialsJSON:        `{"dummy": "value"}`,
		ApplicationCredentials: "/tmp/creds",
	}

	opts := clientOptions(gcp)
	if len(opts) != 1 {
		t.Fatalf("expected 1 option, got %d", len(opts))
	}
}

func TestClientOptionsEmpty(t *testing.T) {
	opts := clientOptions(config.GCPConfig{})
	if len(opts) != 0 {
		t.Fatalf("expected 0 options when no credentials provided, got %d", len(opts))
	}
}
