package bigquery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/angelmondragon/sales-analytics/pkg/config"
	"github.com/angelmondragon/sales-analytics/pkg/logger"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	metadataCheckTimeout = 10 * time.Second
)

type Client struct {
	client    *bigquery.Client
	dataset   *bigquery.Dataset
	projectID string
	table     string
}

var (
	errProjectIDRequired    = errors.New("gcp project id is required")
	errDatasetRequired      = errors.New("bigquery dataset is required")
	errTableNameRequired    = errors.New("bigquery orders table is required")
	errClientNotInitialized = errors.New("bigquery client not initialized")
)

type Pinger interface {
	Ping(context.Context) error
}

// RowIterator is the subset of *bigquery.RowIterator used by readers.
type RowIterator interface {
	Next(dst any) error
}

// NewClient creates a BigQuery client and verifies the configured dataset and orders table.
func NewClient(ctx context.Context, gcp config.GCPConfig, cfg config.BigQueryConfig, logg *logger.Logger) (*Client, error) {
	projectID := strings.TrimSpace(gcp.ProjectID)
	if projectID == "" {
		return nil, errProjectIDRequired
	}

	datasetID := strings.TrimSpace(cfg.Dataset)
	if datasetID == "" {
		return nil, errDatasetRequired
	}

	table := ordersTable(cfg)
	if table == "" {
		return nil, errTableNameRequired
	}

	opts := clientOptions(gcp)
	bqClient, err := bigquery.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating bigquery client: %w", err)
	}

	client := &Client{
		client:    bqClient,
		dataset:   bqClient.Dataset(datasetID),
		projectID: projectID,
		table:     table,
	}

	if err := client.ensureDatasetAndTable(ctx); err != nil {
		_ = bqClient.Close()
		return nil, err
	}

	if logg != nil {
		logg.Info(ctx, "bigquery client initialized")
	}

	return client, nil
}

func clientOptions(gcp config.GCPConfig) []option.ClientOption {
	var opts []option.ClientOption
	switch {
	case strings.TrimSpace(gcp.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(gcp.CredentialsJSON)))
	case strings.TrimSpace(gcp.ApplicationCredentials) != "":
		opts = append(opts, option.WithCredentialsFile(gcp.ApplicationCredentials))
	}
	return opts
}

func ordersTable(cfg config.BigQueryConfig) string {
	return strings.TrimSpace(cfg.OrdersTable)
}

// QualifiedTable renders a backtick-quoted project.dataset.table reference.
func QualifiedTable(projectID, dataset, table string) string {
	return fmt.Sprintf("`%s.%s.%s`", strings.TrimSpace(projectID), strings.TrimSpace(dataset), strings.TrimSpace(table))
}

// OrdersTable returns the fully qualified orders table reference.
func (c *Client) OrdersTable() string {
	if c == nil || c.dataset == nil {
		return ""
	}
	return QualifiedTable(c.projectID, c.dataset.DatasetID, c.table)
}

func (c *Client) ensureDatasetAndTable(ctx context.Context) error {
	if c == nil || c.dataset == nil {
		return errClientNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, metadataCheckTimeout)
	defer cancel()

	if _, err := c.dataset.Metadata(ctx); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("dataset %q does not exist", c.dataset.DatasetID)
		}
		return fmt.Errorf("checking dataset %q: %w", c.dataset.DatasetID, err)
	}

	if _, err := c.dataset.Table(c.table).Metadata(ctx); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("table %q does not exist", c.table)
		}
		return fmt.Errorf("checking table %q: %w", c.table, err)
	}

	return nil
}

// Ping verifies the dataset and orders table are accessible.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return errClientNotInitialized
	}
	return c.ensureDatasetAndTable(ctx)
}

// Query executes SQL against BigQuery and returns the row iterator.
func (c *Client) Query(ctx context.Context, sql string, params []bigquery.QueryParameter) (RowIterator, error) {
	if c == nil || c.client == nil {
		return nil, errClientNotInitialized
	}
	if strings.TrimSpace(sql) == "" {
		return nil, errors.New("sql query is required")
	}
	q := c.client.Query(sql)
	q.Parameters = params
	it, err := q.Read(ctx)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Close releases the BigQuery client.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr.Code == http.StatusNotFound
	}
	return false
}
