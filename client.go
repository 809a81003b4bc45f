// Package kustoclient is a client for a columnar-analytics service's
// query/command HTTP endpoint and its queued, object-storage-backed
// ingestion path.
package kustoclient

import (
	"context"
	"net/http"

	v1 "github.com/kustoclient/kustoclient/frames/v1"
	v2 "github.com/kustoclient/kustoclient/frames/v2"
	"github.com/kustoclient/kustoclient/kql"
)

// Client is the query/command entry point: execute_query, execute_query_stream,
// and execute_command all go through a single Client bound to one endpoint.
type Client struct {
	conn *conn
}

// ClientOption configures New.
type ClientOption func(*clientConfig)

type clientConfig struct {
	pipeline    Pipeline
	application string
	user        string
	httpClient  *http.Client
}

// WithPipeline substitutes a custom Pipeline (e.g. one with additional
// policies, or a test double) for the default retrying *http.Client.
func WithPipeline(p Pipeline) ClientOption {
	return func(c *clientConfig) { c.pipeline = p }
}

// WithHTTPClient substitutes the *http.Client the default Pipeline wraps.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) { c.httpClient = hc }
}

// WithApplicationForTracing sets the default x-ms-app header value for
// every call this Client makes.
func WithApplicationForTracing(app string) ClientOption {
	return func(c *clientConfig) { c.application = app }
}

// WithUserForTracing sets the default x-ms-user header value for every
// call this Client makes.
func WithUserForTracing(user string) ClientOption {
	return func(c *clientConfig) { c.user = user }
}

// New returns a Client talking to endpoint (e.g.
// "https://help.kusto.windows.net"), authenticating with cred (nil for an
// anonymous/test connection).
func New(endpoint string, cred TokenCredential, opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	pipeline := cfg.pipeline
	if pipeline == nil {
		pipeline = NewPipeline(cfg.httpClient)
	}

	cxn, err := newConn(endpoint, cred, pipeline, NewClientDetails(cfg.application, cfg.user))
	if err != nil {
		return nil, err
	}

	return &Client{conn: cxn}, nil
}

// Query is execute_query: it runs csl against db and returns the fully
// assembled, buffered dataset.
func (c *Client) Query(ctx context.Context, db string, csl kql.Statement, opts ...QueryOption) (*v2.Dataset, error) {
	props := applyQueryOptions(opts)
	return c.conn.executeQuery(ctx, db, csl, props)
}

// QueryIterative is execute_query_stream: it runs csl against db and
// returns a dataset that yields each table as soon as it completes,
// without waiting for the whole response.
func (c *Client) QueryIterative(ctx context.Context, db string, csl kql.Statement, opts ...QueryOption) (*v2.StreamingDataset, error) {
	props := applyQueryOptions(opts)
	return c.conn.executeQueryStream(ctx, db, csl, props)
}

// Mgmt is execute_command: it runs csl (a management command, conventionally
// prefixed with '.') against db and returns its tables.
func (c *Client) Mgmt(ctx context.Context, db string, csl kql.Statement, opts ...MgmtOption) (*v1.Dataset, error) {
	props := applyMgmtOptions(opts)
	return c.conn.executeCommand(ctx, db, csl, props)
}

// Close releases the Client's idle connections.
func (c *Client) Close() error {
	return c.conn.Close()
}
