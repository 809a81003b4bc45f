package kustoclient

// conn.go holds the connection to the service and the methods that turn a
// query/command into an HTTP request and a decoded frame stream, grounded
// on kusto/conn.go.

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"unicode"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kustoclient/kustoclient/errors"
	v1 "github.com/kustoclient/kustoclient/frames/v1"
	v2 "github.com/kustoclient/kustoclient/frames/v2"
	"github.com/kustoclient/kustoclient/kql"
)

var validURL = regexp.MustCompile(`https://([a-zA-Z0-9_-]+\.){1,2}.*`)

var bufferPool = sync.Pool{
	New: func() interface{} { return &bytes.Buffer{} },
}

const (
	ClientRequestIDHeader = "x-ms-client-request-id"
	ApplicationHeader     = "x-ms-app"
	UserHeader            = "x-ms-user"
	ClientVersionHeader   = "x-ms-client-version"
)

// conn provides connectivity to a service endpoint: it composes requests,
// sends them through a Pipeline, and decodes the response into a frame
// channel.
type conn struct {
	endpoint          string
	tokenProvider     *tokenProvider
	endMgmt, endQuery *url.URL
	pipeline          Pipeline
	clientDetails     *ClientDetails
}

func newConn(endpoint string, cred TokenCredential, pipeline Pipeline, clientDetails *ClientDetails) (*conn, error) {
	if !validURL.MatchString(endpoint) {
		return nil, errors.ES(errors.OpServConn, errors.KClientArgs, "endpoint is not valid(%s), should be https://<cluster name>.*", endpoint).SetNoRetry()
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.ES(errors.OpServConn, errors.KClientArgs, "could not parse the endpoint(%s): %s", endpoint, err).SetNoRetry()
	}
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}

	return &conn{
		endpoint:      endpoint,
		tokenProvider: newTokenProvider(cred, endpoint),
		endMgmt:       u.JoinPath("/v1/rest/mgmt"),
		endQuery:      u.JoinPath("/v2/rest/query"),
		pipeline:      pipeline,
		clientDetails: clientDetails,
	}, nil
}

type queryMsg struct {
	DB         string             `json:"db"`
	CSL        string             `json:"csl"`
	Properties *requestProperties `json:"properties,omitempty"`
}

const (
	execQuery = 1
	execMgmt  = 2
)

// executeQuery runs csl as a v2 query and returns the fully assembled
// dataset. This is execute_query from the spec's query runner.
func (c *conn) executeQuery(ctx context.Context, db string, csl kql.Statement, props *requestProperties) (*v2.Dataset, error) {
	op, body, err := c.doRequest(ctx, execQuery, db, csl, props)
	if err != nil {
		return nil, err
	}
	return v2.NewDataset(ctx, body, op)
}

// executeQueryStream runs csl as a v2 query and returns a dataset that
// yields each table as it completes. This is execute_query_stream.
func (c *conn) executeQueryStream(ctx context.Context, db string, csl kql.Statement, props *requestProperties) (*v2.StreamingDataset, error) {
	op, body, err := c.doRequest(ctx, execQuery, db, csl, props)
	if err != nil {
		return nil, err
	}
	return v2.NewStreamingDataset(ctx, body, op), nil
}

// executeCommand runs csl as a v1 management command. This is
// execute_command.
func (c *conn) executeCommand(ctx context.Context, db string, csl kql.Statement, props *requestProperties) (*v1.Dataset, error) {
	op, body, err := c.doRequest(ctx, execMgmt, db, csl, props)
	if err != nil {
		return nil, err
	}
	raw, err := v1.Decode(body, op)
	if err != nil {
		return nil, err
	}
	return v1.NewDataset(raw, op)
}

func (c *conn) doRequest(ctx context.Context, execType int, db string, csl kql.Statement, props *requestProperties) (errors.Op, io.ReadCloser, error) {
	var op errors.Op
	if execType == execQuery {
		op = errors.OpQuery
	} else {
		op = errors.OpMgmt
	}

	if execType == execQuery && strings.HasPrefix(strings.TrimSpace(csl.String()), ".") {
		return op, nil, errors.ES(errors.OpQuery, errors.KUnsupportedOperation, "a query cannot begin with a period(.), only management commands can").SetNoRetry()
	}

	text := csl.String()
	if !csl.SupportsInlineParameters() && props.QueryParameters != nil && props.QueryParameters.Count() > 0 {
		text = fmt.Sprintf("%s\n%s", props.QueryParameters.ToDeclarationString(), text)
	}

	buff := bufferPool.Get().(*bytes.Buffer)
	buff.Reset()
	defer bufferPool.Put(buff)

	if err := json.NewEncoder(buff).Encode(queryMsg{DB: db, CSL: text, Properties: props}); err != nil {
		return op, nil, errors.E(op, errors.KInternal, fmt.Errorf("could not JSON marshal the request message: %w", err))
	}

	var endpoint *url.URL
	if execType == execQuery {
		endpoint = c.endQuery
	} else {
		endpoint = c.endMgmt
	}

	headers := c.getHeaders(props)
	body, err := c.send(ctx, op, endpoint, io.NopCloser(bytes.NewReader(buff.Bytes())), headers)
	return op, body, err
}

func (c *conn) send(ctx context.Context, op errors.Op, endpoint *url.URL, body io.ReadCloser, headers http.Header) (io.ReadCloser, error) {
	logger := zerolog.Ctx(ctx).With().Str("function", "send").Str("endpoint", endpoint.String()).Logger()

	// non-ASCII header runes are replaced with '?', matching the service's
	// header transport limitations.
	for _, values := range headers {
		for i := range values {
			var b strings.Builder
			for _, r := range values[i] {
				if r > unicode.MaxASCII {
					b.WriteRune('?')
				} else {
					b.WriteRune(r)
				}
			}
			values[i] = b.String()
		}
	}

	if c.tokenProvider.authorizationRequired() {
		token, err := c.tokenProvider.token(ctx)
		if err != nil {
			return nil, errors.ES(op, errors.KInternal, "error acquiring token: %s", err)
		}
		headers.Add("Authorization", "Bearer "+token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), body)
	if err != nil {
		return nil, errors.E(op, errors.KInternal, err)
	}
	req.Header = headers

	logger.Info().Msg("sending request")
	resp, err := c.pipeline.Do(req)
	if err != nil {
		logger.Error().Err(err).Msg("error sending request")
		return nil, errors.E(op, errors.KHTTPError, err)
	}

	respBody, err := translateBody(resp, op)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		all, _ := io.ReadAll(respBody)
		respBody.Close()
		return nil, errors.HTTP(op, resp.Status, resp.StatusCode, all, "error from endpoint")
	}
	return respBody, nil
}

func (c *conn) getHeaders(props *requestProperties) http.Header {
	h := http.Header{}
	h.Add("Accept", "application/json")
	h.Add("Accept-Encoding", "gzip, deflate")
	h.Add("Content-Type", "application/json; charset=utf-8")
	h.Add("Connection", "Keep-Alive")
	h.Add("x-ms-version", "2019-02-13")

	if props.ClientRequestID != "" {
		h.Add(ClientRequestIDHeader, props.ClientRequestID)
	} else {
		h.Add(ClientRequestIDHeader, "KGC.execute;"+uuid.New().String())
	}

	if props.Application != "" {
		h.Add(ApplicationHeader, props.Application)
	} else {
		h.Add(ApplicationHeader, c.clientDetails.ApplicationForTracing())
	}

	if props.User != "" {
		h.Add(UserHeader, props.User)
	} else {
		h.Add(UserHeader, c.clientDetails.UserNameForTracing())
	}

	h.Add(ClientVersionHeader, c.clientDetails.ClientVersionForTracing())
	return h
}

func (c *conn) Close() error {
	return nil
}
