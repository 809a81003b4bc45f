package kustoclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kustoclient/kustoclient/kql"
)

func TestNewConnRejectsInvalidEndpoint(t *testing.T) {
	_, err := newConn("not-a-url", nil, NewPipeline(nil), NewClientDetails("app", "user"))
	assert.Error(t, err)
}

func TestNewConnBuildsRestPaths(t *testing.T) {
	c, err := newConn("https://cluster.kusto.windows.net", nil, NewPipeline(nil), NewClientDetails("app", "user"))
	assert.NoError(t, err)
	assert.Equal(t, "/v1/rest/mgmt", c.endMgmt.Path)
	assert.Equal(t, "/v2/rest/query", c.endQuery.Path)
}

func TestGetHeadersDefaults(t *testing.T) {
	c, err := newConn("https://cluster.kusto.windows.net", nil, NewPipeline(nil), NewClientDetails("myapp", "myuser"))
	assert.NoError(t, err)

	h := c.getHeaders(newRequestProperties())
	assert.Equal(t, "myapp", h.Get(ApplicationHeader))
	assert.Equal(t, "myuser", h.Get(UserHeader))
	assert.NotEmpty(t, h.Get(ClientRequestIDHeader))
}

func TestGetHeadersRespectsOverrides(t *testing.T) {
	c, err := newConn("https://cluster.kusto.windows.net", nil, NewPipeline(nil), NewClientDetails("myapp", "myuser"))
	assert.NoError(t, err)

	props := newRequestProperties()
	props.ClientRequestID = "custom-id"
	props.Application = "customapp"
	props.User = "customuser"

	h := c.getHeaders(props)
	assert.Equal(t, "custom-id", h.Get(ClientRequestIDHeader))
	assert.Equal(t, "customapp", h.Get(ApplicationHeader))
	assert.Equal(t, "customuser", h.Get(UserHeader))
}

func TestDoRequestRejectsDotQuery(t *testing.T) {
	c, err := newConn("https://cluster.kusto.windows.net", nil, NewPipeline(nil), NewClientDetails("app", "user"))
	assert.NoError(t, err)

	_, _, err = c.doRequest(context.Background(), execQuery, "db", kql.Raw(".show tables"), newRequestProperties())
	assert.Error(t, err)
}

type fakeHTTPPipeline struct {
	resp *http.Response
	err  error
}

func (f *fakeHTTPPipeline) Do(req *http.Request) (*http.Response, error) { return f.resp, f.err }

func TestDoRequestSendsToQueryEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Code = http.StatusOK
	rec.Body.WriteString("{}")

	c, err := newConn("https://cluster.kusto.windows.net", nil, &fakeHTTPPipeline{resp: rec.Result()}, NewClientDetails("app", "user"))
	assert.NoError(t, err)

	_, body, err := c.doRequest(context.Background(), execQuery, "db", kql.Raw("StormEvents | take 1"), newRequestProperties())
	assert.NoError(t, err)
	assert.NotNil(t, body)
}

func TestDoRequestPropagatesHTTPError(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Code = http.StatusBadRequest
	rec.Body.WriteString(`{"error":"bad request"}`)

	c, err := newConn("https://cluster.kusto.windows.net", nil, &fakeHTTPPipeline{resp: rec.Result()}, NewClientDetails("app", "user"))
	assert.NoError(t, err)

	_, _, err = c.doRequest(context.Background(), execMgmt, "db", kql.Raw(".show tables"), newRequestProperties())
	assert.Error(t, err)
}
