package kustoclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePipeline struct {
	calls    int
	statuses []int
	err      error
}

func (f *fakePipeline) Do(req *http.Request) (*http.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	status := f.statuses[f.calls]
	if f.calls < len(f.statuses)-1 {
		f.calls++
	}
	rec := httptest.NewRecorder()
	rec.Code = status
	return rec.Result(), nil
}

func newTestRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, "https://cluster.kusto.windows.net/v2/rest/query", nil)
	assert.NoError(t, err)
	return req
}

func TestRetryingPipelineSucceedsImmediately(t *testing.T) {
	next := &fakePipeline{statuses: []int{http.StatusOK}}
	p := NewPipeline(nil).(*retryingPipeline)
	p.next = next

	resp, err := p.Do(newTestRequest(t))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRetryingPipelineRetriesOnServerError(t *testing.T) {
	next := &fakePipeline{statuses: []int{http.StatusServiceUnavailable, http.StatusServiceUnavailable, http.StatusOK}}
	p := NewPipeline(nil).(*retryingPipeline)
	p.next = next

	resp, err := p.Do(newTestRequest(t))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRetryableStatus(t *testing.T) {
	assert.True(t, retryableStatus(http.StatusTooManyRequests))
	assert.True(t, retryableStatus(http.StatusInternalServerError))
	assert.False(t, retryableStatus(http.StatusOK))
	assert.False(t, retryableStatus(http.StatusBadRequest))
}
