package kustoclient

import (
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Pipeline is the HTTP transport this module sends requests through. The
// default implementation is *http.Client wrapped with retryingPipeline;
// callers may substitute their own (a policy chain, a test double, ...).
type Pipeline interface {
	Do(req *http.Request) (*http.Response, error)
}

// retryingPipeline wraps a Pipeline with exponential backoff retry for
// transient failures: a connection-level error from Do, or a 429/5xx
// response status.
type retryingPipeline struct {
	next Pipeline
}

// NewPipeline wraps client (or a fresh *http.Client if nil) with retry.
func NewPipeline(client *http.Client) Pipeline {
	if client == nil {
		client = &http.Client{}
	}
	return &retryingPipeline{next: client}
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (p *retryingPipeline) Do(req *http.Request) (*http.Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	boCtx := backoff.WithContext(bo, req.Context())

	var resp *http.Response
	err := backoff.Retry(func() error {
		if req.Body != nil && req.GetBody != nil {
			body, gerr := req.GetBody()
			if gerr != nil {
				return backoff.Permanent(gerr)
			}
			req.Body = body
		}

		r, err := p.next.Do(req)
		if err != nil {
			return err
		}
		if retryableStatus(r.StatusCode) {
			resp = r
			return errRetryableStatus
		}
		resp = r
		return nil
	}, boCtx)

	if err != nil && err != errRetryableStatus {
		return nil, err
	}
	return resp, nil
}

var errRetryableStatus = &retryableStatusErr{}

type retryableStatusErr struct{}

func (*retryableStatusErr) Error() string { return "retryable HTTP status" }
