package kustoclient

// response.go decompresses a response body per its Content-Encoding,
// grounded on kusto/internal/response/response.go.

import (
	"compress/flate"
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/kustoclient/kustoclient/errors"
)

type originalCloser struct {
	original io.ReadCloser
	wrapper  io.ReadCloser
}

func (o *originalCloser) Read(p []byte) (int, error) { return o.wrapper.Read(p) }

func (o *originalCloser) Close() error {
	if err := o.wrapper.Close(); err != nil {
		return err
	}
	return o.original.Close()
}

// translateBody wraps resp.Body in a decompressing reader according to its
// Content-Encoding header.
func translateBody(resp *http.Response, op errors.Op) (io.ReadCloser, error) {
	body := resp.Body

	switch enc := strings.ToLower(resp.Header.Get("Content-Encoding")); enc {
	case "":
		return body, nil
	case "gzip":
		wrapper, err := gzip.NewReader(body)
		if err != nil {
			return nil, errors.E(op, errors.KInternal, err)
		}
		return &originalCloser{original: body, wrapper: wrapper}, nil
	case "deflate":
		return &originalCloser{original: body, wrapper: flate.NewReader(body)}, nil
	default:
		return nil, errors.ES(op, errors.KInternal, "Content-Encoding was unrecognized: %s", enc)
	}
}
