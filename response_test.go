package kustoclient

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kustoclient/kustoclient/errors"
)

func gzipBody(s string) io.ReadCloser {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, _ = w.Write([]byte(s))
	_ = w.Close()
	return io.NopCloser(&buf)
}

func deflateBody(s string) io.ReadCloser {
	var buf bytes.Buffer
	w, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	_, _ = w.Write([]byte(s))
	_ = w.Close()
	return io.NopCloser(&buf)
}

func TestTranslateBodyNoEncoding(t *testing.T) {
	resp := &http.Response{Header: http.Header{}, Body: io.NopCloser(bytes.NewBufferString("plain"))}
	rc, err := translateBody(resp, errors.OpQuery)
	assert.NoError(t, err)
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "plain", string(b))
}

func TestTranslateBodyGzip(t *testing.T) {
	resp := &http.Response{
		Header: http.Header{"Content-Encoding": []string{"gzip"}},
		Body:   gzipBody("hello gzip"),
	}
	rc, err := translateBody(resp, errors.OpQuery)
	assert.NoError(t, err)
	b, err := io.ReadAll(rc)
	assert.NoError(t, err)
	assert.Equal(t, "hello gzip", string(b))
	assert.NoError(t, rc.Close())
}

func TestTranslateBodyDeflate(t *testing.T) {
	resp := &http.Response{
		Header: http.Header{"Content-Encoding": []string{"deflate"}},
		Body:   deflateBody("hello deflate"),
	}
	rc, err := translateBody(resp, errors.OpQuery)
	assert.NoError(t, err)
	b, err := io.ReadAll(rc)
	assert.NoError(t, err)
	assert.Equal(t, "hello deflate", string(b))
}

func TestTranslateBodyUnknownEncoding(t *testing.T) {
	resp := &http.Response{
		Header: http.Header{"Content-Encoding": []string{"br"}},
		Body:   io.NopCloser(bytes.NewBufferString("x")),
	}
	_, err := translateBody(resp, errors.OpQuery)
	assert.Error(t, err)
}

func TestTranslateBodyGzipBadData(t *testing.T) {
	resp := &http.Response{
		Header: http.Header{"Content-Encoding": []string{"gzip"}},
		Body:   io.NopCloser(bytes.NewBufferString("not gzip data")),
	}
	_, err := translateBody(resp, errors.OpQuery)
	assert.Error(t, err)
}
