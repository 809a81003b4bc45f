package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEAndUnwrap(t *testing.T) {
	inner := stderrors.New("boom")
	e := E(OpQuery, KInternal, inner)
	assert.Equal(t, "boom", e.Error())
	assert.True(t, stderrors.Is(e, inner))
}

func TestESFormats(t *testing.T) {
	e := ES(OpMgmt, KClientArgs, "bad value %d", 7)
	assert.Contains(t, e.Error(), "bad value 7")
}

func TestSetNoRetryBlocksRetry(t *testing.T) {
	e := E(OpQuery, KTimeout, stderrors.New("timeout")).SetNoRetry()
	assert.False(t, Retry(e))
}

func TestRetryByKind(t *testing.T) {
	assert.True(t, Retry(E(OpQuery, KTimeout, stderrors.New("x"))))
	assert.False(t, Retry(E(OpQuery, KInternal, stderrors.New("x"))))
	assert.False(t, Retry(stderrors.New("not an *Error")))
}

func TestRetryHTTPErrorRespectsPermanentMarker(t *testing.T) {
	permanentBody := []byte(`{"error":{"@permanent":true}}`)
	notPermanentBody := []byte(`{"error":{"@permanent":false}}`)
	noMarkerBody := []byte(`{"error":{}}`)

	assert.False(t, Retry(HTTP(OpQuery, "400 Bad Request", 400, permanentBody, "ctx")))
	assert.True(t, Retry(HTTP(OpQuery, "503 Unavailable", 503, notPermanentBody, "ctx")))
	assert.True(t, Retry(HTTP(OpQuery, "503 Unavailable", 503, noMarkerBody, "ctx")))
}

func TestWChainsInnerAndBlocksRetryTransitively(t *testing.T) {
	inner := E(OpQuery, KInternal, stderrors.New("root cause")).SetNoRetry()
	outer := W(inner, E(OpMgmt, KTimeout, stderrors.New("wrapped")))
	assert.False(t, Retry(outer))
}

func TestOneToErrNoOneApiErrors(t *testing.T) {
	assert.Nil(t, OneToErr(nil, OpQuery))
	assert.Nil(t, OneToErr(map[string]interface{}{}, OpQuery))
}

func TestOneToErrParsesFirstAndSecond(t *testing.T) {
	m := map[string]interface{}{
		"OneApiErrors": []interface{}{
			map[string]interface{}{
				"error": map[string]interface{}{
					"code":    "LimitsExceeded",
					"message": "too much data",
				},
			},
			map[string]interface{}{
				"error": map[string]interface{}{
					"code":    "Other",
					"message": "second error",
				},
			},
		},
	}

	got := OneToErr(m, OpQuery)
	if assert.NotNil(t, got) {
		assert.Equal(t, KLimitsExceeded, got.Kind)
		assert.NotNil(t, got.inner)
	}
}
