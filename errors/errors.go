// Package errors provides the client's flat, tagged error type. Every error
// that escapes this module is an *Error carrying an Op (what was being done)
// and a Kind (what went wrong), optionally wrapping an inner error.
package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Op identifies the operation that produced an error.
type Op string

const (
	OpUnknown   Op = "unknown"
	OpServConn  Op = "serverConnection"
	OpQuery     Op = "query"
	OpMgmt      Op = "mgmt"
	OpFileIngest Op = "fileIngest"
	OpIngestMgr Op = "ingestResourceManager"
)

// String implements fmt.Stringer.
func (o Op) String() string {
	return string(o)
}

// Kind categorizes the failure. Consumers match on Kind, not on error
// strings or type hierarchies.
type Kind int

const (
	KOther Kind = iota
	KIO
	KInternal
	KDBNotExist
	KLimitsExceeded
	KClientArgs
	KLocalFileSystem
	KTimeout
	KHTTPError
	KBlobstore
	KNotFound

	// KInvalidFrame, KUnexpectedByte, and KTruncatedStream are raised by
	// the v2 frame decoder (frames/v2/reader.go).
	KInvalidFrame
	KUnexpectedByte
	KTruncatedStream

	// KRowCountMismatch, KPrematureCompletion, and KUnknownTable are
	// raised by the dataset assembler (frames/v2/assembler.go).
	KRowCountMismatch
	KPrematureCompletion
	KUnknownTable

	// KUnsupportedOperation is raised by the query runner when a
	// management command (text starting with '.') is sent through
	// Query or QueryIterative.
	KUnsupportedOperation

	// KNoResourcesFound, KExpectedOneTable, KExpectedOneRow,
	// KColumnNotFound, KEmptyToken, and KInvalidJSONResponse form the
	// ResourceManagerError umbrella, raised by the ingestion-resources
	// and authorization-context caches (ingest/resources/manager.go).
	KNoResourcesFound
	KExpectedOneTable
	KExpectedOneRow
	KColumnNotFound
	KEmptyToken
	KInvalidJSONResponse

	// KIngestionSerialization (the ingestion message failed to validate or
	// serialize) and KQueueEnqueue (the enqueue call failed) are both
	// raised by the queued-ingestion submitter (ingest/queue/submitter.go).
	KIngestionSerialization
	KQueueEnqueue
)

// Error is the concrete error type returned across this module.
type Error struct {
	Op   Op
	Kind Kind
	// Err is the wrapped error, if any.
	Err error

	// inner optionally chains to another *Error, used by W to compose a
	// causal chain while preserving each layer's Op/Kind.
	inner *Error

	// permanent, when true, overrides Kind-based retry classification:
	// the error is never retryable.
	permanent bool

	// restErrMsg holds a raw REST error body, inspected by Retry for a
	// server-supplied @permanent marker.
	restErrMsg []byte
}

// Error implements error.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: kind=%d", e.Op, e.Kind)
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// SetNoRetry marks the error as permanently non-retryable.
func (e *Error) SetNoRetry() *Error {
	e.permanent = true
	return e
}

// E builds an *Error from an operation, a kind, and an underlying error.
func E(op Op, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// ES builds an *Error from an operation, a kind, and a formatted message.
func ES(op Op, kind Kind, format string, a ...interface{}) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, a...)}
}

// HTTP builds an *Error representing a non-2xx HTTP response.
func HTTP(op Op, status string, statusCode int, body []byte, context string) *Error {
	return &Error{
		Op:         op,
		Kind:       KHTTPError,
		Err:        fmt.Errorf("%s: unexpected HTTP status %s: %s", context, status, string(body)),
		restErrMsg: body,
	}
}

// W chains inner beneath outer and returns outer, whose Op/Kind head the
// chain. Retry consults the chained inner error; Unwrap, errors.Is and
// errors.As follow only outer's own Err, not inner.
func W(inner *Error, outer *Error) *Error {
	outer.inner = inner
	return outer
}

// Is enables errors.Is(err, target) to see through the wrapped Err chain.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

type restErrorBody struct {
	Error struct {
		Permanent    *bool `json:"@permanent"`
		NotPermanent *bool `json:"@notPermanent"`
	} `json:"error"`
}

// Retry reports whether err represents a condition worth retrying. Only
// KTimeout and (conditionally) KHTTPError are retryable; every other Kind,
// a permanent error, or an inner error that itself isn't retryable, is not.
func Retry(err error) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	if e.permanent {
		return false
	}
	if e.inner != nil && !Retry(e.inner) {
		return false
	}

	switch e.Kind {
	case KTimeout:
		return true
	case KHTTPError:
		if len(e.restErrMsg) == 0 {
			return false
		}
		var body restErrorBody
		if err := json.Unmarshal(bytes.TrimSpace(e.restErrMsg), &body); err != nil {
			return false
		}
		if body.Error.Permanent != nil {
			return !*body.Error.Permanent
		}
		return true
	default:
		return false
	}
}

// OneToErr inspects a decoded JSON map for a Kusto "OneApiErrors" list and,
// if present and well-formed, returns the first two errors chained together
// (outer = first entry, inner = second, if any). It returns nil if the map
// carries no recognizable OneApiErrors.
func OneToErr(m map[string]interface{}, op Op) *Error {
	if m == nil {
		return nil
	}
	raw, ok := m["OneApiErrors"]
	if !ok {
		return nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}

	var parsed []*Error
	for _, entry := range list {
		em, ok := entry.(map[string]interface{})
		if !ok {
			return nil
		}
		inner, ok := em["error"].(map[string]interface{})
		if !ok {
			continue
		}
		msg, _ := inner["message"].(string)
		code, _ := inner["code"].(string)

		e := &Error{Op: op, Err: errors.New(msg)}
		if kind, text, ok := knownCode(code, msg); ok {
			e.Kind = kind
			e.Err = errors.New(text)
		}
		parsed = append(parsed, e)
	}

	if len(parsed) == 0 {
		return nil
	}

	out := parsed[0]
	out.Err = errors.New(firstMessage(list))
	if len(parsed) > 1 {
		out.inner = parsed[1]
	}
	return out
}

func firstMessage(list []interface{}) string {
	em, _ := list[0].(map[string]interface{})
	inner, _ := em["error"].(map[string]interface{})
	msg, _ := inner["message"].(string)
	return msg
}

var limitsExceededDoc = "See https://docs.microsoft.com/en-us/azure/kusto/concepts/querylimits"

func knownCode(code, msg string) (Kind, string, bool) {
	switch code {
	case "LimitsExceeded":
		return KLimitsExceeded, fmt.Sprintf("%s;%s", msg, limitsExceededDoc), true
	}
	return KOther, "", false
}
