// Package v2 implements the query service's line-delimited v2 frame
// protocol: a decoder for the wire format, and full (buffered) and
// streaming (incremental) dataset assemblers built on top of it.
package v2

import (
	"bufio"
	"bytes"
	"context"
	"io"

	json "github.com/goccy/go-json"

	"github.com/kustoclient/kustoclient/errors"
	"github.com/kustoclient/kustoclient/frames"
)

// DefaultFrameCapacity is the default buffering of the channel ReadFrames
// sends decoded frames to.
const DefaultFrameCapacity = 5

// ReadFrames decodes a v2 response body, one frame per line, sending each
// to ch. Each line is prefixed with '[' (first), ',' (subsequent), or ']'
// (last, and the line is discarded rather than decoded); ReadFrames strips
// that prefix byte before decoding the remainder as one frame. It closes ch
// before returning, whether it stops cleanly or on error.
func ReadFrames(ctx context.Context, r io.Reader, ch chan<- frames.Frame, op errors.Op) error {
	defer close(ch)

	br := bufio.NewReader(r)
	first, err := br.Peek(1)
	if err != nil {
		if err == io.EOF {
			return errors.ES(op, errors.KHTTPError, "empty response body")
		}
		return errors.E(op, errors.KIO, err)
	}
	if first[0] != '[' {
		all, _ := io.ReadAll(br)
		return errors.ES(op, errors.KHTTPError, "unexpected response body: %s", string(all))
	}

	for i := 0; ; i++ {
		line, readErr := br.ReadBytes('\n')
		if len(line) == 0 {
			if readErr == io.EOF {
				return errors.ES(op, errors.KTruncatedStream, "frame stream ended before a closing ']' line")
			}
			return errors.E(op, errors.KIO, readErr)
		}

		delim := line[0]
		if delim == ']' {
			return nil
		}

		wantDelim := byte(',')
		if i == 0 {
			wantDelim = '['
		}
		if delim != wantDelim {
			return errors.ES(op, errors.KUnexpectedByte, "expected leading byte %q, got %q", wantDelim, delim)
		}

		var raw frames.EveryFrame
		dec := json.NewDecoder(bytes.NewReader(line[1:]))
		dec.UseNumber()
		if decErr := dec.Decode(&raw); decErr != nil {
			return errors.E(op, errors.KInvalidFrame, decErr)
		}

		f, decErr := raw.Decode()
		if decErr != nil {
			return decErr
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case ch <- f:
		}

		if readErr == io.EOF {
			return errors.ES(op, errors.KTruncatedStream, "frame stream ended before a closing ']' line")
		}
	}
}
