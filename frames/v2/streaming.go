package v2

import (
	"context"
	"io"

	"github.com/kustoclient/kustoclient/errors"
	"github.com/kustoclient/kustoclient/frames"
)

// StreamingDataset yields one LogicalTable per completed table as soon as
// its TableCompletion (or standalone DataTable) frame arrives, without
// waiting for the rest of the response body.
type StreamingDataset struct {
	results chan LogicalTable
}

// Results returns the channel of completed tables. It is closed once the
// stream has been fully consumed; a final LogicalTable with a non-nil Err
// may arrive just before the close.
func (s *StreamingDataset) Results() <-chan LogicalTable { return s.results }

// NewStreamingDataset starts assembling r in the background. r is closed
// once its frames have all been read, cleanly or on error.
func NewStreamingDataset(ctx context.Context, r io.ReadCloser, op errors.Op) *StreamingDataset {
	s := &StreamingDataset{results: make(chan LogicalTable, 1)}

	frameCh := make(chan frames.Frame, DefaultFrameCapacity)
	readErrCh := make(chan error, 1)

	go func() {
		defer r.Close()
		readErrCh <- ReadFrames(ctx, r, frameCh, op)
	}()

	go func() {
		defer close(s.results)

		asm := newAssembler(op)
		for {
			select {
			case <-ctx.Done():
				s.results <- LogicalTable{Err: errors.ES(op, errors.KTimeout, "context done: %s", ctx.Err())}
				return
			case f, ok := <-frameCh:
				if !ok {
					if err := <-readErrCh; err != nil {
						s.results <- LogicalTable{Err: err}
					}
					return
				}

				lt, err := asm.feed(f)
				if err != nil {
					s.results <- LogicalTable{Err: err}
					return
				}
				if lt != nil {
					if lt.Table != nil {
						lt.Table.Err = lt.Err
					}
					s.results <- *lt
				}
			}
		}
	}()

	return s
}
