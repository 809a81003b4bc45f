package v2

import (
	"context"
	"io"

	"github.com/kustoclient/kustoclient/errors"
	"github.com/kustoclient/kustoclient/frames"
	"github.com/kustoclient/kustoclient/table"
)

// Dataset is the fully-assembled, buffered result of a v2 query: every
// frame has been read and every table closed before NewDataset returns.
type Dataset struct {
	Header     *frames.DataSetHeader
	Completion *frames.DataSetCompletion

	// QueryProperties and QueryCompletionInformation are the single side
	// tables Kusto attaches to a query response, if present.
	QueryProperties            *table.Table
	QueryCompletionInformation *table.Table

	// PrimaryResults holds every PrimaryResult table, in arrival order.
	PrimaryResults []*table.Table

	// Other holds any table whose kind is none of the above, in arrival
	// order (TableOfContents, QueryPlan, trace/perf logs, and the like).
	Other []*table.Table
}

// NewDataset reads and assembles r in full. r is closed before returning.
func NewDataset(ctx context.Context, r io.ReadCloser, op errors.Op) (*Dataset, error) {
	defer r.Close()

	ch := make(chan frames.Frame, DefaultFrameCapacity)
	readErrCh := make(chan error, 1)
	go func() {
		readErrCh <- ReadFrames(ctx, r, ch, op)
	}()

	ds := &Dataset{}
	asm := newAssembler(op)

	for f := range ch {
		lt, err := asm.feed(f)
		if err != nil {
			return nil, err
		}
		if lt == nil {
			continue
		}
		lt.Table.Err = lt.Err
		ds.route(lt.Table)
	}

	if err := <-readErrCh; err != nil {
		return nil, err
	}

	ds.Header = asm.Header()
	ds.Completion = asm.Completion()
	if ds.Completion == nil {
		return nil, errors.ES(op, errors.KInternal, "stream ended without a DataSetCompletion frame")
	}

	return ds, nil
}

func (d *Dataset) route(t *table.Table) {
	switch frames.TableKind(t.Kind) {
	case frames.QueryProperties:
		d.QueryProperties = t
	case frames.QueryCompletionInformation:
		d.QueryCompletionInformation = t
	case frames.PrimaryResult:
		d.PrimaryResults = append(d.PrimaryResults, t)
	default:
		d.Other = append(d.Other, t)
	}
}
