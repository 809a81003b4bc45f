package v2

import (
	"github.com/kustoclient/kustoclient/errors"
	"github.com/kustoclient/kustoclient/frames"
	"github.com/kustoclient/kustoclient/table"
)

// LogicalTable is one table delivered by the assembler. Table is set for
// every completed table, and Err is set alongside it when the table's
// TableCompletion carried OneApiErrors; in streaming mode a LogicalTable
// with only Err set reports the failure that ended the stream. In
// streaming mode a LogicalTable is sent as soon as its TableCompletion
// (or standalone DataTable) frame is seen.
type LogicalTable struct {
	Table *table.Table
	Err   error
}

// openTable tracks the in-progress state of a fragmented table between its
// TableHeader and TableCompletion frames.
type openTable struct {
	id      int
	kind    string
	name    string
	columns table.Columns
	rows    []*table.Row
	nValues int
}

// assembler runs the dataset state machine described for both the full and
// streaming dataset modes: one open fragmented table at a time, plus
// single-shot DataTable frames for non-fragmented tables.
type assembler struct {
	op     errors.Op
	open   *openTable
	header *frames.DataSetHeader
	done   *frames.DataSetCompletion
}

func newAssembler(op errors.Op) *assembler {
	return &assembler{op: op}
}

// Header returns the dataset header, once seen.
func (a *assembler) Header() *frames.DataSetHeader { return a.header }

// Completion returns the dataset completion frame, once seen.
func (a *assembler) Completion() *frames.DataSetCompletion { return a.done }

// feed processes one frame, returning a LogicalTable when a table completes
// (from a DataTable or a TableCompletion), or an error if the frame violates
// the assembly state machine.
func (a *assembler) feed(f frames.Frame) (*LogicalTable, error) {
	switch v := f.(type) {
	case *frames.DataSetHeader:
		if v.Version != "v2.0" {
			return nil, errors.ES(a.op, errors.KInternal, "unsupported dataset version %q", v.Version)
		}
		a.header = v
		return nil, nil

	case *frames.DataSetCompletion:
		if a.open != nil {
			return nil, errors.ES(a.op, errors.KPrematureCompletion, "DataSetCompletion received while table %d was still open", a.open.id)
		}
		a.done = v
		return nil, nil

	case *frames.DataTable:
		cols, err := toColumns(v.Columns, a.op)
		if err != nil {
			return nil, err
		}
		t := &table.Table{ID: v.TableID, Name: v.TableName, Kind: v.TableKind, Columns: cols, Op: a.op}
		rows, err := toRows(t, v.Rows, a.op)
		if err != nil {
			return nil, err
		}
		t.Rows = rows
		return &LogicalTable{Table: t}, nil

	case *frames.TableHeader:
		if a.open != nil {
			return nil, errors.ES(a.op, errors.KInternal, "TableHeader received for table %d while table %d was still open", v.TableID, a.open.id)
		}
		cols, err := toColumns(v.Columns, a.op)
		if err != nil {
			return nil, err
		}
		a.open = &openTable{id: v.TableID, kind: v.TableKind, name: v.TableName, columns: cols}
		return nil, nil

	case *frames.TableFragment:
		if a.open == nil || a.open.id != v.TableID {
			return nil, errors.ES(a.op, errors.KUnknownTable, "TableFragment received for unknown table %d", v.TableID)
		}
		t := &table.Table{ID: a.open.id, Name: a.open.name, Kind: a.open.kind, Columns: a.open.columns, Op: a.op}
		rows, err := toRows(t, v.Rows, a.op)
		if err != nil {
			return nil, err
		}
		switch v.TableFragmentType {
		case "DataReplace":
			a.open.rows = rows
		default: // "DataAppend"
			a.open.rows = append(a.open.rows, rows...)
		}
		a.open.nValues = 0
		for _, r := range a.open.rows {
			if !r.IsError() {
				a.open.nValues++
			}
		}
		return nil, nil

	case *frames.TableProgress:
		if a.open == nil || a.open.id != v.TableID {
			return nil, errors.ES(a.op, errors.KUnknownTable, "TableProgress received for unknown table %d", v.TableID)
		}
		return nil, nil

	case *frames.TableCompletion:
		if a.open == nil || a.open.id != v.TableID {
			return nil, errors.ES(a.op, errors.KUnknownTable, "TableCompletion received for unknown table %d", v.TableID)
		}
		if a.open.nValues != v.RowCount {
			return nil, errors.ES(a.op, errors.KRowCountMismatch, "table %d: TableCompletion reports %d rows, %d were accumulated", v.TableID, v.RowCount, a.open.nValues)
		}
		t := &table.Table{ID: a.open.id, Name: a.open.name, Kind: a.open.kind, Columns: a.open.columns, Rows: a.open.rows, Op: a.op}
		a.open = nil

		lt := &LogicalTable{Table: t}
		if len(v.OneApiErrors) > 0 {
			lt.Err = frames.ToErr(v.OneApiErrors, a.op)
		}
		return lt, nil

	default:
		return nil, errors.ES(a.op, errors.KInternal, "unexpected frame type %T", f)
	}
}
