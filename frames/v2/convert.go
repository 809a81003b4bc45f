package v2

import (
	"github.com/kustoclient/kustoclient/errors"
	"github.com/kustoclient/kustoclient/frames"
	"github.com/kustoclient/kustoclient/table"
	"github.com/kustoclient/kustoclient/types"
	"github.com/kustoclient/kustoclient/value"
)

func toColumns(cols []frames.FrameColumn, op errors.Op) (table.Columns, error) {
	out := make(table.Columns, len(cols))
	for i, c := range cols {
		ct := types.Column(c.ColumnType)
		if !ct.Valid() {
			return nil, errors.ES(op, errors.KClientArgs, "column[%d] is of type %q, which is not valid", i, c.ColumnType)
		}
		out[i] = table.Column{Ordinal: i, Name: c.ColumnName, Type: ct}
	}
	return out, nil
}

// toRow converts one RawRow into a table.Row. A row carrying OneApiErrors
// becomes an error row; otherwise its value count must match t's column
// count.
func toRow(t *table.Table, ordinal int, r frames.RawRow, op errors.Op) (*table.Row, error) {
	if len(r.Errors) > 0 {
		return table.NewErrorRow(t, ordinal, frames.ToErr(r.Errors, op)), nil
	}

	if len(r.Row) != len(t.Columns) {
		return nil, errors.ES(op, errors.KInternal, "row %d has %d values for %d columns", ordinal, len(r.Row), len(t.Columns))
	}

	values := make(value.Values, len(r.Row))
	for i, cell := range r.Row {
		conv := frames.Conversion[t.Columns[i].Type]
		if conv == nil {
			return nil, errors.ES(op, errors.KInternal, "column %s has unsupported type %s", t.Columns[i].Name, t.Columns[i].Type)
		}
		v, err := conv(cell)
		if err != nil {
			return nil, errors.ES(op, errors.KInternal, "row %d, column %s: %s", ordinal, t.Columns[i].Name, err.Error())
		}
		values[i] = v
	}
	return table.NewRow(t, ordinal, values), nil
}

func toRows(t *table.Table, raw frames.RawRows, op errors.Op) ([]*table.Row, error) {
	out := make([]*table.Row, len(raw))
	for i, r := range raw {
		row, err := toRow(t, i, r, op)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}
