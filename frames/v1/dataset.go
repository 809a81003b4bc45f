package v1

import (
	"github.com/kustoclient/kustoclient/errors"
	"github.com/kustoclient/kustoclient/table"
	"github.com/kustoclient/kustoclient/types"
	"github.com/kustoclient/kustoclient/value"
)

// Dataset is the decoded result of a management command: the raw array of
// tables the v1 body carried, in order.
type Dataset struct {
	Tables []*table.Table
}

// TableCount returns the number of tables in the response.
func (d *Dataset) TableCount() int {
	return len(d.Tables)
}

// NewDataset converts an already decoded v1 body (see Decode) into one
// table.Table per entry of body.Tables, in order.
func NewDataset(body *Body, op errors.Op) (*Dataset, error) {
	ds := &Dataset{Tables: make([]*table.Table, len(body.Tables))}

	for i, rt := range body.Tables {
		t, err := newTable(i, rt, op)
		if err != nil {
			return nil, err
		}
		ds.Tables[i] = t
	}

	return ds, nil
}

func newTable(id int, rt RawTable, op errors.Op) (*table.Table, error) {
	cols := make(table.Columns, len(rt.Columns))
	for i, c := range rt.Columns {
		ct := types.Column(c.ColumnType)
		if !ct.Valid() {
			return nil, errors.ES(op, errors.KClientArgs, "column[%d] is of type %q, which is not valid", i, c.ColumnType)
		}
		cols[i] = table.Column{Ordinal: i, Name: c.ColumnName, Type: ct}
	}

	t := &table.Table{ID: id, Name: rt.TableName, Columns: cols, Op: op}

	rows := make([]*table.Row, 0, len(rt.Rows))
	for i, r := range rt.Rows {
		if len(r.Errors) > 0 {
			rows = append(rows, table.NewErrorRow(t, i, errors.ES(op, errors.KInternal, "%v", r.Errors)))
			continue
		}
		if r.Row == nil {
			continue
		}

		values := make(value.Values, len(r.Row))
		for j, cell := range r.Row {
			v := value.Default(cols[j].Type)
			if cell != nil {
				if err := v.Unmarshal(cell); err != nil {
					return nil, errors.ES(op, errors.KInternal, "row %d, column %s: %s", i, cols[j].Name, err.Error())
				}
			}
			values[j] = v
		}
		rows = append(rows, table.NewRow(t, i, values))
	}
	t.Rows = rows

	return t, nil
}
