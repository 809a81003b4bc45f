package table

import (
	"encoding/csv"
	"reflect"
	"strings"

	"github.com/kustoclient/kustoclient/errors"
	"github.com/kustoclient/kustoclient/value"
)

// Row is one row of a Table: either a value row holding one value.Kusto per
// column, or an error row holding the structured error the server reported
// in its place. A row is never both.
type Row struct {
	table   *Table
	ordinal int
	values  value.Values
	err     *errors.Error
}

// NewRow constructs a value row. len(values) must equal len(t.Columns).
func NewRow(t *Table, ordinal int, values value.Values) *Row {
	return &Row{table: t, ordinal: ordinal, values: values}
}

// NewErrorRow constructs an error row: one that carries a structured error
// in place of column values.
func NewErrorRow(t *Table, ordinal int, err *errors.Error) *Row {
	return &Row{table: t, ordinal: ordinal, err: err}
}

// Ordinal is the row's position within its table.
func (r *Row) Ordinal() int { return r.ordinal }

// Table is the table this row belongs to.
func (r *Row) Table() *Table { return r.table }

// IsError reports whether this is an error row.
func (r *Row) IsError() bool { return r.err != nil }

// Err returns the row's error, or nil for a value row.
func (r *Row) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Values returns the row's values. Empty for an error row.
func (r *Row) Values() value.Values { return r.values }

// Value returns the value at column index i.
func (r *Row) Value(i int) value.Kusto { return r.values[i] }

// ValueByName returns the value for the named column, or nil if no such
// column exists.
func (r *Row) ValueByName(name string) value.Kusto {
	col := r.table.ColumnByName(name)
	if col == nil {
		return nil
	}
	return r.values[col.Ordinal]
}

// ExtractValues decodes the row's values into ptrs, one pointer per column
// in table order. Pass nil to skip a column.
func (r *Row) ExtractValues(ptrs ...interface{}) error {
	if r.IsError() {
		return errors.ES(r.table.Op, errors.KClientArgs, "row %d is an error row: %s", r.ordinal, r.err.Error())
	}
	if len(ptrs) != len(r.table.Columns) {
		return errors.ES(r.table.Op, errors.KClientArgs, "ExtractValues requires %d arguments for this row, had %d", len(r.table.Columns), len(ptrs))
	}

	for i, val := range r.values {
		if ptrs[i] == nil {
			continue
		}
		if err := val.Convert(reflect.ValueOf(ptrs[i]).Elem()); err != nil {
			return errors.ES(r.table.Op, errors.KClientArgs, "column %s: %s", r.table.Columns[i].Name, err.Error())
		}
	}
	return nil
}

var typeMapper = map[reflect.Type]map[string]string{}

// fieldMap builds (and caches) a column-name -> struct-field-name mapping
// for a struct type, honoring `kusto:"column_name"` tags.
func fieldMap(t reflect.Type) map[string]string {
	if f, ok := typeMapper[t]; ok {
		return f
	}

	elem := t.Elem()
	m := make(map[string]string, elem.NumField())
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		if tag := strings.TrimSpace(field.Tag.Get("kusto")); tag != "" {
			m[tag] = field.Name
		} else {
			m[field.Name] = field.Name
		}
	}
	typeMapper[t] = m
	return m
}

// ToStruct decodes the row's columns into the exported fields of p, a
// pointer to a struct. A field tagged `kusto:"column_name"` binds to that
// column; a tag of "-" skips the field; otherwise the field name is matched
// against the column name case-sensitively.
func (r *Row) ToStruct(p interface{}) error {
	t := reflect.TypeOf(p)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return errors.ES(r.table.Op, errors.KClientArgs, "type %T is not a pointer to a struct", p)
	}
	if r.IsError() {
		return errors.ES(r.table.Op, errors.KClientArgs, "row %d is an error row: %s", r.ordinal, r.err.Error())
	}
	if len(r.table.Columns) != len(r.values) {
		return errors.ES(r.table.Op, errors.KClientArgs, "row does not have the correct number of values(%d) for the number of columns(%d)", len(r.values), len(r.table.Columns))
	}

	names := fieldMap(t)
	v := reflect.ValueOf(p)
	for i, col := range r.table.Columns {
		fieldName, ok := names[col.Name]
		if !ok || fieldName == "-" {
			continue
		}
		if err := r.values[i].Convert(v.Elem().FieldByName(fieldName)); err != nil {
			return errors.ES(r.table.Op, errors.KClientArgs, "column %s could not store in struct.%s: %s", col.Name, fieldName, err.Error())
		}
	}
	return nil
}

// String implements fmt.Stringer, rendering the row as a CSV line. Error
// rows render as their error's message.
func (r *Row) String() string {
	if r.IsError() {
		return r.err.Error()
	}

	var line []string
	for _, v := range r.values {
		line = append(line, v.String())
	}
	b := &strings.Builder{}
	w := csv.NewWriter(b)
	if err := w.Write(line); err != nil {
		return ""
	}
	w.Flush()
	return b.String()
}
