// Package table holds the decoded, in-memory representation of one Kusto
// result table: its column schema and the rows assembled from the wire
// frames, with either a value row or an error row per position.
package table

import (
	"github.com/kustoclient/kustoclient/errors"
)

// Table is one named, typed result set: a query's primary result, its
// QueryProperties/QueryCompletionInformation side tables, or a management
// command's output table.
type Table struct {
	ID      int
	Name    string
	Kind    string
	Columns Columns
	Rows    []*Row

	// Op identifies which client operation produced this table, surfaced on
	// errors raised while reading from it.
	Op errors.Op

	// Err carries a table-level error attached by TableCompletion's
	// OneApiErrors. Its presence does not mean the table's Rows are
	// unusable; has_errors on a completed table is informational, not
	// fatal to assembly.
	Err error
}

// ColumnByName returns the column with the given name, or nil if none
// matches.
func (t *Table) ColumnByName(name string) *Column {
	return t.Columns.ByName(name)
}
