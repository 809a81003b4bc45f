package table

import "github.com/kustoclient/kustoclient/types"

// Column describes one column of a Table: its position, name, and Kusto
// storage type.
type Column struct {
	Ordinal int
	Name    string
	Type    types.Column
}

// Columns is an ordered list of Column.
type Columns []Column

// ByName returns the column with the given name, or nil if none matches.
func (c Columns) ByName(name string) *Column {
	for i := range c {
		if c[i].Name == name {
			return &c[i]
		}
	}
	return nil
}
