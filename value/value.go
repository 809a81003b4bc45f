/*
Package value holds Kusto data value representations. Every scalar type
provides a Value (or Get equivalent) holding the native Go value and, for
pointer-backed types, a nil value meaning the column held a Kusto null.

A value.Kusto can hold any of:

	value.Bool
	value.Int
	value.Long
	value.Real
	value.Decimal
	value.String
	value.Dynamic
	value.DateTime
	value.Timespan
	value.GUID

Unmarshal is for internal use by the frame decoder; callers should use
table.Row.ToStruct or a column's .Value field directly.
*/
package value

import (
	"fmt"
	"reflect"

	"github.com/kustoclient/kustoclient/types"
)

// Kusto represents a single scalar Kusto value as decoded off the wire.
type Kusto interface {
	fmt.Stringer
	isKustoVal()
	Convert(v reflect.Value) error
	GetValue() interface{}
	GetType() types.Column
	Unmarshal(interface{}) error
}

// Default returns the zero value of the Kusto type for a column type,
// used to allocate a decode target before Unmarshal is called.
func Default(t types.Column) Kusto {
	switch t {
	case types.Bool:
		return &Bool{}
	case types.Int:
		return &Int{}
	case types.Long:
		return &Long{}
	case types.Real:
		return &Real{}
	case types.Decimal:
		return &Decimal{}
	case types.String:
		return &String{}
	case types.Dynamic:
		return &Dynamic{}
	case types.DateTime:
		return &DateTime{}
	case types.Timespan:
		return &Timespan{}
	case types.GUID:
		return &GUID{}
	default:
		return nil
	}
}

// Values is an ordered row of Kusto values.
type Values []Kusto
