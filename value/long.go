package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/kustoclient/kustoclient/types"
)

// Long represents a Kusto long type, a 64-bit signed integer. Long implements
// Kusto.
type Long struct {
	// Value holds the value of the type.
	Value int64
	// Valid indicates if this value was set.
	Valid bool
}

func NewLong(i int64) *Long { return &Long{Value: i, Valid: true} }

func NewNullLong() *Long { return &Long{Valid: false} }

func (*Long) isKustoVal() {}

// String implements fmt.Stringer.
func (lo *Long) String() string {
	if !lo.Valid {
		return ""
	}
	return strconv.FormatInt(lo.Value, 10)
}

// Unmarshal unmarshals i into Long. i must be a json.Number, float64, int64,
// int, or nil.
func (lo *Long) Unmarshal(i interface{}) error {
	if i == nil {
		lo.Value = 0
		lo.Valid = false
		return nil
	}

	switch v := i.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return fmt.Errorf("column with type 'long' had value json.Number that had error on .Int64(): %s", err)
		}
		lo.Value = n
	case float64:
		if v != math.Trunc(v) {
			return fmt.Errorf("column with type 'long' had value float64(%v) that did not represent a whole number", v)
		}
		lo.Value = int64(v)
	case int64:
		lo.Value = v
	case int:
		lo.Value = int64(v)
	default:
		return fmt.Errorf("column with type 'long' had value that was not a json.Number or int64, was %T", i)
	}

	lo.Valid = true
	return nil
}

// Convert Long into a reflect value.
func (lo *Long) Convert(v reflect.Value) error {
	t := v.Type()
	switch {
	case t.Kind() == reflect.Int64:
		if lo.Valid {
			v.Set(reflect.ValueOf(lo.Value))
		}
		return nil
	case t.ConvertibleTo(reflect.TypeOf(new(int64))):
		if lo.Valid {
			i := lo.Value
			v.Set(reflect.ValueOf(&i))
		}
		return nil
	case t.ConvertibleTo(reflect.TypeOf(Long{})):
		v.Set(reflect.ValueOf(*lo))
		return nil
	case t.ConvertibleTo(reflect.TypeOf(&Long{})):
		v.Set(reflect.ValueOf(lo))
		return nil
	}
	return fmt.Errorf("column was type Kusto.Long, receiver had base Kind %s", t.Kind())
}

// GetValue returns the value of the type.
func (lo *Long) GetValue() interface{} {
	if !lo.Valid {
		return nil
	}
	return lo.Value
}

// GetType returns the type of the value.
func (*Long) GetType() types.Column {
	return types.Long
}
