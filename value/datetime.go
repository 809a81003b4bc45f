package value

import (
	"fmt"
	"reflect"
	"time"

	"github.com/kustoclient/kustoclient/types"
)

// DateTime represents a Kusto datetime type. DateTime implements Kusto.
type DateTime struct {
	pointerValue[time.Time]
}

func NewDateTime(v time.Time) *DateTime { return &DateTime{newPointerValue[time.Time](&v)} }

func NewNullDateTime() *DateTime { return &DateTime{newPointerValue[time.Time](nil)} }

// String implements fmt.Stringer.
func (d *DateTime) String() string {
	if d.value == nil {
		return ""
	}
	return d.value.Format(time.RFC3339Nano)
}

// Marshal marshals the DateTime into a Kusto-compatible string.
func (d *DateTime) Marshal() string {
	if d.value == nil {
		return time.Time{}.Format(time.RFC3339Nano)
	}
	return d.value.Format(time.RFC3339Nano)
}

// Unmarshal unmarshals i into DateTime. i must be an RFC3339 string or nil.
func (d *DateTime) Unmarshal(i interface{}) error {
	if i == nil {
		d.value = nil
		return nil
	}

	str, ok := i.(string)
	if !ok {
		return fmt.Errorf("column with type 'datetime' had value that was %T", i)
	}

	t, err := time.Parse(time.RFC3339Nano, str)
	if err != nil {
		return parseError(d, i, err)
	}
	d.value = &t
	return nil
}

// Convert DateTime into a reflect value.
func (d *DateTime) Convert(v reflect.Value) error {
	kind := reflect.String
	if !TryConvert[time.Time](d, &d.pointerValue, v, &kind) {
		return fmt.Errorf("column with type 'datetime' had value that was %T", v)
	}
	return nil
}

// GetType returns the type of the value.
func (*DateTime) GetType() types.Column {
	return types.DateTime
}
