package value

import (
	"fmt"
	"reflect"

	"github.com/kustoclient/kustoclient/types"
)

// Bool represents a Kusto bool type. Bool implements Kusto.
type Bool struct {
	pointerValue[bool]
}

func NewBool(v bool) *Bool { return &Bool{newPointerValue[bool](&v)} }

func NewNullBool() *Bool { return &Bool{newPointerValue[bool](nil)} }

// Convert Bool into a reflect value.
func (bo *Bool) Convert(v reflect.Value) error {
	kind := reflect.Bool
	if !TryConvert[bool](bo, &bo.pointerValue, v, &kind) {
		return fmt.Errorf("column with type 'bool' had value that was %T", v)
	}
	return nil
}

// GetType returns the type of the value.
func (*Bool) GetType() types.Column {
	return types.Bool
}
