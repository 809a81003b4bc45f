package value

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/kustoclient/kustoclient/types"
)

// Real represents a Kusto real type, a 64-bit float. Alongside ordinary
// numbers the wire format uses the sentinel strings "NaN", "Infinity", and
// "-Infinity". Real implements Kusto.
type Real struct {
	pointerValue[float64]
}

func NewReal(v float64) *Real { return &Real{newPointerValue[float64](&v)} }

func NewNullReal() *Real { return &Real{newPointerValue[float64](nil)} }

// String implements fmt.Stringer.
func (r *Real) String() string {
	if r.value == nil {
		return ""
	}
	return strconv.FormatFloat(*r.value, 'g', -1, 64)
}

// Unmarshal unmarshals i into Real. i must be a json.Number, float64, one of
// the sentinel strings "NaN"/"Infinity"/"-Infinity", or nil.
func (r *Real) Unmarshal(i interface{}) error {
	if i == nil {
		r.value = nil
		return nil
	}

	switch v := i.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return fmt.Errorf("column with type 'real' had value json.Number that had error on .Float64(): %s", err)
		}
		r.value = &f
		return nil
	case float64:
		r.value = &v
		return nil
	case string:
		f, err := parseRealSentinel(v)
		if err != nil {
			return parseError(r, i, err)
		}
		r.value = &f
		return nil
	}
	return fmt.Errorf("column with type 'real' had value that was %T", i)
}

func parseRealSentinel(s string) (float64, error) {
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	return 0, fmt.Errorf("%q is not a valid real sentinel", s)
}

// Convert Real into a reflect value.
func (r *Real) Convert(v reflect.Value) error {
	kind := reflect.Float64
	if !TryConvert[float64](r, &r.pointerValue, v, &kind) {
		return fmt.Errorf("column with type 'real' had value that was %T", v)
	}
	return nil
}

// GetType returns the type of the value.
func (*Real) GetType() types.Column {
	return types.Real
}
