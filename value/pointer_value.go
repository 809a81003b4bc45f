package value

import (
	"fmt"
	"reflect"
)

// pointerValue is the storage embedded by every Kusto scalar type whose zero
// value is a nil pointer: nil means the column held a Kusto null, a non-nil
// pointer means the value is set.
type pointerValue[T any] struct {
	value *T
}

func newPointerValue[T any](v *T) pointerValue[T] {
	return pointerValue[T]{value: v}
}

func (*pointerValue[T]) isKustoVal() {}

// String implements fmt.Stringer.
func (p *pointerValue[T]) String() string {
	if p.value == nil {
		return ""
	}
	return fmt.Sprint(*p.value)
}

// GetValue returns the underlying value, or nil if unset.
func (p *pointerValue[T]) GetValue() interface{} {
	if p.value == nil {
		return nil
	}
	return *p.value
}

// Unmarshal unmarshals i into the pointerValue. i must be assignable to T or
// nil. Types with wire representations that don't assign directly (decimal,
// dynamic, datetime, timespan) shadow this with their own Unmarshal.
func (p *pointerValue[T]) Unmarshal(i interface{}) error {
	if i == nil {
		p.value = nil
		return nil
	}

	v, ok := i.(T)
	if !ok {
		var zero T
		return fmt.Errorf("had value that was %T, not a %T", i, zero)
	}
	p.value = &v
	return nil
}

// TryConvert attempts to set v from k's underlying pointerValue. kind, when
// non-nil, is the reflect.Kind of T's natural Go representation, letting the
// caller accept a direct primitive destination (e.g. reflect.Bool for Bool)
// in addition to the struct/pointer forms every Kusto type supports.
func TryConvert[T any](k Kusto, pv *pointerValue[T], v reflect.Value, kind *reflect.Kind) bool {
	t := v.Type()

	if kind != nil {
		switch {
		case t.Kind() == *kind:
			if pv.value != nil {
				rv := reflect.ValueOf(*pv.value)
				switch {
				case rv.Type().ConvertibleTo(t):
					v.Set(rv.Convert(t))
				case t.Kind() == reflect.String:
					v.Set(reflect.ValueOf(k.String()))
				default:
					return false
				}
			}
			return true
		case t.Kind() == reflect.Ptr && t.Elem().Kind() == *kind:
			if pv.value != nil {
				var elem reflect.Value
				rv := reflect.ValueOf(*pv.value)
				switch {
				case rv.Type().ConvertibleTo(t.Elem()):
					elem = rv.Convert(t.Elem())
				case t.Elem().Kind() == reflect.String:
					elem = reflect.ValueOf(k.String())
				default:
					return false
				}
				ptr := reflect.New(t.Elem())
				ptr.Elem().Set(elem)
				v.Set(ptr)
			}
			return true
		}
	}

	kVal := reflect.Indirect(reflect.ValueOf(k))
	kType := kVal.Type()

	switch {
	case t.ConvertibleTo(kType):
		v.Set(kVal.Convert(kType))
		return true
	case t.Kind() == reflect.Ptr && t.Elem().ConvertibleTo(kType):
		ptr := reflect.New(kType)
		ptr.Elem().Set(kVal)
		v.Set(ptr)
		return true
	}

	return false
}

// parseError formats a consistent error for scalar types whose Unmarshal
// does more than a bare type assertion (decimal, dynamic, datetime, timespan).
func parseError(k Kusto, i interface{}, err error) error {
	return fmt.Errorf("column with type '%s' had value %v(%T) that could not be parsed: %s", k.GetType(), i, i, err)
}
