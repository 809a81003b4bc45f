package value

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/kustoclient/kustoclient/types"
)

// Dynamic represents a Kusto dynamic type: an arbitrary JSON value stored as
// raw bytes. Dynamic implements Kusto.
type Dynamic struct {
	pointerValue[[]byte]
}

func NewDynamic(v []byte) *Dynamic { return &Dynamic{newPointerValue[[]byte](&v)} }

func NewNullDynamic() *Dynamic { return &Dynamic{newPointerValue[[]byte](nil)} }

func DynamicFromInterface(v interface{}) (*Dynamic, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("could not marshal %T as dynamic: %s", v, err)
	}
	return NewDynamic(b), nil
}

// Unmarshal unmarshals i into Dynamic. i may be []byte, string, or any other
// JSON-serializable value; []byte and string are assumed to already be a
// JSON encoding.
func (d *Dynamic) Unmarshal(i interface{}) error {
	if i == nil {
		d.value = nil
		return nil
	}

	switch v := i.(type) {
	case []byte:
		d.value = &v
		return nil
	case string:
		b := []byte(v)
		d.value = &b
		return nil
	}

	b, err := json.Marshal(i)
	if err != nil {
		return parseError(d, i, err)
	}
	d.value = &b
	return nil
}

// Convert Dynamic into a reflect value.
func (d *Dynamic) Convert(v reflect.Value) error {
	t := v.Type()
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if d.value == nil {
		return nil
	}

	var valueToSet reflect.Value
	switch {
	case t.ConvertibleTo(reflect.TypeOf(Dynamic{})):
		valueToSet = reflect.ValueOf(*d)
	case t.Kind() == reflect.String:
		valueToSet = reflect.ValueOf(string(*d.value))
	case t.ConvertibleTo(reflect.TypeOf([]byte{})):
		valueToSet = reflect.ValueOf(*d.value)
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Map:
		ptr := reflect.New(t)
		if err := json.Unmarshal(*d.value, ptr.Interface()); err != nil {
			return fmt.Errorf("could not unmarshal dynamic into a %s: %s", t.Kind(), err)
		}
		valueToSet = ptr.Elem()
	case t.Kind() == reflect.Struct:
		ptr := reflect.New(t)
		if err := json.Unmarshal(*d.value, ptr.Interface()); err != nil {
			return fmt.Errorf("could not unmarshal dynamic into receiver: %s", err)
		}
		valueToSet = ptr.Elem()
	default:
		return fmt.Errorf("column was type Kusto.Dynamic, receiver had base Kind %s", t.Kind())
	}

	if v.Type().Kind() != reflect.Ptr {
		v.Set(valueToSet)
		return nil
	}
	if v.IsZero() {
		v.Set(reflect.New(valueToSet.Type()))
	}
	v.Elem().Set(valueToSet)
	return nil
}

// GetType returns the type of the value.
func (*Dynamic) GetType() types.Column {
	return types.Dynamic
}
