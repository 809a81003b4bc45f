package value

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/kustoclient/kustoclient/types"
	"github.com/shopspring/decimal"
)

// Decimal represents a Kusto decimal type. Decimal implements Kusto.
type Decimal struct {
	pointerValue[decimal.Decimal]
}

func NewDecimal(v decimal.Decimal) *Decimal { return &Decimal{newPointerValue[decimal.Decimal](&v)} }

func NewNullDecimal() *Decimal { return &Decimal{newPointerValue[decimal.Decimal](nil)} }

func DecimalFromFloat(f float64) *Decimal { return NewDecimal(decimal.NewFromFloat(f)) }

func DecimalFromString(s string) (*Decimal, error) {
	dec, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("could not parse %q as a decimal: %s", s, err)
	}
	return NewDecimal(dec), nil
}

// ParseFloat provides a *big.Float conversion where that type meets your needs.
func (d *Decimal) ParseFloat(base int, prec uint, mode big.RoundingMode) (f *big.Float, b int, err error) {
	if d.value == nil {
		return nil, 0, fmt.Errorf("decimal value was not valid")
	}
	return big.ParseFloat(d.value.String(), base, prec, mode)
}

// Unmarshal unmarshals i into Decimal. i must be a string representing a
// decimal value or nil.
func (d *Decimal) Unmarshal(i interface{}) error {
	if i == nil {
		d.value = nil
		return nil
	}

	v, ok := i.(string)
	if !ok {
		return fmt.Errorf("column with type 'decimal' had type %T", i)
	}

	dec, err := decimal.NewFromString(v)
	if err != nil {
		return parseError(d, i, err)
	}

	d.value = &dec
	return nil
}

// Convert Decimal into a reflect value.
func (d *Decimal) Convert(v reflect.Value) error {
	if !TryConvert[decimal.Decimal](d, &d.pointerValue, v, nil) {
		return fmt.Errorf("column with type 'decimal' had value that was %T", v)
	}
	return nil
}

// GetType returns the type of the value.
func (*Decimal) GetType() types.Column {
	return types.Decimal
}
