package value

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kustoclient/kustoclient/types"
)

func TestDefault(t *testing.T) {
	assert.IsType(t, &Bool{}, Default(types.Bool))
	assert.IsType(t, &Int{}, Default(types.Int))
	assert.IsType(t, &Long{}, Default(types.Long))
	assert.IsType(t, &Real{}, Default(types.Real))
	assert.IsType(t, &Decimal{}, Default(types.Decimal))
	assert.IsType(t, &String{}, Default(types.String))
	assert.IsType(t, &Dynamic{}, Default(types.Dynamic))
	assert.IsType(t, &DateTime{}, Default(types.DateTime))
	assert.IsType(t, &Timespan{}, Default(types.Timespan))
	assert.IsType(t, &GUID{}, Default(types.GUID))
	assert.Nil(t, Default(types.Column("nope")))
}

func TestBoolRoundTrip(t *testing.T) {
	b := NewBool(true)
	assert.Equal(t, true, b.GetValue())
	assert.Equal(t, types.Bool, b.GetType())

	nb := NewNullBool()
	assert.Nil(t, nb.GetValue())
	assert.NoError(t, nb.Unmarshal(nil))
	assert.Nil(t, nb.GetValue())
}

func TestIntUnmarshalAndOverflow(t *testing.T) {
	in := &Int{}
	assert.NoError(t, in.Unmarshal(42))
	assert.Equal(t, int32(42), in.GetValue())
	assert.Equal(t, "42", in.String())

	assert.NoError(t, in.Unmarshal(nil))
	assert.Nil(t, in.GetValue())

	err := in.Unmarshal(float64(math.MaxInt32) + 1)
	assert.Error(t, err)

	assert.Error(t, in.Unmarshal(1.5))
	assert.Error(t, in.Unmarshal("nope"))
}

func TestLongUnmarshal(t *testing.T) {
	lo := &Long{}
	assert.NoError(t, lo.Unmarshal(int64(123456789012)))
	assert.Equal(t, int64(123456789012), lo.GetValue())
	assert.Equal(t, "123456789012", lo.String())

	assert.Error(t, lo.Unmarshal(1.5))
	assert.Error(t, lo.Unmarshal("nope"))
}

func TestRealSentinels(t *testing.T) {
	r := &Real{}
	assert.NoError(t, r.Unmarshal("NaN"))
	assert.True(t, math.IsNaN(r.GetValue().(float64)))

	assert.NoError(t, r.Unmarshal("Infinity"))
	assert.Equal(t, math.Inf(1), r.GetValue())

	assert.NoError(t, r.Unmarshal("-Infinity"))
	assert.Equal(t, math.Inf(-1), r.GetValue())

	assert.Error(t, r.Unmarshal("garbage"))
	assert.Error(t, r.Unmarshal(true))
}

func TestStringRoundTrip(t *testing.T) {
	s := NewString("hello")
	assert.Equal(t, "hello", s.GetValue())
	assert.Equal(t, "hello", s.String())
	assert.Error(t, s.Unmarshal(5))
}

func TestGUIDUnmarshal(t *testing.T) {
	g := &GUID{}
	id := uuid.New()
	assert.NoError(t, g.Unmarshal(id.String()))
	assert.Equal(t, id, g.GetValue())

	assert.Error(t, g.Unmarshal("not-a-guid"))
	assert.Error(t, g.Unmarshal(5))
}

func TestDateTimeUnmarshalAndMarshal(t *testing.T) {
	d := &DateTime{}
	assert.NoError(t, d.Unmarshal("2021-01-02T15:04:05.123Z"))
	assert.NotNil(t, d.GetValue())

	assert.Error(t, d.Unmarshal("not-a-date"))
	assert.Error(t, d.Unmarshal(5))

	nd := NewNullDateTime()
	assert.Equal(t, time.Time{}.Format(time.RFC3339Nano), nd.Marshal())
}

func TestDynamicUnmarshalVariants(t *testing.T) {
	d := &Dynamic{}
	assert.NoError(t, d.Unmarshal([]byte(`{"a":1}`)))
	assert.Equal(t, []byte(`{"a":1}`), d.GetValue())

	assert.NoError(t, d.Unmarshal(`{"b":2}`))
	assert.Equal(t, []byte(`{"b":2}`), d.GetValue())

	assert.NoError(t, d.Unmarshal(map[string]int{"c": 3}))
	assert.NotNil(t, d.GetValue())

	fromIface, err := DynamicFromInterface(map[string]int{"x": 1})
	assert.NoError(t, err)
	assert.NotNil(t, fromIface.GetValue())
}

func TestDecimalRoundTrip(t *testing.T) {
	dec, err := DecimalFromString("1.50")
	assert.NoError(t, err)
	assert.Equal(t, "1.5", dec.GetValue().(decimal.Decimal).String())

	_, err = DecimalFromString("not-a-decimal")
	assert.Error(t, err)

	d := &Decimal{}
	assert.Error(t, d.Unmarshal(5))
}

func TestTimespanRoundTrip(t *testing.T) {
	ts := NewTimespan(90 * time.Minute)
	assert.Equal(t, "01:30:00.0000000", ts.String())

	parsed := &Timespan{}
	assert.NoError(t, parsed.Unmarshal("1.02:03:04.0000005"))
	assert.Equal(t, 26*time.Hour+3*time.Minute+4*time.Second+500*time.Nanosecond, parsed.GetValue())

	neg := &Timespan{}
	assert.NoError(t, neg.Unmarshal("-00:01:00"))
	assert.Equal(t, -time.Minute, neg.GetValue())

	assert.Error(t, parsed.Unmarshal("garbage"))
	assert.Error(t, parsed.Unmarshal(5))
}
