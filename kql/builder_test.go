package kql

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	tests := []struct {
		name     string
		b        *Builder
		expected string
	}{
		{"empty", New(""), ""},
		{"literal", New("foo"), "foo"},
		{"add literal", New("foo").AddLiteral("bar"), "foobar"},
		{"add unsafe", New("").AddUnsafe("trust me"), "trust me"},
		{
			"add int",
			New("StormEvents | where i != ").AddInt(32),
			"StormEvents | where i != int(32)",
		},
		{
			"add long",
			New("StormEvents | where i != ").AddLong(32),
			"StormEvents | where i != long(32)",
		},
		{
			"add real",
			New("StormEvents | where i != ").AddReal(32.5),
			"StormEvents | where i != real(32.5)",
		},
		{
			"add bool",
			New("StormEvents | where i != ").AddBool(true),
			"StormEvents | where i != bool(true)",
		},
		{
			"add datetime",
			New("i != ").AddDateTime(time.Date(2019, 1, 2, 3, 4, 5, 600, time.UTC)),
			"i != datetime(2019-01-02T03:04:05.0000006Z)",
		},
		{
			"add timespan",
			New("i != ").AddTimespan(1*time.Hour + 2*time.Minute + 3*time.Second + 4*time.Microsecond),
			"i != timespan(0.01:02:03.0004000)",
		},
		{
			"add timespan with days",
			New("i != ").AddTimespan(49*time.Hour + 2*time.Minute + 3*time.Second + 4*time.Microsecond),
			"i != timespan(2.01:02:03.0004000)",
		},
		{
			"add dynamic",
			New("i != ").AddDynamic([]byte(`{"a": 3}`)),
			`i != dynamic({"a": 3})`,
		},
		{
			"add guid",
			New("i != ").AddGUID(uuid.MustParse("12345678-1234-1234-1234-123456789012")),
			"i != guid(12345678-1234-1234-1234-123456789012)",
		},
		{
			"add string simple",
			New("i != ").AddString("foo"),
			`i != "foo"`,
		},
		{
			"add string with quote",
			New("i != ").AddString(`foo"bar`),
			`i != "foo\"bar"`,
		},
		{
			"add decimal",
			New("i != ").AddDecimal(decimal.RequireFromString("1.50")),
			"i != decimal(1.50)",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.b.String())
			assert.True(t, test.b.SupportsInlineParameters())
		})
	}
}

func TestFromBuilder(t *testing.T) {
	b := New("StormEvents").AddLiteral(" | take 5")
	copied := FromBuilder(b).AddLiteral(" | count")

	assert.Equal(t, "StormEvents | take 5", b.String())
	assert.Equal(t, "StormEvents | take 5 | count", copied.String())
}

func TestReset(t *testing.T) {
	b := New("StormEvents")
	b.Reset()
	assert.Equal(t, "", b.String())
}

func TestRaw(t *testing.T) {
	r := Raw(".show tables")
	assert.Equal(t, ".show tables", r.String())
	assert.False(t, r.SupportsInlineParameters())
}
