// Package kql builds query/command text with injection-safe literal
// escaping for the scalar types in package value, grounded on
// azkustodata/kql's Builder.
package kql

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kustoclient/kustoclient/types"
	"github.com/kustoclient/kustoclient/value"
)

// QuoteValue renders v as a Kusto scalar literal, e.g. long(5) or
// datetime(2020-01-01T00:00:00Z).
func QuoteValue(v value.Kusto) string {
	val := v.GetValue()
	t := v.GetType()
	if val == nil {
		return fmt.Sprintf("%v(null)", t)
	}

	switch t {
	case types.String:
		return QuoteString(v.String(), false)
	case types.DateTime:
		val = FormatDatetime(val.(time.Time))
	case types.Timespan:
		val = FormatTimespan(val.(time.Duration))
	case types.Dynamic:
		val = string(val.([]byte))
	case types.Decimal:
		dec := val.(decimal.Decimal)
		if dec.Exponent() < 0 {
			val = dec.StringFixed(-dec.Exponent())
		} else {
			val = dec.String()
		}
	}

	return fmt.Sprintf("%v(%v)", t, val)
}

// FormatDatetime renders t the way the service expects inside a datetime()
// literal.
func FormatDatetime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// FormatTimespan renders d the way the service expects inside a timespan()
// literal: d.HH:MM:SS.fffffff.
func FormatTimespan(d time.Duration) string {
	neg := ""
	if d < 0 {
		neg = "-"
		d = -d
	}

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second
	d -= seconds * time.Second
	ticks := d / (100 * time.Nanosecond)

	return fmt.Sprintf("%s%d.%02d:%02d:%02d.%07d", neg, days, hours, minutes, seconds, ticks)
}

// QuoteString renders s as a double-quoted Kusto string literal, escaping
// backslash, double quote, newline, carriage return, and tab; other
// control characters are written as-is. normalizeMultiline
// collapses \r\n to \n before escaping.
func QuoteString(s string, normalizeMultiline bool) string {
	if normalizeMultiline {
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}

	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
