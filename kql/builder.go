package kql

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kustoclient/kustoclient/value"
)

// stringConstant is only constructible inside this package, so a Builder can
// only be seeded from a literal passed to New or from another Builder -
// never from an arbitrary runtime string, which is what keeps AddLiteral
// injection-safe.
type stringConstant string

// Statement is the query/command text Client.Query, Client.QueryIterative,
// and Client.Mgmt accept: either a *Builder or a raw string wrapped with
// Raw.
type Statement interface {
	String() string
	SupportsInlineParameters() bool
}

// Builder assembles query text from literals and escaped scalar values, the
// injection-safe alternative to fmt.Sprintf-ing a query string together.
type Builder struct {
	builder strings.Builder
}

// New starts a Builder from a package-literal prefix, e.g.
// kql.New("StormEvents | take ").
func New(s stringConstant) *Builder {
	return (&Builder{}).AddLiteral(s)
}

// FromBuilder copies the text accumulated in b into a new Builder.
func FromBuilder(b *Builder) *Builder {
	return New(stringConstant(b.String()))
}

// String implements fmt.Stringer.
func (b *Builder) String() string { return b.builder.String() }

// SupportsInlineParameters reports that a Builder's text already has every
// value literal-escaped inline, so it needs no separate parameter
// declaration block.
func (b *Builder) SupportsInlineParameters() bool { return true }

// AddLiteral appends a compile-time string literal verbatim.
func (b *Builder) AddLiteral(s stringConstant) *Builder {
	b.builder.WriteString(string(s))
	return b
}

// AddUnsafe appends s verbatim with no escaping. Bypasses injection safety;
// only use it for text you trust as much as a literal.
func (b *Builder) AddUnsafe(s string) *Builder {
	b.builder.WriteString(s)
	return b
}

func (b *Builder) AddBool(v bool) *Builder {
	b.builder.WriteString(QuoteValue(value.NewBool(v)))
	return b
}

func (b *Builder) AddDateTime(v time.Time) *Builder {
	b.builder.WriteString(QuoteValue(value.NewDateTime(v)))
	return b
}

func (b *Builder) AddDynamic(v []byte) *Builder {
	b.builder.WriteString(QuoteValue(value.NewDynamic(v)))
	return b
}

func (b *Builder) AddGUID(v uuid.UUID) *Builder {
	b.builder.WriteString(QuoteValue(value.NewGUID(v)))
	return b
}

func (b *Builder) AddInt(v int32) *Builder {
	b.builder.WriteString(QuoteValue(value.NewInt(v)))
	return b
}

func (b *Builder) AddLong(v int64) *Builder {
	b.builder.WriteString(QuoteValue(value.NewLong(v)))
	return b
}

func (b *Builder) AddReal(v float64) *Builder {
	b.builder.WriteString(QuoteValue(value.NewReal(v)))
	return b
}

func (b *Builder) AddString(v string) *Builder {
	b.builder.WriteString(QuoteValue(value.NewString(v)))
	return b
}

func (b *Builder) AddTimespan(v time.Duration) *Builder {
	b.builder.WriteString(QuoteValue(value.NewTimespan(v)))
	return b
}

func (b *Builder) AddDecimal(v decimal.Decimal) *Builder {
	b.builder.WriteString(QuoteValue(value.NewDecimal(v)))
	return b
}

// Reset clears the accumulated text.
func (b *Builder) Reset() { b.builder.Reset() }

// Raw wraps an already-trusted query string as a Statement without literal
// escaping, for callers building text by other means (e.g. a stored
// management command).
type Raw string

func (r Raw) String() string { return string(r) }

// SupportsInlineParameters reports false: a Raw statement's parameters, if
// any, must be declared separately via QueryParameters rather than inlined.
func (r Raw) SupportsInlineParameters() bool { return false }
