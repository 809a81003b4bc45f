package kql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kustoclient/kustoclient/types"
	"github.com/kustoclient/kustoclient/value"
)

// Parameters declares named, typed query parameters bound out-of-band from
// the query text (the declare query_parameters(...) clause), used when a
// Statement's SupportsInlineParameters is false.
type Parameters struct {
	types  map[string]types.Column
	values map[string]value.Kusto
}

// NewParameters returns an empty parameter set.
func NewParameters() *Parameters {
	return &Parameters{types: map[string]types.Column{}, values: map[string]value.Kusto{}}
}

// Add declares a named parameter and its bound value.
func (p *Parameters) Add(name string, v value.Kusto) *Parameters {
	p.types[name] = v.GetType()
	p.values[name] = v
	return p
}

// Count returns the number of declared parameters.
func (p *Parameters) Count() int { return len(p.types) }

// ToDeclarationString renders the declare query_parameters(...) clause
// prefixed to the query text.
func (p *Parameters) ToDeclarationString() string {
	if len(p.types) == 0 {
		return ""
	}

	names := make([]string, 0, len(p.types))
	for n := range p.types {
		names = append(names, n)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("%s:%s", n, p.types[n])
	}
	return fmt.Sprintf("declare query_parameters(%s);", strings.Join(parts, ", "))
}

// ToParameterCollection renders the name->literal map sent in the request
// body's properties.Parameters field.
func (p *Parameters) ToParameterCollection() map[string]string {
	out := make(map[string]string, len(p.values))
	for n, v := range p.values {
		val := v.GetValue()
		if val == nil {
			continue
		}
		out[n] = fmt.Sprintf("%v", val)
	}
	return out
}
