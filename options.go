package kustoclient

import (
	"github.com/kustoclient/kustoclient/kql"
)

// requestProperties is the JSON body's "properties" object, the service's
// generic per-request tuning knobs.
type requestProperties struct {
	Options         map[string]interface{} `json:"Options,omitempty"`
	Parameters      map[string]string      `json:"Parameters,omitempty"`
	ClientRequestID string                 `json:"-"`
	Application     string                 `json:"-"`
	User            string                 `json:"-"`
	QueryParameters *kql.Parameters         `json:"-"`
}

func newRequestProperties() *requestProperties {
	return &requestProperties{Options: map[string]interface{}{}}
}

// QueryOption tunes a single Query/QueryIterative call.
type QueryOption func(*requestProperties)

// MgmtOption tunes a single Mgmt call.
type MgmtOption func(*requestProperties)

// WithClientRequestID sets the x-ms-client-request-id header explicitly,
// instead of the auto-generated "KGC.execute;<uuid>" value.
func WithClientRequestID(id string) QueryOption {
	return func(p *requestProperties) { p.ClientRequestID = id }
}

// WithApplication sets the x-ms-app header.
func WithApplication(app string) QueryOption {
	return func(p *requestProperties) { p.Application = app }
}

// WithUser sets the x-ms-user header.
func WithUser(user string) QueryOption {
	return func(p *requestProperties) { p.User = user }
}

// WithQueryParameters attaches out-of-band parameters for a Raw statement.
func WithQueryParameters(params *kql.Parameters) QueryOption {
	return func(p *requestProperties) {
		p.QueryParameters = params
		p.Parameters = params.ToParameterCollection()
	}
}

// NoRequestTimeout raises the request timeout to its service maximum.
func NoRequestTimeout() QueryOption {
	return func(p *requestProperties) { p.Options["norequesttimeout"] = true }
}

// NoTruncation suppresses truncation of the returned result set.
func NoTruncation() QueryOption {
	return func(p *requestProperties) { p.Options["notruncation"] = true }
}

// CustomOption sets an arbitrary, not otherwise wrapped request option.
func CustomOption(name string, v interface{}) QueryOption {
	return func(p *requestProperties) { p.Options[name] = v }
}

// MgmtClientRequestID is WithClientRequestID's Mgmt-call equivalent.
func MgmtClientRequestID(id string) MgmtOption {
	return func(p *requestProperties) { p.ClientRequestID = id }
}

func applyQueryOptions(opts []QueryOption) *requestProperties {
	p := newRequestProperties()
	for _, o := range opts {
		o(p)
	}
	return p
}

func applyMgmtOptions(opts []MgmtOption) *requestProperties {
	p := newRequestProperties()
	for _, o := range opts {
		o(p)
	}
	return p
}
