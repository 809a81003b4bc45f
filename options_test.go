package kustoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kustoclient/kustoclient/kql"
	"github.com/kustoclient/kustoclient/value"
)

func TestApplyQueryOptions(t *testing.T) {
	params := kql.NewParameters().Add("x", value.NewInt(7))

	p := applyQueryOptions([]QueryOption{
		WithClientRequestID("req-1"),
		WithApplication("app"),
		WithUser("user"),
		NoRequestTimeout(),
		NoTruncation(),
		CustomOption("custom", true),
		WithQueryParameters(params),
	})

	assert.Equal(t, "req-1", p.ClientRequestID)
	assert.Equal(t, "app", p.Application)
	assert.Equal(t, "user", p.User)
	assert.Equal(t, true, p.Options["norequesttimeout"])
	assert.Equal(t, true, p.Options["notruncation"])
	assert.Equal(t, true, p.Options["custom"])
	assert.Equal(t, params, p.QueryParameters)
	assert.Equal(t, params.ToParameterCollection(), p.Parameters)
}

func TestApplyMgmtOptions(t *testing.T) {
	p := applyMgmtOptions([]MgmtOption{MgmtClientRequestID("mgmt-req")})
	assert.Equal(t, "mgmt-req", p.ClientRequestID)
}

func TestApplyQueryOptionsDefaults(t *testing.T) {
	p := applyQueryOptions(nil)
	assert.NotNil(t, p.Options)
	assert.Empty(t, p.ClientRequestID)
}
