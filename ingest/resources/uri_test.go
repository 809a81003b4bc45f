package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		desc           string
		url            string
		wantErr        bool
		wantAccount    string
		wantObjectType string
		wantObjectName string
	}{
		{
			desc:    "account is missing, but has leading dot",
			url:     "https://.queue.core.windows.net/objectname",
			wantErr: true,
		},
		{
			desc:    "account is missing",
			url:     "https://queue.core.windows.net/objectname",
			wantErr: true,
		},
		{
			desc:    "invalid object type",
			url:     "https://account.invalid.core.windows.net/objectname",
			wantErr: true,
		},
		{
			desc:    "invalid domain",
			url:     "https://account.blob.core.invalid.net/objectname",
			wantErr: true,
		},
		{
			desc:    "no object name provided",
			url:     "https://account.blob.core.windows.net/",
			wantErr: true,
		},
		{
			desc:    "bad scheme",
			url:     "http://account.table.core.windows.net/objectname",
			wantErr: true,
		},
		{
			desc:           "success",
			url:            "https://account.table.core.windows.net/objectname",
			wantAccount:    "account",
			wantObjectType: "table",
			wantObjectName: "objectname",
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			got, err := Parse(test.url)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.wantAccount, got.Account())
			assert.Equal(t, test.wantObjectType, got.ObjectType())
			assert.Equal(t, test.wantObjectName, got.ObjectName())
			assert.Equal(t, test.url, got.String())
		})
	}
}

func TestParseKeepsSAS(t *testing.T) {
	got, err := Parse("https://account.blob.core.windows.net/container?sv=2020&sig=abc123")
	assert.NoError(t, err)
	assert.Equal(t, "2020", got.SAS().Get("sv"))
	assert.Equal(t, "abc123", got.SAS().Get("sig"))
}
