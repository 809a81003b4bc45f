package resources

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// uriPattern matches a storage resource URI's host as returned by the
// management endpoint: https://<account>.<type>.core.windows.net/<object>,
// type being blob, queue, or table.
var uriPattern = regexp.MustCompile(`^([a-zA-Z0-9][a-zA-Z0-9-]*)\.(blob|queue|table)\.core\.windows\.net$`)

// URI is a parsed storage resource reference: which account, which object
// type, which object, and the SAS token authorizing access to it.
type URI struct {
	raw        string
	account    string
	objectType string
	objectName string
	sas        url.Values
}

// Parse validates and decomposes a resource URI as returned in a
// ".get ingestion resources" row.
func Parse(raw string) (*URI, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("resource URI %q could not be parsed: %w", raw, err)
	}
	if u.Scheme != "https" {
		return nil, fmt.Errorf("resource URI %q must use https", raw)
	}

	m := uriPattern.FindStringSubmatch(u.Host)
	if m == nil {
		return nil, fmt.Errorf("resource URI %q has an unrecognized host %q", raw, u.Host)
	}

	objectName := strings.TrimPrefix(u.Path, "/")
	if objectName == "" {
		return nil, fmt.Errorf("resource URI %q has no object name", raw)
	}

	return &URI{
		raw:        raw,
		account:    m[1],
		objectType: m[2],
		objectName: objectName,
		sas:        u.Query(),
	}, nil
}

// Account returns the storage account name.
func (u *URI) Account() string { return u.account }

// ObjectType returns "blob", "queue", or "table".
func (u *URI) ObjectType() string { return u.objectType }

// ObjectName returns the container/queue/table name.
func (u *URI) ObjectName() string { return u.objectName }

// SAS returns the URI's SAS token as query parameters.
func (u *URI) SAS() url.Values { return u.sas }

// String implements fmt.Stringer, returning the URI exactly as given.
func (u *URI) String() string { return u.raw }
