package kustoclient

import (
	"fmt"
	"os"
)

// clientVersion is sent on every request via the x-ms-client-version
// header.
const clientVersion = "kustoclient-go/1.0.0"

// ClientDetails carries the application/user identity strings attached to
// every request for server-side tracing, plus defaults derived from the
// running process when the caller doesn't supply one.
type ClientDetails struct {
	application string
	user        string
}

// NewClientDetails returns a ClientDetails, falling back to the running
// executable's path and the machine's host name when application/user are
// empty.
func NewClientDetails(application, user string) *ClientDetails {
	if application == "" {
		if exe, err := os.Executable(); err == nil {
			application = exe
		} else {
			application = "unknown"
		}
	}
	if user == "" {
		if hostname, err := os.Hostname(); err == nil {
			user = hostname
		} else {
			user = "unknown"
		}
	}
	return &ClientDetails{application: application, user: user}
}

// ApplicationForTracing renders the x-ms-app header value.
func (c *ClientDetails) ApplicationForTracing() string { return c.application }

// UserNameForTracing renders the x-ms-user header value.
func (c *ClientDetails) UserNameForTracing() string { return c.user }

// ClientVersionForTracing renders the x-ms-client-version header value.
func (c *ClientDetails) ClientVersionForTracing() string {
	return fmt.Sprintf("Kusto.Go.Client:%s", clientVersion)
}
