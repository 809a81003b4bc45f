package kustoclient

import (
	"fmt"
	"net/url"
	"strings"
)

// ConnectionStringBuilder parses a Kusto-style connection string
// ("Data Source=https://cluster.kusto.windows.net;AppClientId=...;AppKey=...;TenantId=...") and
// builds the TokenCredential New needs from it, grounded on kusto/kcsb.go's
// connectionStringBuilder, trimmed to the authentication modes this module
// actually wires: AAD app key, user/system managed identity, and the
// default Azure credential chain.
type ConnectionStringBuilder struct {
	DataSource             string
	ApplicationClientId    string
	ApplicationKey         string
	AuthorityId            string
	ManagedServiceIdentity string
	MSIAuthentication      bool
	UseDefaultCredential   bool
}

// NewConnectionStringBuilder parses connStr, requiring at minimum a data
// source (a bare endpoint URL is accepted as shorthand for
// "DataSource=<url>").
func NewConnectionStringBuilder(connStr string) *ConnectionStringBuilder {
	if isEmpty(connStr) {
		panic("kustoclient: connection string cannot be empty")
	}

	if !strings.Contains(strings.Split(connStr, ";")[0], "=") {
		connStr = "Data Source=" + connStr
	}

	kcsb := &ConnectionStringBuilder{}
	q, err := url.ParseQuery(strings.ReplaceAll(connStr, ";", "&"))
	if err != nil {
		panic(fmt.Sprintf("kustoclient: parsing connection string: %s", err))
	}
	for key, values := range q {
		if len(values) == 0 {
			continue
		}
		assignConnectionStringField(kcsb, key, strings.TrimSpace(values[0]))
	}
	return kcsb
}

func assignConnectionStringField(kcsb *ConnectionStringBuilder, rawKey, value string) {
	switch strings.ToLower(strings.TrimSpace(rawKey)) {
	case "datasource", "data source", "addr", "address", "server":
		kcsb.DataSource = value
	case "application client id", "applicationclientid", "appclientid":
		kcsb.ApplicationClientId = value
	case "application key", "applicationkey", "appkey":
		kcsb.ApplicationKey = value
	case "authority id", "authorityid", "authority", "tenantid", "tenant", "tid":
		kcsb.AuthorityId = value
	case "managedserviceidentity", "managed service identity":
		kcsb.ManagedServiceIdentity = value
	case "msi_auth":
		kcsb.MSIAuthentication = value == "true"
	}
}

func requireNonEmpty(field, value string) {
	if isEmpty(value) {
		panic(fmt.Sprintf("kustoclient: %s cannot be empty", field))
	}
}

func isEmpty(s string) bool { return strings.TrimSpace(s) == "" }

// WithAadAppKey authenticates with an AAD application ID and secret.
func (kcsb *ConnectionStringBuilder) WithAadAppKey(appID, appKey, authorityID string) *ConnectionStringBuilder {
	requireNonEmpty("DataSource", kcsb.DataSource)
	requireNonEmpty("application client id", appID)
	requireNonEmpty("application key", appKey)
	requireNonEmpty("authority id", authorityID)
	kcsb.ApplicationClientId = appID
	kcsb.ApplicationKey = appKey
	kcsb.AuthorityId = authorityID
	return kcsb
}

// WithSystemManagedIdentity authenticates as the host's system-assigned
// managed identity.
func (kcsb *ConnectionStringBuilder) WithSystemManagedIdentity() *ConnectionStringBuilder {
	requireNonEmpty("DataSource", kcsb.DataSource)
	kcsb.MSIAuthentication = true
	kcsb.ManagedServiceIdentity = ""
	return kcsb
}

// WithUserManagedIdentity authenticates as the user-assigned managed
// identity identified by clientID.
func (kcsb *ConnectionStringBuilder) WithUserManagedIdentity(clientID string) *ConnectionStringBuilder {
	requireNonEmpty("DataSource", kcsb.DataSource)
	requireNonEmpty("client id", clientID)
	kcsb.MSIAuthentication = true
	kcsb.ManagedServiceIdentity = clientID
	return kcsb
}

// WithDefaultAzureCredential authenticates using azidentity's standard
// environment/workload-identity/CLI credential chain.
func (kcsb *ConnectionStringBuilder) WithDefaultAzureCredential() *ConnectionStringBuilder {
	requireNonEmpty("DataSource", kcsb.DataSource)
	kcsb.UseDefaultCredential = true
	return kcsb
}

// TokenCredential resolves the authentication mode selected on kcsb into a
// TokenCredential usable with New.
func (kcsb *ConnectionStringBuilder) TokenCredential() (TokenCredential, error) {
	switch {
	case !isEmpty(kcsb.ApplicationClientId) && !isEmpty(kcsb.ApplicationKey):
		return AppKeyCredential(kcsb.AuthorityId, kcsb.ApplicationClientId, kcsb.ApplicationKey)
	case kcsb.MSIAuthentication:
		return ManagedIdentityCredential(kcsb.ManagedServiceIdentity)
	default:
		return DefaultCredential()
	}
}
