package ingest

import "github.com/google/uuid"

// BlobAuth names how the ingestion backend should authenticate against a
// blob's storage account when it is not already covered by the staging
// container's own SAS, grounded on original_source's descriptors.rs
// BlobAuth enum (not retained verbatim in the pack; composition rules
// described identically in the distilled spec's ingestion message builder
// section).
type BlobAuth struct {
	sasToken string
	objectID string
	system   bool
}

// SasToken authenticates with the literal SAS token t, appended to the blob
// URI as a query string.
func SasToken(t string) BlobAuth {
	return BlobAuth{sasToken: t}
}

// UserAssignedManagedIdentity authenticates as the user-assigned managed
// identity named by objectID.
func UserAssignedManagedIdentity(objectID string) BlobAuth {
	return BlobAuth{objectID: objectID}
}

// SystemAssignedManagedIdentity authenticates as the cluster's own
// system-assigned managed identity.
func SystemAssignedManagedIdentity() BlobAuth {
	return BlobAuth{system: true}
}

// apply returns uri with this auth variant's suffix appended, or uri
// unchanged for the zero-value BlobAuth.
func (a BlobAuth) apply(uri string) string {
	switch {
	case a.sasToken != "":
		return uri + "?" + a.sasToken
	case a.objectID != "":
		return uri + ";managed_identity=" + a.objectID
	case a.system:
		return uri + ";managed_identity=system"
	default:
		return uri
	}
}

// BlobDescriptor identifies a blob already staged in object storage that is
// to be ingested: its URI, size (0 if unknown), the message ID to use
// (generated if absent), and how the backend should authenticate to fetch
// it.
type BlobDescriptor struct {
	URI      string
	Size     int64
	SourceID uuid.UUID
	Auth     BlobAuth
}

// URL returns the blob URI with its BlobAuth variant's suffix composed in.
func (d BlobDescriptor) URL() string {
	return d.Auth.apply(d.URI)
}
