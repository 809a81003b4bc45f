package queue

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/kustoclient/kustoclient/ingest/resources"
)

// ContainerClient builds an anonymous-credential blob client for one of the
// resource set's staging containers, for callers that stage their own blob
// before calling Submitter.Blob. Not used by the submission path itself,
// since that path only ever receives an already-staged blob URL.
func ContainerClient(c *resources.URI) (*azblob.Client, error) {
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/%s?%s", c.Account(), c.ObjectName(), c.SAS().Encode())
	return azblob.NewClientWithNoCredential(serviceURL, nil)
}

// PickContainer selects one of the resource set's current staging
// containers and returns a client for it.
func PickContainer(res resources.Ingestion) (*azblob.Client, error) {
	c, err := resources.PickContainer(res)
	if err != nil {
		return nil, err
	}
	return ContainerClient(c)
}
