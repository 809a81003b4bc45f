// Package queue submits queued-ingestion messages for a blob that has
// already been staged in object storage: it picks one of the cluster's
// current ingestion queues, builds the Base64-JSON ingestion message, and
// enqueues it, grounded on
// kusto/ingest/internal/queued/queued.go's Blob/upstreamQueue/upstreamContainer.
package queue

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Azure/azure-storage-queue-go/azqueue"
	"github.com/google/uuid"

	"github.com/kustoclient/kustoclient/errors"
	"github.com/kustoclient/kustoclient/ingest"
	"github.com/kustoclient/kustoclient/ingest/resources"
)

// ResourceProvider is the subset of *resources.Manager the Submitter needs:
// the current resource set and identity token, each refreshed on demand.
type ResourceProvider interface {
	Resources() (resources.Ingestion, error)
	AuthContext(ctx context.Context) (string, error)
}

// Submitter submits Blob-reference ingestion messages for one
// database/table pair.
type Submitter struct {
	db    string
	table string
	mgr   ResourceProvider
}

// New returns a Submitter scoped to db/table, drawing its queue/container
// resource set from mgr.
func New(db, table string, mgr ResourceProvider) *Submitter {
	return &Submitter{db: db, table: table, mgr: mgr}
}

// Blob enqueues an ingestion message referencing the blob named by desc (as
// staged by a caller's own upload to one of Resources()'s containers),
// following the ingest_from_blob sequence: fetch a queue, fetch the
// identity token, compose the blob URL from desc's BlobAuth variant, then
// serialize and enqueue the message.
func (s *Submitter) Blob(ctx context.Context, desc ingest.BlobDescriptor, props ingest.Properties) error {
	res, err := s.mgr.Resources()
	if err != nil {
		return errors.E(errors.OpFileIngest, errors.KBlobstore, err)
	}

	q, err := resources.PickQueue(res)
	if err != nil {
		return err
	}

	token, err := s.mgr.AuthContext(ctx)
	if err != nil {
		return err
	}

	props.DatabaseName = s.db
	props.TableName = s.table
	props.BlobPath = desc.URL()
	if desc.Size != 0 {
		props.RawDataSize = desc.Size
	}
	if desc.SourceID != uuid.Nil {
		props.ID = desc.SourceID
	}
	props.RetainBlobOnSuccess = true
	props.Additional.AuthContext = token
	if props.Additional.Format == ingest.DFUnknown {
		props.Additional.Format = ingest.CSV
	}

	body, err := props.MarshalJSONString()
	if err != nil {
		return errors.E(errors.OpFileIngest, errors.KIngestionSerialization, err).SetNoRetry()
	}

	return enqueue(ctx, q, body)
}

// enqueue sends body to q's queue. Overridden in tests to avoid a live
// Azure Queue Storage dependency, the way defaultTimeProvider is overridden
// in kusto/ingest/internal/resources/ranked_storage_account_set.go.
var enqueue = func(ctx context.Context, q *resources.URI, body string) error {
	messages, err := messagesURL(q)
	if err != nil {
		return err
	}
	if _, err := messages.Enqueue(ctx, body, 0, 0); err != nil {
		return errors.E(errors.OpFileIngest, errors.KQueueEnqueue, err)
	}
	return nil
}

// messagesURL builds an anonymous-credential queue client authorized by the
// resource URI's own SAS token.
func messagesURL(q *resources.URI) (azqueue.MessagesURL, error) {
	serviceURL := fmt.Sprintf("https://%s.queue.core.windows.net?%s", q.Account(), q.SAS().Encode())
	u, err := url.Parse(serviceURL)
	if err != nil {
		return azqueue.MessagesURL{}, errors.E(errors.OpFileIngest, errors.KBlobstore, err).SetNoRetry()
	}

	creds := azqueue.NewAnonymousCredential()
	p := azqueue.NewPipeline(creds, azqueue.PipelineOptions{})

	return azqueue.NewServiceURL(*u, p).NewQueueURL(q.ObjectName()).NewMessagesURL(), nil
}
