package queue

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kustoclient/kustoclient/ingest"
	"github.com/kustoclient/kustoclient/ingest/resources"
)

type fakeResourceProvider struct {
	res      resources.Ingestion
	err      error
	token    string
	tokenErr error
}

func (f *fakeResourceProvider) Resources() (resources.Ingestion, error) {
	return f.res, f.err
}

func (f *fakeResourceProvider) AuthContext(context.Context) (string, error) {
	return f.token, f.tokenErr
}

// testQueueURI parses a queue resource URI the way the resources package
// would, letting fakeResourceProvider hand the Submitter a usable queue.
func testQueueURI(t *testing.T) *resources.URI {
	t.Helper()
	u, err := resources.Parse("https://account.queue.core.windows.net/q0?sv=x")
	if err != nil {
		t.Fatalf("test fixture URI failed to parse: %s", err)
	}
	return u
}

// stubEnqueue replaces the package-level enqueue seam for the duration of
// one test, capturing the body that would have been sent to the queue.
func stubEnqueue(t *testing.T) *string {
	t.Helper()
	var captured string
	orig := enqueue
	enqueue = func(_ context.Context, _ *resources.URI, body string) error {
		captured = body
		return nil
	}
	t.Cleanup(func() { enqueue = orig })
	return &captured
}

func TestBlobPropagatesResourceError(t *testing.T) {
	s := New("db", "table", &fakeResourceProvider{err: fmt.Errorf("boom")})
	err := s.Blob(context.Background(), ingest.BlobDescriptor{URI: "https://test.blob.core.windows.net/c/f.csv"}, ingest.Properties{})
	assert.Error(t, err)
}

func TestBlobErrorsWithNoQueues(t *testing.T) {
	s := New("db", "table", &fakeResourceProvider{res: resources.Ingestion{}})
	err := s.Blob(context.Background(), ingest.BlobDescriptor{URI: "https://test.blob.core.windows.net/c/f.csv"}, ingest.Properties{})
	assert.Error(t, err)
}

func TestBlobPropagatesAuthContextError(t *testing.T) {
	s := New("db", "table", &fakeResourceProvider{
		res:      resources.Ingestion{Queues: []*resources.URI{testQueueURI(t)}},
		tokenErr: fmt.Errorf("identity token fetch failed"),
	})
	err := s.Blob(context.Background(), ingest.BlobDescriptor{URI: "https://test.blob.core.windows.net/c/f.csv"}, ingest.Properties{})
	assert.Error(t, err)
}

// TestBlobSubmitsIngestionMessage exercises the full ingest_from_blob
// sequence (spec.md §4.I / §8 scenario 6): a successful Blob() call whose
// enqueued message, once base64-decoded, carries the composed BlobPath,
// the fetched identity token, the supplied source ID, and the size.
func TestBlobSubmitsIngestionMessage(t *testing.T) {
	body := stubEnqueue(t)

	sourceID := uuid.New()
	desc := ingest.BlobDescriptor{
		URI:      "https://s.blob.core.windows.net/c/b",
		Size:     123,
		SourceID: sourceID,
		Auth:     ingest.SystemAssignedManagedIdentity(),
	}

	provider := &fakeResourceProvider{
		res:   resources.Ingestion{Queues: []*resources.URI{testQueueURI(t)}},
		token: "fixture-token",
	}
	s := New("db", "table", provider)

	err := s.Blob(context.Background(), desc, ingest.Properties{})
	assert.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(*body)
	assert.NoError(t, err)

	var decoded struct {
		Id                   string `json:"Id"`
		BlobPath             string `json:"BlobPath"`
		RawDataSize          int64  `json:"RawDataSize"`
		AdditionalProperties struct {
			AuthorizationContext string `json:"authorizationContext"`
		} `json:"AdditionalProperties"`
	}
	assert.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, sourceID.String(), decoded.Id)
	assert.Equal(t, "https://s.blob.core.windows.net/c/b;managed_identity=system", decoded.BlobPath)
	assert.Equal(t, int64(123), decoded.RawDataSize)
	assert.Equal(t, "fixture-token", decoded.AdditionalProperties.AuthorizationContext)
}
