// Package resources caches the ingestion-resource set (queues, containers,
// status tables) and the identity-token authorization context a queued
// ingestion message must carry, both read from management commands and
// refreshed on the first access after they expire, grounded on
// kusto/ingest/internal/resources/resources_test.go and original_source's
// ingest_client_resources.rs.
package resources

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	kustoclient "github.com/kustoclient/kustoclient"
	"github.com/kustoclient/kustoclient/cache"
	"github.com/kustoclient/kustoclient/errors"
	v1 "github.com/kustoclient/kustoclient/frames/v1"
	"github.com/kustoclient/kustoclient/kql"
)

// defaultRefreshPeriod is how long a fetched resource set or auth context is
// trusted before Resources/AuthContext force a refresh.
const defaultRefreshPeriod = time.Hour

// resourceTypeName values as returned by ".get ingestion resources".
const (
	tempStorage           = "TempStorage"
	aggregationQueue      = "SecuredReadyForAggregationQueue"
	failedIngestionsQueue = "FailedIngestionsQueue"
	successQueue          = "SuccessfulIngestionsQueue"
	statusTable           = "IngestionsStatusTable"
)

// QueryClient is the narrow interface Manager needs from a Client: the
// ability to run a management command.
type QueryClient interface {
	Mgmt(ctx context.Context, db string, csl kql.Statement, opts ...kustoclient.MgmtOption) (*v1.Dataset, error)
}

// Ingestion is the resource set a queued ingestion message needs: which
// queue to enqueue onto, which container to stage a blob in, and so on.
type Ingestion struct {
	Queues                 []*URI
	Containers             []*URI
	FailedIngestionsQueues []*URI
	SuccessQueues          []*URI
	StatusTables           []*URI
}

// Manager owns the resource-set and authorization-context caches for one
// cluster connection. resourcesMu/authContextMu serialize the
// check-then-refresh sequence on each cache: without them, N concurrent
// callers against an expired cache.Value would each independently observe
// IsExpired and issue their own management query, since cache.Value itself
// only protects the read/write of its own fields, not the gap between
// checking expiry and calling Update.
type Manager struct {
	client QueryClient

	resources   *cache.Value[Ingestion]
	resourcesMu sync.Mutex

	authContext   *cache.Value[string]
	authContextMu sync.Mutex
}

// New returns a Manager backed by client, with both caches starting
// expired so the first call fetches fresh state.
func New(client QueryClient) *Manager {
	return &Manager{
		client:      client,
		resources:   cache.NewExpiredValue(Ingestion{}, defaultRefreshPeriod),
		authContext: cache.NewExpiredValue("", defaultRefreshPeriod),
	}
}

// Resources returns the current resource set, refreshing it first if
// expired.
func (m *Manager) Resources() (Ingestion, error) {
	return m.ResourcesContext(context.Background())
}

// ResourcesContext is Resources with an explicit context, used to carry the
// contextual logger and allow cancellation of the refreshing Mgmt call.
//
// Double-checked locking: the fast path (no lock) lets concurrent callers
// avoid contention once the cache is fresh. When expired, resourcesMu
// serializes refreshers; every caller but the first blocks on the lock and,
// on acquiring it, re-checks IsExpired and finds the cache already
// refreshed, so exactly one Mgmt call is issued no matter how many callers
// race in against an expired cache.
func (m *Manager) ResourcesContext(ctx context.Context) (Ingestion, error) {
	if !m.resources.IsExpired() {
		return m.resources.Get(), nil
	}

	m.resourcesMu.Lock()
	defer m.resourcesMu.Unlock()

	if m.resources.IsExpired() {
		if err := m.fetch(ctx); err != nil {
			return Ingestion{}, err
		}
	}
	return m.resources.Get(), nil
}

// fetch runs ".get ingestion resources" and repopulates the resource-set
// cache.
func (m *Manager) fetch(ctx context.Context) error {
	ds, err := m.client.Mgmt(ctx, "NetDefaultDB", kql.Raw(".get ingestion resources"))
	if err != nil {
		return errors.E(errors.OpIngestMgr, errors.KHTTPError, err)
	}
	if len(ds.Tables) != 1 {
		return errors.ES(errors.OpIngestMgr, errors.KExpectedOneTable, "expected exactly one ingestion resources table, got %d", len(ds.Tables))
	}
	t := ds.Tables[0]

	typeCol := t.ColumnByName("ResourceTypeName")
	rootCol := t.ColumnByName("StorageRoot")
	if typeCol == nil || rootCol == nil {
		return errors.ES(errors.OpIngestMgr, errors.KColumnNotFound, "ingestion resources table is missing ResourceTypeName/StorageRoot columns")
	}

	var ing Ingestion
	for _, row := range t.Rows {
		if row.IsError() {
			continue
		}
		typeName := row.Value(typeCol.Ordinal).GetValue()
		root := row.Value(rootCol.Ordinal).GetValue()
		name, _ := typeName.(string)
		uriStr, _ := root.(string)

		u, err := Parse(uriStr)
		if err != nil {
			return errors.ES(errors.OpIngestMgr, errors.KBlobstore, "resource %q: %s", name, err)
		}

		switch name {
		case tempStorage:
			ing.Containers = append(ing.Containers, u)
		case aggregationQueue:
			ing.Queues = append(ing.Queues, u)
		case failedIngestionsQueue:
			ing.FailedIngestionsQueues = append(ing.FailedIngestionsQueues, u)
		case successQueue:
			ing.SuccessQueues = append(ing.SuccessQueues, u)
		case statusTable:
			ing.StatusTables = append(ing.StatusTables, u)
		}
	}

	if len(ing.Queues) == 0 {
		return errors.ES(errors.OpIngestMgr, errors.KNoResourcesFound, "no Kusto queue resources are defined").SetNoRetry()
	}

	zerolog.Ctx(ctx).Debug().
		Strs("queues", lo.Map(ing.Queues, func(u *URI, _ int) string { return u.String() })).
		Strs("containers", lo.Map(ing.Containers, func(u *URI, _ int) string { return u.String() })).
		Msg("refreshed ingestion resources")

	m.resources.Update(ing)
	return nil
}

// AuthContext returns the identity token a queued ingestion message's
// AuthContext field carries, refreshing it first if expired. Uses the same
// double-checked locking as ResourcesContext so that N concurrent callers
// against an expired cache issue exactly one ".get kusto identity token"
// query between them.
func (m *Manager) AuthContext(ctx context.Context) (string, error) {
	if !m.authContext.IsExpired() {
		return m.authContext.Get(), nil
	}

	m.authContextMu.Lock()
	defer m.authContextMu.Unlock()

	if !m.authContext.IsExpired() {
		return m.authContext.Get(), nil
	}

	ds, err := m.client.Mgmt(ctx, "NetDefaultDB", kql.Raw(".get kusto identity token"))
	if err != nil {
		return "", errors.E(errors.OpIngestMgr, errors.KHTTPError, err)
	}
	if len(ds.Tables) != 1 {
		return "", errors.ES(errors.OpIngestMgr, errors.KExpectedOneTable, "expected exactly one identity token table, got %d", len(ds.Tables))
	}
	if len(ds.Tables[0].Rows) != 1 {
		return "", errors.ES(errors.OpIngestMgr, errors.KExpectedOneRow, "expected exactly one row of identity token, got %d", len(ds.Tables[0].Rows))
	}

	col := ds.Tables[0].ColumnByName("AuthorizationContext")
	if col == nil {
		return "", errors.ES(errors.OpIngestMgr, errors.KColumnNotFound, "identity token response is missing AuthorizationContext column")
	}
	row := ds.Tables[0].Rows[0]
	if row.IsError() {
		return "", row.Err()
	}

	token, ok := row.Value(col.Ordinal).GetValue().(string)
	if !ok {
		return "", errors.ES(errors.OpIngestMgr, errors.KInvalidJSONResponse, "AuthorizationContext value was not a string")
	}
	if token == "" {
		return "", errors.ES(errors.OpIngestMgr, errors.KEmptyToken, "identity token response carried an empty AuthorizationContext").SetNoRetry()
	}

	m.authContext.Update(token)
	return m.authContext.Get(), nil
}

// PickQueue uniformly selects one of the current aggregation queues. The
// library does not rotate, weight, or record per-endpoint health.
func PickQueue(ing Ingestion) (*URI, error) {
	if len(ing.Queues) == 0 {
		return nil, errors.ES(errors.OpFileIngest, errors.KBlobstore, "no Kusto queue resources are defined, there is no queue to upload to").SetNoRetry()
	}
	return ing.Queues[rand.Intn(len(ing.Queues))], nil
}

// PickContainer uniformly selects one of the current staging containers.
func PickContainer(ing Ingestion) (*URI, error) {
	if len(ing.Containers) == 0 {
		return nil, errors.ES(errors.OpFileIngest, errors.KBlobstore, "no Blob Storage container resources are defined, there is no container to upload to").SetNoRetry()
	}
	return ing.Containers[rand.Intn(len(ing.Containers))], nil
}
