package status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parkfleet/internal/models"
)

type fakeDriverStore struct {
	drivers   []models.Driver
	persisted map[int64]string
	written   map[int64][]string
}

func newFakeDriverStore(drivers ...models.Driver) *fakeDriverStore {
	return &fakeDriverStore{
		drivers:   drivers,
		persisted: make(map[int64]string),
		written:   make(map[int64][]string),
	}
}

func (f *fakeDriverStore) ListActive(context.Context) ([]models.Driver, error) {
	return f.drivers, nil
}

func (f *fakeDriverStore) LatestStatusRecord(_ context.Context, driverID int64) (string, bool, error) {
	status, ok := f.persisted[driverID]
	return status, ok, nil
}

func (f *fakeDriverStore) UpdateStatus(_ context.Context, driverID int64, status string) error {
	f.written[driverID] = append(f.written[driverID], status)
	return nil
}

func driverKey(d models.Driver) DriverKey {
	return DriverKey{FirstName: d.FirstName, SecondName: d.SecondName}
}

var ivan = models.Driver{ID: 1, FirstName: "Ivan", SecondName: "Petrenko"}

func TestReconcileWithClientDominatesAcrossPlatforms(t *testing.T) {
	store := newFakeDriverStore(ivan)
	r := NewReconciler(store, zap.NewNop())

	bolt := NewReport("bolt")
	bolt.MarkWithClient(driverKey(ivan))
	uklon := NewReport("uklon")
	uklon.MarkOnline(driverKey(ivan))

	// Order of reports must not matter: with_client wins either way.
	for _, reports := range [][]*Report{{bolt, uklon}, {uklon, bolt}} {
		store.written = make(map[int64][]string)
		require.NoError(t, r.Reconcile(context.Background(), reports))
		assert.Equal(t, []string{models.DriverStatusWithClient}, store.written[ivan.ID])
	}
}

func TestReconcileOnlineUpgradesToActive(t *testing.T) {
	store := newFakeDriverStore(ivan)
	r := NewReconciler(store, zap.NewNop())

	report := NewReport("uklon")
	report.MarkOnline(driverKey(ivan))

	require.NoError(t, r.Reconcile(context.Background(), []*Report{report}))
	assert.Equal(t, []string{models.DriverStatusActive}, store.written[ivan.ID])
}

func TestReconcileNoReportsFallsBackToPersistedRecord(t *testing.T) {
	store := newFakeDriverStore(ivan)
	store.persisted[ivan.ID] = models.DriverStatusWithClient
	r := NewReconciler(store, zap.NewNop())

	require.NoError(t, r.Reconcile(context.Background(), nil))
	assert.Equal(t, []string{models.DriverStatusWithClient}, store.written[ivan.ID])
}

func TestReconcileOmittedDriverWithoutRecordGoesOffline(t *testing.T) {
	store := newFakeDriverStore(ivan)
	r := NewReconciler(store, zap.NewNop())

	report := NewReport("bolt")
	report.MarkOnline(DriverKey{FirstName: "Someone", SecondName: "Else"})

	require.NoError(t, r.Reconcile(context.Background(), []*Report{report}))
	assert.Equal(t, []string{models.DriverStatusOffline}, store.written[ivan.ID])
}

func TestReconcileOmittedDriverKeepsPersistedFallback(t *testing.T) {
	// Live reports that omit the driver do not demote below the persisted
	// record: the record is the base, live signal only upgrades.
	store := newFakeDriverStore(ivan)
	store.persisted[ivan.ID] = models.DriverStatusActive
	r := NewReconciler(store, zap.NewNop())

	report := NewReport("bolt")

	require.NoError(t, r.Reconcile(context.Background(), []*Report{report}))
	assert.Equal(t, []string{models.DriverStatusActive}, store.written[ivan.ID])
}

func TestReconcileNilReportContributesNothing(t *testing.T) {
	store := newFakeDriverStore(ivan)
	r := NewReconciler(store, zap.NewNop())

	uklon := NewReport("uklon")
	uklon.MarkOnline(driverKey(ivan))

	// bolt's sync failed this cycle; its absence neither promotes nor
	// demotes, reconciliation still completes with uklon's sets.
	require.NoError(t, r.Reconcile(context.Background(), []*Report{nil, uklon}))
	assert.Equal(t, []string{models.DriverStatusActive}, store.written[ivan.ID])
}

func TestReconcileKeyMatchIsCaseSensitive(t *testing.T) {
	store := newFakeDriverStore(ivan)
	r := NewReconciler(store, zap.NewNop())

	report := NewReport("bolt")
	report.MarkOnline(DriverKey{FirstName: "ivan", SecondName: "petrenko"})

	require.NoError(t, r.Reconcile(context.Background(), []*Report{report}))
	assert.Equal(t, []string{models.DriverStatusOffline}, store.written[ivan.ID])
}

func TestReconcileWritesEachDriverOnce(t *testing.T) {
	olena := models.Driver{ID: 2, FirstName: "Olena", SecondName: "Shevchenko"}
	store := newFakeDriverStore(ivan, olena)
	r := NewReconciler(store, zap.NewNop())

	bolt := NewReport("bolt")
	bolt.MarkOnline(driverKey(ivan))
	uklon := NewReport("uklon")
	uklon.MarkOnline(driverKey(ivan))
	uklon.MarkWithClient(driverKey(olena))

	require.NoError(t, r.Reconcile(context.Background(), []*Report{bolt, uklon}))

	assert.Len(t, store.written[ivan.ID], 1)
	assert.Len(t, store.written[olena.ID], 1)
	assert.Equal(t, models.DriverStatusActive, store.written[ivan.ID][0])
	assert.Equal(t, models.DriverStatusWithClient, store.written[olena.ID][0])
}
