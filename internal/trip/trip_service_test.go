package trip_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/esnupy/lafa/internal/driver"
	"github.com/esnupy/lafa/internal/messaging/kafka"
	"github.com/esnupy/lafa/internal/shared/apperror"
	"github.com/esnupy/lafa/internal/trip"
	triperrors "github.com/esnupy/lafa/internal/trip/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeTripRepository struct {
	upsertBatchFn      func(ctx context.Context, trips []trip.Trip) error
	findByDriverWeekFn func(ctx context.Context, driverID uuid.UUID, weekStart time.Time) ([]trip.Trip, error)
	deleteFn           func(ctx context.Context, driverID uuid.UUID, weekStart time.Time) error
}

func (f *fakeTripRepository) WithTx(tx *gorm.DB) trip.Repository { return f }

func (f *fakeTripRepository) UpsertBatch(ctx context.Context, trips []trip.Trip) error {
	if f.upsertBatchFn != nil {
		return f.upsertBatchFn(ctx, trips)
	}
	return nil
}

func (f *fakeTripRepository) FindByDriverWeek(ctx context.Context, driverID uuid.UUID, weekStart time.Time) ([]trip.Trip, error) {
	if f.findByDriverWeekFn != nil {
		return f.findByDriverWeekFn(ctx, driverID, weekStart)
	}
	return nil, nil
}

func (f *fakeTripRepository) FindSince(ctx context.Context, from time.Time, limit int) ([]trip.Trip, error) {
	return nil, nil
}

func (f *fakeTripRepository) SumRevenueByWeek(ctx context.Context, weekStart time.Time) ([]trip.DriverRevenue, error) {
	return nil, nil
}

func (f *fakeTripRepository) DeleteByDriverWeek(ctx context.Context, driverID uuid.UUID, weekStart time.Time) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, driverID, weekStart)
	}
	return nil
}

type fakeEarningsRepository struct {
	upsertFn           func(ctx context.Context, e *trip.WeeklyEarnings) error
	findByDriverWeekFn func(ctx context.Context, driverID uuid.UUID, weekStart time.Time) (*trip.WeeklyEarnings, error)
	deleteFn           func(ctx context.Context, driverID uuid.UUID, weekStart time.Time) error
}

func (f *fakeEarningsRepository) WithTx(tx *gorm.DB) trip.EarningsRepository { return f }

func (f *fakeEarningsRepository) Upsert(ctx context.Context, e *trip.WeeklyEarnings) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, e)
	}
	return nil
}

func (f *fakeEarningsRepository) FindByWeek(ctx context.Context, weekStart time.Time) ([]trip.WeeklyEarnings, error) {
	return nil, nil
}

func (f *fakeEarningsRepository) FindByDriverWeek(ctx context.Context, driverID uuid.UUID, weekStart time.Time) (*trip.WeeklyEarnings, error) {
	if f.findByDriverWeekFn != nil {
		return f.findByDriverWeekFn(ctx, driverID, weekStart)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEarningsRepository) ListWeeks(ctx context.Context, limit int) ([]time.Time, error) {
	return nil, nil
}

func (f *fakeEarningsRepository) Delete(ctx context.Context, driverID uuid.UUID, weekStart time.Time) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, driverID, weekStart)
	}
	return nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeDirectory struct {
	known map[int64]uuid.UUID
}

func newFakeDirectory(known map[int64]uuid.UUID) *fakeDirectory {
	return &fakeDirectory{known: known}
}

func (f *fakeDirectory) ResolvePlatformIDs(ctx context.Context, platformIDs []int64) (map[int64]uuid.UUID, error) {
	out := make(map[int64]uuid.UUID)
	for _, id := range platformIDs {
		if internal, ok := f.known[id]; ok {
			out[id] = internal
		}
	}
	return out, nil
}

func (f *fakeDirectory) ListAll(ctx context.Context) ([]driver.Driver, error) {
	return nil, nil
}

func dec2(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type tripServiceDeps struct {
	sqlMock  sqlmock.Sqlmock
	service  trip.Service
	trips    *fakeTripRepository
	earnings *fakeEarningsRepository
	outbox   *fakeOutboxRepository
}

func setupTripServiceTest(t *testing.T, known map[int64]uuid.UUID) *tripServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	trips := &fakeTripRepository{}
	earnings := &fakeEarningsRepository{}
	outbox := &fakeOutboxRepository{}
	svc := trip.NewService(gormDB, trips, earnings, outbox, newFakeDirectory(known), testCalendar(t))

	return &tripServiceDeps{sqlMock: sqlMock, service: svc, trips: trips, earnings: earnings, outbox: outbox}
}

func TestTripService_Import_RejectsWholeBatchOnUnmappedDriver(t *testing.T) {
	driverA := uuid.New()
	deps := setupTripServiceTest(t, map[int64]uuid.UUID{1001: driverA})

	upserts := 0
	deps.trips.upsertBatchFn = func(ctx context.Context, trips []trip.Trip) error {
		upserts++
		return nil
	}

	_, err := deps.service.Import(context.Background(), trip.ImportRequest{Rows: []trip.RawTripRow{
		{DriverID: 1001.0, TripID: "T-1", Date: "2025-06-10", Cost: 100.0},
		{DriverID: 9999.0, TripID: "T-2", Date: "2025-06-10", Cost: 100.0},
	}})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeUnmappedDriver, appErr.Code)
	assert.Contains(t, appErr.Message, "9999")
	assert.Zero(t, upserts, "nothing may persist when any driver is unmapped")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTripService_Import_DedupesByTripIDLastWins(t *testing.T) {
	driverA := uuid.New()
	deps := setupTripServiceTest(t, map[int64]uuid.UUID{1001: driverA})

	// trips tx, then earnings tx.
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	var saved []trip.Trip
	deps.trips.upsertBatchFn = func(ctx context.Context, trips []trip.Trip) error {
		saved = trips
		return nil
	}

	resp, err := deps.service.Import(context.Background(), trip.ImportRequest{Rows: []trip.RawTripRow{
		{DriverID: 1001.0, TripID: "T-1", Date: "2025-06-10", Cost: "$100.00"},
		{DriverID: 1001.0, TripID: "T-1", Date: "2025-06-10", Cost: "$250.00"},
	}})

	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "250.00", saved[0].Cost.StringFixed(2))
	assert.Equal(t, driverA, saved[0].DriverID)
	assert.Equal(t, 2, resp.RowsReceived)
	assert.Equal(t, 1, resp.TripsSaved)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTripService_Import_RebuildsEarningsFromStoredTrips(t *testing.T) {
	driverA := uuid.New()
	deps := setupTripServiceTest(t, map[int64]uuid.UUID{1001: driverA})

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	deps.trips.findByDriverWeekFn = func(ctx context.Context, driverID uuid.UUID, ws time.Time) ([]trip.Trip, error) {
		assert.Equal(t, driverA, driverID)
		assert.Equal(t, weekStart, ws)
		// Two stored trips for the key, including one from an earlier
		// import that this batch did not carry.
		return []trip.Trip{
			{ExternalTripID: "T-0", Cost: dec2("80.25"), Tip: dec2("5.00")},
			{ExternalTripID: "T-1", Cost: dec2("100.00"), Tip: dec2("10.50")},
		}, nil
	}

	var agg *trip.WeeklyEarnings
	deps.earnings.upsertFn = func(ctx context.Context, e *trip.WeeklyEarnings) error {
		agg = e
		return nil
	}
	var event *kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, e kafka.OutboxEvent) error {
		event = &e
		return nil
	}

	resp, err := deps.service.Import(context.Background(), trip.ImportRequest{Rows: []trip.RawTripRow{
		{DriverID: 1001.0, TripID: "T-1", Date: "2025-06-10", Cost: 100.0, Tip: 10.5},
	}})

	require.NoError(t, err)
	require.NotNil(t, agg)
	assert.Equal(t, 2, agg.TripCount)
	assert.Equal(t, "195.75", agg.Revenue.StringFixed(2))
	assert.Equal(t, []string{"2025-06-09"}, resp.Weeks)

	require.NotNil(t, event)
	assert.Equal(t, "fleet.trips.imported.v1", event.Topic)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTripService_Import_ReportsPartialPersistenceDistinctly(t *testing.T) {
	driverA := uuid.New()
	deps := setupTripServiceTest(t, map[int64]uuid.UUID{1001: driverA})

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()

	tripsSaved := false
	deps.trips.upsertBatchFn = func(ctx context.Context, trips []trip.Trip) error {
		tripsSaved = true
		return nil
	}
	deps.earnings.upsertFn = func(ctx context.Context, e *trip.WeeklyEarnings) error {
		return errors.New("disk is angry")
	}

	_, err := deps.service.Import(context.Background(), trip.ImportRequest{Rows: []trip.RawTripRow{
		{DriverID: 1001.0, TripID: "T-1", Date: "2025-06-10", Cost: 100.0},
	}})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodePartialPersistence, appErr.Code)
	assert.True(t, tripsSaved, "trips must be durable when only the aggregate failed")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTripService_Import_EmptyAfterFiltering(t *testing.T) {
	deps := setupTripServiceTest(t, nil)

	_, err := deps.service.Import(context.Background(), trip.ImportRequest{Rows: []trip.RawTripRow{
		{Date: "2025-06-10"}, // no ids at all
	}})

	assert.ErrorIs(t, err, triperrors.ErrEmptyBatch)
}

func TestTripService_DeleteEarnings_RemovesAggregateAndTrips(t *testing.T) {
	driverA := uuid.New()
	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	deps := setupTripServiceTest(t, nil)

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()

	deps.earnings.findByDriverWeekFn = func(ctx context.Context, id uuid.UUID, ws time.Time) (*trip.WeeklyEarnings, error) {
		return &trip.WeeklyEarnings{DriverID: id, WeekStart: ws}, nil
	}
	earningsDeleted := false
	deps.earnings.deleteFn = func(ctx context.Context, id uuid.UUID, ws time.Time) error {
		earningsDeleted = true
		return nil
	}
	tripsDeleted := false
	deps.trips.deleteFn = func(ctx context.Context, id uuid.UUID, ws time.Time) error {
		tripsDeleted = true
		assert.Equal(t, driverA, id)
		assert.Equal(t, weekStart, ws)
		return nil
	}

	err := deps.service.DeleteEarnings(context.Background(), driverA.String(), "2025-06-09")

	require.NoError(t, err)
	assert.True(t, earningsDeleted)
	assert.True(t, tripsDeleted)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestTripService_DeleteEarnings_UnknownKey(t *testing.T) {
	deps := setupTripServiceTest(t, nil)

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()

	err := deps.service.DeleteEarnings(context.Background(), uuid.NewString(), "2025-06-09")

	assert.ErrorIs(t, err, triperrors.ErrEarningsNotFound)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
