package opsview_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/esnupy/lafa/internal/driver"
	"github.com/esnupy/lafa/internal/opsview"
	"github.com/esnupy/lafa/internal/payroll"
	"github.com/esnupy/lafa/internal/payrule"
	"github.com/esnupy/lafa/internal/shift"
	"github.com/esnupy/lafa/internal/trip"
	"github.com/esnupy/lafa/internal/vehicle"
	"github.com/esnupy/lafa/internal/week"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fakeDirectory struct{ drivers []driver.Driver }

func (f *fakeDirectory) ResolvePlatformIDs(ctx context.Context, ids []int64) (map[int64]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeDirectory) ListAll(ctx context.Context) ([]driver.Driver, error) {
	return f.drivers, nil
}

type fakeVehicleService struct{ vehicles []vehicle.VehicleResponse }

func (f *fakeVehicleService) Create(ctx context.Context, req vehicle.CreateVehicleRequest) (vehicle.VehicleResponse, error) {
	return vehicle.VehicleResponse{}, nil
}

func (f *fakeVehicleService) GetAll(ctx context.Context) ([]vehicle.VehicleResponse, error) {
	return f.vehicles, nil
}

func (f *fakeVehicleService) GetByID(ctx context.Context, id string) (vehicle.VehicleResponse, error) {
	return vehicle.VehicleResponse{}, nil
}

func (f *fakeVehicleService) Update(ctx context.Context, id string, req vehicle.UpdateVehicleRequest) (vehicle.VehicleResponse, error) {
	return vehicle.VehicleResponse{}, nil
}

func (f *fakeVehicleService) Delete(ctx context.Context, id string) error { return nil }

type fakeShiftService struct {
	active []shift.ShiftResponse
	hours  map[uuid.UUID]decimal.Decimal
}

func (f *fakeShiftService) CheckIn(ctx context.Context, supervisorID string, req shift.CheckInRequest) (shift.ShiftResponse, error) {
	return shift.ShiftResponse{}, nil
}

func (f *fakeShiftService) CheckOut(ctx context.Context, req shift.CheckOutRequest) (shift.ShiftResponse, error) {
	return shift.ShiftResponse{}, nil
}

func (f *fakeShiftService) GetActive(ctx context.Context) ([]shift.ShiftResponse, error) {
	return f.active, nil
}

func (f *fakeShiftService) GetRecent(ctx context.Context, limit int) ([]shift.ShiftResponse, error) {
	return nil, nil
}

func (f *fakeShiftService) HoursByDriver(ctx context.Context, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	return f.hours, nil
}

type fakeTripService struct{ recent []trip.TripResponse }

func (f *fakeTripService) Import(ctx context.Context, req trip.ImportRequest) (trip.ImportResponse, error) {
	return trip.ImportResponse{}, nil
}

func (f *fakeTripService) GetEarningsByWeek(ctx context.Context, weekStart string) ([]trip.EarningsResponse, error) {
	return nil, nil
}

func (f *fakeTripService) GetRecentTrips(ctx context.Context, days, limit int) ([]trip.TripResponse, error) {
	return f.recent, nil
}

func (f *fakeTripService) DeleteEarnings(ctx context.Context, driverID, weekStart string) error {
	return nil
}

type fakeEarningsRepository struct {
	byWeek map[string][]trip.WeeklyEarnings
}

func (f *fakeEarningsRepository) WithTx(tx *gorm.DB) trip.EarningsRepository { return f }

func (f *fakeEarningsRepository) Upsert(ctx context.Context, e *trip.WeeklyEarnings) error {
	return nil
}

func (f *fakeEarningsRepository) FindByWeek(ctx context.Context, weekStart time.Time) ([]trip.WeeklyEarnings, error) {
	return f.byWeek[week.FormatDate(weekStart)], nil
}

func (f *fakeEarningsRepository) FindByDriverWeek(ctx context.Context, driverID uuid.UUID, weekStart time.Time) (*trip.WeeklyEarnings, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEarningsRepository) ListWeeks(ctx context.Context, limit int) ([]time.Time, error) {
	return nil, nil
}

func (f *fakeEarningsRepository) Delete(ctx context.Context, driverID uuid.UUID, weekStart time.Time) error {
	return nil
}

type fakePayrollService struct{ prev payroll.RunResponse }

func (f *fakePayrollService) Run(ctx context.Context, req payroll.RunRequest) (payroll.RunResponse, error) {
	return payroll.RunResponse{}, nil
}

func (f *fakePayrollService) GetWeek(ctx context.Context, weekStart string) (payroll.RunResponse, error) {
	return f.prev, nil
}

func (f *fakePayrollService) ListWeeks(ctx context.Context) ([]string, error) { return nil, nil }

func (f *fakePayrollService) ExportCSV(ctx context.Context, weekStart string) ([]byte, error) {
	return nil, nil
}

// Wednesday 2025-06-11: current week 2025-06-09, previous 2025-06-02.
func testService(t *testing.T, drivers []driver.Driver, shifts *fakeShiftService, earnings *fakeEarningsRepository) opsview.Service {
	t.Helper()

	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	cal, err := week.NewCalendar("America/Mexico_City", fixedClock{
		at: time.Date(2025, 6, 11, 12, 0, 0, 0, loc),
	})
	require.NoError(t, err)

	return opsview.NewService(
		&fakeDirectory{drivers: drivers},
		&fakeVehicleService{vehicles: []vehicle.VehicleResponse{{Plate: "ABC123", Status: "disponible"}}},
		shifts,
		&fakeTripService{},
		earnings,
		&fakePayrollService{},
		cal, payrule.DefaultRules(), nil,
	)
}

func TestOpsviewSnapshot_SummarizesCurrentWeek(t *testing.T) {
	d := driver.Driver{ID: uuid.New(), Name: "Alicia", EmployeeCode: "LAFA001"}
	shifts := &fakeShiftService{
		active: []shift.ShiftResponse{{DriverID: d.ID.String(), Plate: "ABC123"}},
		hours:  map[uuid.UUID]decimal.Decimal{d.ID: dec("35.5")},
	}
	earnings := &fakeEarningsRepository{byWeek: map[string][]trip.WeeklyEarnings{
		"2025-06-09": {{DriverID: d.ID, TripCount: 110, Revenue: dec("5400.00")}},
	}}

	snap, err := testService(t, []driver.Driver{d}, shifts, earnings).Snapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2025-06-09", snap.WeekStart)
	assert.Equal(t, "2025-06-02", snap.PrevWeekStart)
	require.Len(t, snap.Drivers, 1)

	row := snap.Drivers[0]
	assert.Equal(t, "actual", row.Week)
	assert.Equal(t, "35.5", row.Hours)
	assert.Equal(t, "5400.00", row.Revenue)
	assert.Equal(t, 110, row.TripCount)
	assert.False(t, row.MeetsGoal)
	assert.Equal(t, "4.5", row.MissingHours)
	assert.Equal(t, "600.00", row.MissingRev)
	assert.True(t, row.OnShift)
	assert.Len(t, snap.Vehicles, 1)
	assert.Len(t, snap.ActiveShifts, 1)
}

func TestOpsviewSnapshot_FallsBackToPreviousWeek(t *testing.T) {
	d := driver.Driver{ID: uuid.New(), Name: "Beto", EmployeeCode: "LAFA002"}
	shifts := &fakeShiftService{hours: map[uuid.UUID]decimal.Decimal{}}
	earnings := &fakeEarningsRepository{byWeek: map[string][]trip.WeeklyEarnings{
		"2025-06-02": {{DriverID: d.ID, TripCount: 140, Revenue: dec("7100.00")}},
	}}

	snap, err := testService(t, []driver.Driver{d}, shifts, earnings).Snapshot(context.Background())

	require.NoError(t, err)
	require.Len(t, snap.Drivers, 1)

	row := snap.Drivers[0]
	assert.Equal(t, "anterior", row.Week)
	assert.Equal(t, "7100.00", row.Revenue)
	assert.Equal(t, 140, row.TripCount)
	assert.False(t, row.OnShift)
}

func TestOpsviewSnapshot_GoalOverflowDoesNotGoNegative(t *testing.T) {
	d := driver.Driver{ID: uuid.New(), Name: "Carla"}
	shifts := &fakeShiftService{hours: map[uuid.UUID]decimal.Decimal{d.ID: dec("44")}}
	earnings := &fakeEarningsRepository{byWeek: map[string][]trip.WeeklyEarnings{
		"2025-06-09": {{DriverID: d.ID, TripCount: 150, Revenue: dec("6800.00")}},
	}}

	snap, err := testService(t, []driver.Driver{d}, shifts, earnings).Snapshot(context.Background())

	require.NoError(t, err)
	row := snap.Drivers[0]
	assert.True(t, row.MeetsGoal)
	assert.Equal(t, "0.0", row.MissingHours)
	assert.Equal(t, "0.00", row.MissingRev)
	// 2500 base + 100 bonus + 4 extra hours at 50.
	assert.Equal(t, "2800.00", row.Projected)
}

func TestOpsviewSnapshot_ServesFromCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	cached := opsview.Snapshot{WeekStart: "1999-01-04", GeneratedAt: "cached"}
	body, err := json.Marshal(cached)
	require.NoError(t, err)
	mock.ExpectGet("opsview:snapshot").SetVal(string(body))

	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	cal, err := week.NewCalendar("America/Mexico_City", fixedClock{
		at: time.Date(2025, 6, 11, 12, 0, 0, 0, loc),
	})
	require.NoError(t, err)

	svc := opsview.NewService(
		&fakeDirectory{}, &fakeVehicleService{}, &fakeShiftService{},
		&fakeTripService{}, &fakeEarningsRepository{}, &fakePayrollService{},
		cal, payrule.DefaultRules(), rdb,
	)

	snap, err := svc.Snapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1999-01-04", snap.WeekStart)
	assert.Equal(t, "cached", snap.GeneratedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
