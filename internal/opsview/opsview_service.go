// Package opsview assembles the operations snapshot served on the
// dashboard and fed to the chat assistant.
package opsview

import (
	"context"
	"encoding/json"
	"time"

	"github.com/esnupy/lafa/internal/driver"
	"github.com/esnupy/lafa/internal/payroll"
	"github.com/esnupy/lafa/internal/payrule"
	"github.com/esnupy/lafa/internal/shift"
	"github.com/esnupy/lafa/internal/trip"
	"github.com/esnupy/lafa/internal/vehicle"
	"github.com/esnupy/lafa/internal/week"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	cacheKey = "opsview:snapshot"
	cacheTTL = 30 * time.Second
)

type Service interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

type service struct {
	drivers  driver.Directory
	vehicles vehicle.Service
	shifts   shift.Service
	trips    trip.Service
	earnings trip.EarningsRepository
	payrolls payroll.Service
	cal      *week.Calendar
	rules    payrule.Rules
	rdb      *redis.Client
	group    singleflight.Group
	logger   *zap.Logger
}

func NewService(
	drivers driver.Directory,
	vehicles vehicle.Service,
	shifts shift.Service,
	trips trip.Service,
	earnings trip.EarningsRepository,
	payrolls payroll.Service,
	cal *week.Calendar,
	rules payrule.Rules,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("opsview.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("opsview.service")
	}
	return &service{
		drivers:  drivers,
		vehicles: vehicles,
		shifts:   shifts,
		trips:    trips,
		earnings: earnings,
		payrolls: payrolls,
		cal:      cal,
		rules:    rules,
		rdb:      rdb,
		logger:   l,
	}
}

// Snapshot serves from the short redis cache when it can; concurrent
// misses collapse into a single rebuild.
func (s *service) Snapshot(ctx context.Context) (Snapshot, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var snap Snapshot
			if json.Unmarshal([]byte(cached), &snap) == nil {
				return snap, nil
			}
		}
	}

	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		snap, err := s.build(ctx)
		if err != nil {
			return Snapshot{}, err
		}
		if s.rdb != nil {
			if body, err := json.Marshal(snap); err == nil {
				s.rdb.Set(ctx, cacheKey, body, cacheTTL)
			}
		}
		return snap, nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return v.(Snapshot), nil
}

type snapshotInputs struct {
	drivers      []driver.Driver
	vehicles     []vehicle.VehicleResponse
	activeShifts []shift.ShiftResponse
	recentTrips  []trip.TripResponse
	hours        map[uuid.UUID]decimal.Decimal
	earnings     map[uuid.UUID]trip.WeeklyEarnings
	prevEarnings map[uuid.UUID]trip.WeeklyEarnings
	prevPayroll  payroll.RunResponse
}

func (s *service) build(ctx context.Context) (Snapshot, error) {
	weekStart := s.cal.CurrentWeekStart()
	prevStart := week.Prev(weekStart)
	weekEnd := week.Next(weekStart)

	var in snapshotInputs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.drivers.ListAll(gctx)
		in.drivers = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.vehicles.GetAll(gctx)
		in.vehicles = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.shifts.GetActive(gctx)
		in.activeShifts = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.trips.GetRecentTrips(gctx, 14, 500)
		in.recentTrips = rows
		return err
	})
	g.Go(func() error {
		m, err := s.shifts.HoursByDriver(gctx, weekStart, weekEnd)
		in.hours = m
		return err
	})
	g.Go(func() error {
		var err error
		in.earnings, err = s.earningsMap(gctx, weekStart)
		return err
	})
	g.Go(func() error {
		var err error
		in.prevEarnings, err = s.earningsMap(gctx, prevStart)
		return err
	})
	g.Go(func() error {
		resp, err := s.payrolls.GetWeek(gctx, week.FormatDate(prevStart))
		in.prevPayroll = resp
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	onShift := make(map[string]bool, len(in.activeShifts))
	for _, sh := range in.activeShifts {
		onShift[sh.DriverID] = true
	}

	summaries := make([]DriverSummary, len(in.drivers))
	for i, d := range in.drivers {
		summaries[i] = s.summarize(d, in, onShift[d.ID.String()])
	}

	return Snapshot{
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		WeekStart:     week.FormatDate(weekStart),
		PrevWeekStart: week.FormatDate(prevStart),
		Drivers:       summaries,
		Vehicles:      in.vehicles,
		ActiveShifts:  in.activeShifts,
		RecentTrips:   in.recentTrips,
		PrevPayroll:   in.prevPayroll.Results,
	}, nil
}

func (s *service) earningsMap(ctx context.Context, weekStart time.Time) (map[uuid.UUID]trip.WeeklyEarnings, error) {
	rows, err := s.earnings.FindByWeek(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]trip.WeeklyEarnings, len(rows))
	for _, e := range rows {
		out[e.DriverID] = e
	}
	return out, nil
}

// summarize builds one driver's week line. A week with no revenue yet
// falls back to the previous week so the dashboard shows the last
// meaningful numbers early in the week.
func (s *service) summarize(d driver.Driver, in snapshotInputs, onShift bool) DriverSummary {
	hours := in.hours[d.ID]
	weekLabel := "actual"

	revenue := decimal.Zero
	tripCount := 0
	if e, ok := in.earnings[d.ID]; ok && !e.Revenue.IsZero() {
		revenue = e.Revenue
		tripCount = e.TripCount
	} else if e, ok := in.prevEarnings[d.ID]; ok && !e.Revenue.IsZero() {
		revenue = e.Revenue
		tripCount = e.TripCount
		weekLabel = "anterior"
	}

	missingHours := s.rules.HoursThreshold.Sub(hours)
	if missingHours.IsNegative() {
		missingHours = decimal.Zero
	}
	missingRev := s.rules.RevenueThreshold.Sub(revenue)
	if missingRev.IsNegative() {
		missingRev = decimal.Zero
	}

	projected := s.rules.Evaluate(payrule.Input{
		Hours:   hours,
		Revenue: revenue,
		// Projection assumes the gate was met; the real run uses the
		// stored prior week.
		PrevWeekHours: s.rules.HoursThreshold,
	})

	return DriverSummary{
		DriverID:     d.ID.String(),
		Name:         d.Name,
		EmployeeCode: d.EmployeeCode,
		Week:         weekLabel,
		Hours:        hours.StringFixed(1),
		TripCount:    tripCount,
		Revenue:      revenue.StringFixed(2),
		MeetsGoal:    s.rules.MeetsGoal(hours, revenue),
		MissingHours: missingHours.StringFixed(1),
		MissingRev:   missingRev.StringFixed(2),
		Projected:    projected.Total.StringFixed(2),
		OnShift:      onShift,
	}
}
