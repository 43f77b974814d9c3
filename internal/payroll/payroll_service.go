package payroll

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/esnupy/lafa/internal/driver"
	"github.com/esnupy/lafa/internal/events"
	"github.com/esnupy/lafa/internal/messaging/kafka"
	payrollerrors "github.com/esnupy/lafa/internal/payroll/errors"
	"github.com/esnupy/lafa/internal/payrule"
	"github.com/esnupy/lafa/internal/shared/contextutil"
	"github.com/esnupy/lafa/internal/trip"
	"github.com/esnupy/lafa/internal/week"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// HoursSource yields summed closed-shift hours per driver for a week.
type HoursSource interface {
	HoursByDriver(ctx context.Context, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Run(ctx context.Context, req RunRequest) (RunResponse, error)
	GetWeek(ctx context.Context, weekStart string) (RunResponse, error)
	ListWeeks(ctx context.Context) ([]string, error)
	ExportCSV(ctx context.Context, weekStart string) ([]byte, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	drivers  driver.Directory
	earnings trip.EarningsRepository
	trips    trip.Repository
	hours    HoursSource
	outbox   kafka.OutboxRepository
	cal      *week.Calendar
	rules    payrule.Rules
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	drivers driver.Directory,
	earnings trip.EarningsRepository,
	trips trip.Repository,
	hours HoursSource,
	outbox kafka.OutboxRepository,
	cal *week.Calendar,
	rules payrule.Rules,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		drivers:  drivers,
		earnings: earnings,
		trips:    trips,
		hours:    hours,
		outbox:   outbox,
		cal:      cal,
		rules:    rules,
		logger:   l,
	}
}

// weekInputs is everything the rule engine needs for one week, fetched
// up front. The five loads are independent, so they run in parallel
// and join before any evaluation starts.
type weekInputs struct {
	drivers   []driver.Driver
	earnings  map[uuid.UUID]trip.WeeklyEarnings
	tripSums  map[uuid.UUID]trip.DriverRevenue
	hours     map[uuid.UUID]decimal.Decimal
	prevHours map[uuid.UUID]decimal.Decimal
}

// Run computes the payroll for every driver for the target week and
// stores the results, replacing any prior run for that week.
func (s *service) Run(ctx context.Context, req RunRequest) (RunResponse, error) {
	log := contextutil.Logger(ctx, s.logger)

	weekStart, err := s.resolveWeek(req.Week)
	if err != nil {
		return RunResponse{}, err
	}

	in, err := s.loadWeekInputs(ctx, weekStart)
	if err != nil {
		return RunResponse{}, err
	}

	runAt := time.Now().UTC()
	results := make([]PayrollResult, 0, len(in.drivers))
	for _, d := range in.drivers {
		revenue, tripCount := s.resolveRevenue(d.ID, in)
		hours := in.hours[d.ID].Round(2)

		breakdown := s.rules.Evaluate(payrule.Input{
			Hours:         hours,
			Revenue:       revenue,
			PrevWeekHours: in.prevHours[d.ID],
		})

		results = append(results, PayrollResult{
			ID:        uuid.New(),
			DriverID:  d.ID,
			WeekStart: weekStart,
			Hours:     hours,
			TripCount: tripCount,
			Revenue:   revenue,
			Base:      breakdown.Base,
			Bonus:     breakdown.Bonus,
			Overtime:  breakdown.Overtime,
			Support:   breakdown.Support,
			Total:     breakdown.Total,
			RunAt:     runAt,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).UpsertBatch(ctx, results); err != nil {
			return err
		}
		return s.enqueueCompletedEvent(ctx, tx, weekStart, len(results))
	})
	if err != nil {
		log.Error("payroll run failed",
			zap.String("week_start", week.FormatDate(weekStart)),
			zap.Error(err),
		)
		return RunResponse{}, err
	}

	log.Info("payroll run completed",
		zap.String("week_start", week.FormatDate(weekStart)),
		zap.Int("drivers", len(results)),
	)
	return s.buildRunResponse(weekStart, results, in.drivers), nil
}

func (s *service) loadWeekInputs(ctx context.Context, weekStart time.Time) (weekInputs, error) {
	prevStart := week.Prev(weekStart)
	weekEnd := week.Next(weekStart)

	var in weekInputs
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.drivers.ListAll(gctx)
		in.drivers = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.earnings.FindByWeek(gctx, weekStart)
		if err != nil {
			return err
		}
		in.earnings = make(map[uuid.UUID]trip.WeeklyEarnings, len(rows))
		for _, e := range rows {
			in.earnings[e.DriverID] = e
		}
		return nil
	})
	g.Go(func() error {
		rows, err := s.trips.SumRevenueByWeek(gctx, weekStart)
		if err != nil {
			return err
		}
		in.tripSums = make(map[uuid.UUID]trip.DriverRevenue, len(rows))
		for _, r := range rows {
			in.tripSums[r.DriverID] = r
		}
		return nil
	})
	g.Go(func() error {
		m, err := s.hours.HoursByDriver(gctx, weekStart, weekEnd)
		in.hours = m
		return err
	})
	g.Go(func() error {
		m, err := s.hours.HoursByDriver(gctx, prevStart, weekStart)
		in.prevHours = m
		return err
	})

	if err := g.Wait(); err != nil {
		return weekInputs{}, err
	}
	return in, nil
}

// resolveRevenue applies the fallback precedence: the imported weekly
// aggregate when present and non-zero, else the recomputed trip sum,
// else zero. A zero aggregate falls through on purpose; the import
// path always stores the real sum, so zero means nothing useful was
// imported for that key.
func (s *service) resolveRevenue(driverID uuid.UUID, in weekInputs) (decimal.Decimal, int) {
	if e, ok := in.earnings[driverID]; ok && !e.Revenue.IsZero() {
		return e.Revenue.Round(2), e.TripCount
	}
	if r, ok := in.tripSums[driverID]; ok {
		return r.Revenue.Round(2), r.Trips
	}
	return decimal.Zero.Round(2), 0
}

func (s *service) enqueueCompletedEvent(ctx context.Context, tx *gorm.DB, weekStart time.Time, drivers int) error {
	payload, err := json.Marshal(events.PayrollRunCompletedEvent{
		EventType:  "payroll.run.completed",
		WeekStart:  week.FormatDate(weekStart),
		Drivers:    drivers,
		RunBy:      contextutil.GetUserID(ctx),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "payroll_run",
		AggregateID:   week.FormatDate(weekStart),
		EventType:     "payroll.run.completed",
		Topic:         events.PayrollRunCompletedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetWeek(ctx context.Context, weekStart string) (RunResponse, error) {
	ws, err := s.resolveWeek(weekStart)
	if err != nil {
		return RunResponse{}, err
	}
	rows, err := s.repo.FindByWeek(ctx, ws)
	if err != nil {
		return RunResponse{}, err
	}

	resp := RunResponse{
		WeekStart: week.FormatDate(ws),
		Drivers:   len(rows),
		Results:   make([]ResultResponse, len(rows)),
	}
	for i, r := range rows {
		resp.Results[i] = s.mapResult(r)
	}
	sortResults(resp.Results)
	return resp, nil
}

func (s *service) ListWeeks(ctx context.Context) ([]string, error) {
	weeks, err := s.repo.ListWeeks(ctx, 52)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(weeks))
	for i, w := range weeks {
		out[i] = week.FormatDate(w)
	}
	return out, nil
}

// ExportCSV renders the stored run for a week in the report format the
// office expects.
func (s *service) ExportCSV(ctx context.Context, weekStart string) ([]byte, error) {
	ws, err := s.resolveWeek(weekStart)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.FindByWeek(ctx, ws)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, payrollerrors.ErrNoResultsForWeek
	}

	sort.Slice(rows, func(i, j int) bool {
		return driverName(rows[i]) < driverName(rows[j])
	})
	return renderCSV(rows), nil
}

func (s *service) resolveWeek(raw string) (time.Time, error) {
	if raw == "" {
		return s.cal.CurrentWeekStart(), nil
	}
	d, err := week.ParseDate(raw)
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidWeek
	}
	return s.cal.StartOfWeekDate(d), nil
}

func (s *service) buildRunResponse(weekStart time.Time, results []PayrollResult, drivers []driver.Driver) RunResponse {
	names := make(map[uuid.UUID]driver.Driver, len(drivers))
	for _, d := range drivers {
		names[d.ID] = d
	}

	resp := RunResponse{
		WeekStart: week.FormatDate(weekStart),
		Drivers:   len(results),
		Results:   make([]ResultResponse, len(results)),
	}
	for i, r := range results {
		if d, ok := names[r.DriverID]; ok {
			r.Driver = &d
		}
		resp.Results[i] = s.mapResult(r)
	}
	sortResults(resp.Results)
	return resp
}

func (s *service) mapResult(r PayrollResult) ResultResponse {
	resp := ResultResponse{
		ID:        r.ID.String(),
		DriverID:  r.DriverID.String(),
		WeekStart: week.FormatDate(r.WeekStart),
		Hours:     r.Hours.StringFixed(1),
		TripCount: r.TripCount,
		Revenue:   r.Revenue.StringFixed(2),
		Base:      r.Base.StringFixed(2),
		Bonus:     r.Bonus.StringFixed(2),
		Overtime:  r.Overtime.StringFixed(2),
		Support:   r.Support.StringFixed(2),
		Total:     r.Total.StringFixed(2),
		MeetsGoal: s.rules.MeetsGoal(r.Hours, r.Revenue),
	}
	if r.Driver != nil {
		resp.DriverName = r.Driver.Name
		resp.EmployeeCode = r.Driver.EmployeeCode
	}
	return resp
}

func sortResults(rows []ResultResponse) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DriverName != rows[j].DriverName {
			return rows[i].DriverName < rows[j].DriverName
		}
		return rows[i].DriverID < rows[j].DriverID
	})
}

func driverName(r PayrollResult) string {
	if r.Driver != nil {
		return r.Driver.Name
	}
	return r.DriverID.String()
}
