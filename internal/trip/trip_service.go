package trip

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/esnupy/lafa/internal/driver"
	"github.com/esnupy/lafa/internal/events"
	"github.com/esnupy/lafa/internal/messaging/kafka"
	"github.com/esnupy/lafa/internal/shared/contextutil"
	triperrors "github.com/esnupy/lafa/internal/trip/errors"
	"github.com/esnupy/lafa/internal/week"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=trip_service.go -destination=mock/trip_service_mock.go -package=mock
type Service interface {
	Import(ctx context.Context, req ImportRequest) (ImportResponse, error)
	GetEarningsByWeek(ctx context.Context, weekStart string) ([]EarningsResponse, error)
	GetRecentTrips(ctx context.Context, days, limit int) ([]TripResponse, error)
	DeleteEarnings(ctx context.Context, driverID, weekStart string) error
}

type weekKey struct {
	driverID  uuid.UUID
	weekStart time.Time
}

type service struct {
	db         *gorm.DB
	trips      Repository
	earnings   EarningsRepository
	outbox     kafka.OutboxRepository
	directory  driver.Directory
	normalizer *Normalizer
	cal        *week.Calendar
	logger     *zap.Logger
}

func NewService(
	db *gorm.DB,
	trips Repository,
	earnings EarningsRepository,
	outbox kafka.OutboxRepository,
	directory driver.Directory,
	cal *week.Calendar,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("trip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("trip.service")
	}
	return &service{
		db:         db,
		trips:      trips,
		earnings:   earnings,
		outbox:     outbox,
		directory:  directory,
		normalizer: NewNormalizer(cal),
		cal:        cal,
		logger:     l,
	}
}

// Import runs the whole ingestion pipeline: normalize, dedupe by trip
// id (last occurrence wins), resolve driver ids all-or-nothing, upsert
// trips, then rebuild the weekly aggregates the batch touched.
//
// Trips and aggregates commit in separate transactions on purpose. If
// the aggregate rebuild fails the trips are already durable, and the
// caller gets a distinct error telling it to retry the import rather
// than re-upload the file; the rebuild is a full replace, so the retry
// repairs state.
func (s *service) Import(ctx context.Context, req ImportRequest) (ImportResponse, error) {
	log := contextutil.Logger(ctx, s.logger)

	normalized, filtered := s.normalizer.Normalize(req.Rows)
	if len(normalized) == 0 {
		return ImportResponse{}, triperrors.ErrEmptyBatch
	}
	deduped := dedupeLastWins(normalized)

	byDriver, err := s.resolveDrivers(ctx, deduped)
	if err != nil {
		log.Warn("import rejected", zap.Int("rows", len(req.Rows)), zap.Error(err))
		return ImportResponse{}, err
	}

	rows := make([]Trip, len(deduped))
	touched := make(map[weekKey]struct{})
	for i, n := range deduped {
		driverID := byDriver[n.PlatformDriverID]
		rows[i] = Trip{
			ID:               uuid.New(),
			ExternalTripID:   n.ExternalTripID,
			PlatformDriverID: n.PlatformDriverID,
			DriverID:         driverID,
			TripDate:         n.Date,
			StartTime:        n.StartTime,
			EndTime:          n.EndTime,
			Cost:             n.Cost,
			Tip:              n.Tip,
			PickupLat:        n.PickupLat,
			PickupLng:        n.PickupLng,
			WeekStart:        n.WeekStart,
		}
		touched[weekKey{driverID: driverID, weekStart: n.WeekStart}] = struct{}{}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.trips.WithTx(tx).UpsertBatch(ctx, rows)
	})
	if err != nil {
		log.Error("trip upsert failed", zap.Int("trips", len(rows)), zap.Error(err))
		return ImportResponse{}, err
	}

	weeks, err := s.rebuildEarnings(ctx, touched)
	if err != nil {
		log.Error("earnings rebuild failed after trips were saved",
			zap.Int("trips", len(rows)),
			zap.Error(err),
		)
		return ImportResponse{}, triperrors.PartialPersistence(err)
	}

	resp := ImportResponse{
		RowsReceived: len(req.Rows),
		RowsFiltered: filtered,
		TripsSaved:   len(rows),
		Drivers:      len(byDriver),
		Weeks:        weeks,
	}
	log.Info("trips imported",
		zap.Int("rows_received", resp.RowsReceived),
		zap.Int("rows_filtered", resp.RowsFiltered),
		zap.Int("trips_saved", resp.TripsSaved),
		zap.Int("drivers", resp.Drivers),
		zap.Strings("weeks", resp.Weeks),
	)
	return resp, nil
}

// resolveDrivers maps every external id in the batch, rejecting the
// whole batch when any id is unknown.
func (s *service) resolveDrivers(ctx context.Context, rows []NormalizedRow) (map[int64]uuid.UUID, error) {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, n := range rows {
		if _, ok := seen[n.PlatformDriverID]; ok {
			continue
		}
		seen[n.PlatformDriverID] = struct{}{}
		ids = append(ids, n.PlatformDriverID)
	}

	resolved, err := s.directory.ResolvePlatformIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var unmapped []int64
	for _, id := range ids {
		if _, ok := resolved[id]; !ok {
			unmapped = append(unmapped, id)
		}
	}
	if len(unmapped) > 0 {
		sort.Slice(unmapped, func(i, j int) bool { return unmapped[i] < unmapped[j] })
		return nil, triperrors.UnmappedDrivers(unmapped)
	}
	return resolved, nil
}

// rebuildEarnings recomputes every (driver, week) aggregate the batch
// touched from all stored trips for that key, and records the imported
// event on the outbox inside the same transaction.
func (s *service) rebuildEarnings(ctx context.Context, touched map[weekKey]struct{}) ([]string, error) {
	keys := make([]weekKey, 0, len(touched))
	for k := range touched {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].weekStart.Equal(keys[j].weekStart) {
			return keys[i].weekStart.Before(keys[j].weekStart)
		}
		return keys[i].driverID.String() < keys[j].driverID.String()
	})

	weekSet := make(map[string]struct{})
	drivers := make(map[uuid.UUID]struct{})

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tripsTx := s.trips.WithTx(tx)
		earningsTx := s.earnings.WithTx(tx)

		for _, key := range keys {
			stored, err := tripsTx.FindByDriverWeek(ctx, key.driverID, key.weekStart)
			if err != nil {
				return err
			}

			revenue := decimal.Zero
			for _, t := range stored {
				revenue = revenue.Add(t.Cost).Add(t.Tip)
			}
			raw, err := json.Marshal(rawSnapshot(stored))
			if err != nil {
				return err
			}

			agg := WeeklyEarnings{
				ID:         uuid.New(),
				DriverID:   key.driverID,
				WeekStart:  key.weekStart,
				TripCount:  len(stored),
				Revenue:    revenue.Round(2),
				Raw:        raw,
				ImportedAt: time.Now().UTC(),
			}
			if err := earningsTx.Upsert(ctx, &agg); err != nil {
				return err
			}

			weekSet[week.FormatDate(key.weekStart)] = struct{}{}
			drivers[key.driverID] = struct{}{}
		}

		return s.enqueueImportedEvent(ctx, tx, len(keys), drivers, weekSet)
	})
	if err != nil {
		return nil, err
	}

	weeks := make([]string, 0, len(weekSet))
	for w := range weekSet {
		weeks = append(weeks, w)
	}
	sort.Strings(weeks)
	return weeks, nil
}

func (s *service) enqueueImportedEvent(ctx context.Context, tx *gorm.DB, batchSize int, drivers map[uuid.UUID]struct{}, weekSet map[string]struct{}) error {
	weeks := make([]string, 0, len(weekSet))
	for w := range weekSet {
		weeks = append(weeks, w)
	}
	sort.Strings(weeks)

	payload, err := json.Marshal(events.TripsImportedEvent{
		EventType:  "trips.imported",
		BatchSize:  batchSize,
		Drivers:    len(drivers),
		Weeks:      weeks,
		ImportedBy: contextutil.GetUserID(ctx),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "trip_batch",
		AggregateID:   uuid.NewString(),
		EventType:     "trips.imported",
		Topic:         events.TripsImportedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetEarningsByWeek(ctx context.Context, weekStart string) ([]EarningsResponse, error) {
	ws, err := week.ParseDate(weekStart)
	if err != nil {
		return nil, triperrors.ErrInvalidWeek
	}
	rows, err := s.earnings.FindByWeek(ctx, ws)
	if err != nil {
		return nil, err
	}

	out := make([]EarningsResponse, len(rows))
	for i, e := range rows {
		out[i] = EarningsResponse{
			ID:         e.ID.String(),
			DriverID:   e.DriverID.String(),
			WeekStart:  week.FormatDate(e.WeekStart),
			TripCount:  e.TripCount,
			Revenue:    e.Revenue.StringFixed(2),
			ImportedAt: e.ImportedAt.Format(time.RFC3339),
		}
	}
	return out, nil
}

func (s *service) GetRecentTrips(ctx context.Context, days, limit int) ([]TripResponse, error) {
	if days <= 0 {
		days = 14
	}
	if limit <= 0 || limit > 1000 {
		limit = 500
	}
	rows, err := s.trips.FindSince(ctx, s.cal.DaysAgo(days), limit)
	if err != nil {
		return nil, err
	}

	out := make([]TripResponse, len(rows))
	for i, t := range rows {
		out[i] = mapTripResponse(t)
	}
	return out, nil
}

// DeleteEarnings removes a (driver, week) aggregate together with the
// trips that produced it.
func (s *service) DeleteEarnings(ctx context.Context, driverID, weekStart string) error {
	log := contextutil.Logger(ctx, s.logger)

	id, err := uuid.Parse(driverID)
	if err != nil {
		return triperrors.ErrEarningsNotFound
	}
	ws, err := week.ParseDate(weekStart)
	if err != nil {
		return triperrors.ErrInvalidWeek
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		earningsTx := s.earnings.WithTx(tx)
		if _, err := earningsTx.FindByDriverWeek(ctx, id, ws); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return triperrors.ErrEarningsNotFound
			}
			return err
		}
		if err := earningsTx.Delete(ctx, id, ws); err != nil {
			return err
		}
		return s.trips.WithTx(tx).DeleteByDriverWeek(ctx, id, ws)
	})
	if err != nil {
		return err
	}

	log.Info("weekly earnings deleted",
		zap.String("driver_id", driverID),
		zap.String("week_start", weekStart),
	)
	return nil
}

// rawSnapshot is the audit copy stored on the aggregate.
func rawSnapshot(rows []Trip) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, t := range rows {
		out[i] = map[string]any{
			"trip_id":    t.ExternalTripID,
			"date":       week.FormatDate(t.TripDate),
			"start_time": t.StartTime,
			"end_time":   t.EndTime,
			"cost":       t.Cost.StringFixed(2),
			"tip":        t.Tip.StringFixed(2),
		}
	}
	return out
}

func dedupeLastWins(rows []NormalizedRow) []NormalizedRow {
	last := make(map[string]int, len(rows))
	for i, n := range rows {
		last[n.ExternalTripID] = i
	}
	out := make([]NormalizedRow, 0, len(last))
	for i, n := range rows {
		if last[n.ExternalTripID] == i {
			out = append(out, n)
		}
	}
	return out
}

func mapTripResponse(t Trip) TripResponse {
	return TripResponse{
		ID:        t.ID.String(),
		TripID:    t.ExternalTripID,
		DriverID:  t.DriverID.String(),
		Date:      week.FormatDate(t.TripDate),
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		Cost:      t.Cost.StringFixed(2),
		Tip:       t.Tip.StringFixed(2),
		WeekStart: week.FormatDate(t.WeekStart),
		PickupLat: t.PickupLat,
		PickupLng: t.PickupLng,
	}
}
