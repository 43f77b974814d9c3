package shift

import (
	"context"
	"errors"
	"time"

	"github.com/esnupy/lafa/internal/shared/contextutil"
	shifterrors "github.com/esnupy/lafa/internal/shift/errors"
	"github.com/esnupy/lafa/internal/vehicle"
	vehicleerrors "github.com/esnupy/lafa/internal/vehicle/errors"
	"github.com/esnupy/lafa/internal/week"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=shift_service.go -destination=mock/shift_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, supervisorID string, req CheckInRequest) (ShiftResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (ShiftResponse, error)
	GetActive(ctx context.Context) ([]ShiftResponse, error)
	GetRecent(ctx context.Context, limit int) ([]ShiftResponse, error)

	// HoursByDriver sums closed-shift hours per driver for check-ins in
	// [from, to). Used by the payroll run and the operations snapshot.
	HoursByDriver(ctx context.Context, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	vehicles vehicle.Repository
	clock    week.Clock
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, vehicles vehicle.Repository, clock week.Clock, logger ...*zap.Logger) Service {
	l := zap.L().Named("shift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.service")
	}
	if clock == nil {
		clock = week.SystemClock()
	}
	return &service{db: db, repo: repo, vehicles: vehicles, clock: clock, logger: l}
}

// CheckIn opens a shift. Inside one transaction: the driver must not
// have an open shift, and the vehicle must transition
// disponible -> asignado; a concurrent check-in loses on the
// conditional status update, not on a stale read.
func (s *service) CheckIn(ctx context.Context, supervisorID string, req CheckInRequest) (ShiftResponse, error) {
	log := contextutil.Logger(ctx, s.logger)

	supID, err := uuid.Parse(supervisorID)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidShiftID
	}
	driverID := uuid.MustParse(req.DriverID)
	vehicleID := uuid.MustParse(req.VehicleID)

	var created Shift
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		vtx := s.vehicles.WithTx(tx)

		_, err := qtx.FindOpenByDriver(ctx, req.DriverID)
		if err == nil {
			return shifterrors.ErrDriverHasOpenShift
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		rows, err := vtx.UpdateStatusIf(ctx, req.VehicleID, vehicle.StatusAvailable, vehicle.StatusAssigned)
		if err != nil {
			return err
		}
		if rows == 0 {
			return vehicleerrors.ErrVehicleNotAvailable
		}

		created = Shift{
			ID:           uuid.New(),
			DriverID:     driverID,
			VehicleID:    vehicleID,
			SupervisorID: supID,
			CheckIn:      s.clock.Now(),
		}
		return qtx.Create(ctx, &created)
	})
	if err != nil {
		log.Warn("check-in failed",
			zap.String("driver_id", req.DriverID),
			zap.String("vehicle_id", req.VehicleID),
			zap.Error(err),
		)
		return ShiftResponse{}, err
	}

	log.Info("shift opened",
		zap.String("shift_id", created.ID.String()),
		zap.String("driver_id", req.DriverID),
		zap.String("vehicle_id", req.VehicleID),
	)
	return mapToResponse(created), nil
}

// CheckOut closes the shift, computes hours worked and frees the
// vehicle, all in one transaction.
func (s *service) CheckOut(ctx context.Context, req CheckOutRequest) (ShiftResponse, error) {
	log := contextutil.Logger(ctx, s.logger)

	var closed Shift
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		vtx := s.vehicles.WithTx(tx)

		row, err := qtx.FindByID(ctx, req.ShiftID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shifterrors.ErrShiftNotFound
			}
			return err
		}
		if row.CheckOut != nil {
			return shifterrors.ErrShiftAlreadyClosed
		}

		now := s.clock.Now()
		hours := decimal.NewFromFloat(now.Sub(row.CheckIn).Hours()).Round(2)
		row.CheckOut = &now
		row.HoursWorked = &hours

		if err := qtx.Update(ctx, row); err != nil {
			return err
		}
		if err := vtx.SetStatus(ctx, row.VehicleID.String(), vehicle.StatusAvailable); err != nil {
			return err
		}
		closed = *row
		return nil
	})
	if err != nil {
		log.Warn("check-out failed", zap.String("shift_id", req.ShiftID), zap.Error(err))
		return ShiftResponse{}, err
	}

	log.Info("shift closed",
		zap.String("shift_id", closed.ID.String()),
		zap.String("hours", closed.HoursWorked.String()),
	)
	return mapToResponse(closed), nil
}

func (s *service) GetActive(ctx context.Context) ([]ShiftResponse, error) {
	rows, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetRecent(ctx context.Context, limit int) ([]ShiftResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func (s *service) HoursByDriver(ctx context.Context, from, to time.Time) (map[uuid.UUID]decimal.Decimal, error) {
	rows, err := s.repo.SumHoursByDriver(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.DriverID] = row.Hours.Round(2)
	}
	return out, nil
}

func mapToResponse(s Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:        s.ID.String(),
		DriverID:  s.DriverID.String(),
		VehicleID: s.VehicleID.String(),
		CheckIn:   s.CheckIn.Format(time.RFC3339),
	}
	if s.Driver != nil {
		resp.DriverName = s.Driver.Name
	}
	if s.Vehicle != nil {
		resp.Plate = s.Vehicle.Plate
	}
	if s.CheckOut != nil {
		v := s.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	if s.HoursWorked != nil {
		v := s.HoursWorked.StringFixed(2)
		resp.HoursWorked = &v
	}
	return resp
}

func mapToListResponse(rows []Shift) []ShiftResponse {
	res := make([]ShiftResponse, len(rows))
	for i, row := range rows {
		res[i] = mapToResponse(row)
	}
	return res
}
