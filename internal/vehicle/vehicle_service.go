package vehicle

import (
	"context"
	"strings"
	"time"

	"github.com/esnupy/lafa/internal/shared/contextutil"
	vehicleerrors "github.com/esnupy/lafa/internal/vehicle/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=vehicle_service.go -destination=mock/vehicle_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateVehicleRequest) (VehicleResponse, error)
	GetAll(ctx context.Context) ([]VehicleResponse, error)
	GetByID(ctx context.Context, id string) (VehicleResponse, error)
	Update(ctx context.Context, id string, req UpdateVehicleRequest) (VehicleResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("vehicle.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vehicle.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateVehicleRequest) (VehicleResponse, error) {
	log := contextutil.Logger(ctx, s.logger)

	v := &Vehicle{
		ID:                uuid.New(),
		Plate:             normalizePlate(req.Plate),
		Model:             strings.TrimSpace(req.Model),
		Status:            req.Status,
		AutonomyKM:        req.AutonomyKM,
		FastCharge:        req.FastCharge,
		BatteryWarrantyKM: req.BatteryWarrantyKM,
		DidiCategory:      req.DidiCategory,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		log.Warn("create vehicle failed", zap.String("plate", v.Plate), zap.Error(err))
		return VehicleResponse{}, mapRepositoryError(err)
	}

	log.Info("vehicle created", zap.String("vehicle_id", v.ID.String()), zap.String("plate", v.Plate))
	return mapToResponse(*v), nil
}

func (s *service) GetAll(ctx context.Context) ([]VehicleResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	res := make([]VehicleResponse, len(rows))
	for i, v := range rows {
		res[i] = mapToResponse(v)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (VehicleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return VehicleResponse{}, vehicleerrors.ErrInvalidVehicleID
	}
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return VehicleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*v), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateVehicleRequest) (VehicleResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return VehicleResponse{}, vehicleerrors.ErrInvalidVehicleID
	}

	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return VehicleResponse{}, mapRepositoryError(err)
	}

	if req.Plate != nil && *req.Plate != "" {
		v.Plate = normalizePlate(*req.Plate)
	}
	if req.Model != nil && *req.Model != "" {
		v.Model = strings.TrimSpace(*req.Model)
	}
	if req.Status != nil && ValidStatus(*req.Status) {
		v.Status = *req.Status
	}
	if req.AutonomyKM != nil {
		v.AutonomyKM = req.AutonomyKM
	}
	if req.FastCharge != nil {
		v.FastCharge = req.FastCharge
	}
	if req.BatteryWarrantyKM != nil {
		v.BatteryWarrantyKM = req.BatteryWarrantyKM
	}
	if req.DidiCategory != nil {
		v.DidiCategory = req.DidiCategory
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return VehicleResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*v), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return vehicleerrors.ErrInvalidVehicleID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func mapToResponse(v Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:                v.ID.String(),
		Plate:             v.Plate,
		Model:             v.Model,
		Status:            v.Status,
		AutonomyKM:        v.AutonomyKM,
		FastCharge:        v.FastCharge,
		BatteryWarrantyKM: v.BatteryWarrantyKM,
		DidiCategory:      v.DidiCategory,
		CreatedAt:         v.CreatedAt.Format(time.RFC3339),
	}
}
