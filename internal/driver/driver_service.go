package driver

import (
	"context"
	"strings"
	"time"

	drivererrors "github.com/esnupy/lafa/internal/driver/errors"
	"github.com/esnupy/lafa/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=driver_service.go -destination=mock/driver_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDriverRequest) (DriverResponse, error)
	GetAll(ctx context.Context) ([]DriverResponse, error)
	GetByID(ctx context.Context, id string) (DriverResponse, error)
	Update(ctx context.Context, id string, req UpdateDriverRequest) (DriverResponse, error)
	Delete(ctx context.Context, id string) error

	// Directory is the lookup surface the ingestion pipeline consumes.
	Directory() Directory
}

// Directory resolves external platform ids to internal drivers.
type Directory interface {
	ResolvePlatformIDs(ctx context.Context, platformIDs []int64) (map[int64]uuid.UUID, error)
	ListAll(ctx context.Context) ([]Driver, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("driver.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("driver.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDriverRequest) (DriverResponse, error) {
	log := contextutil.Logger(ctx, s.logger)

	d := &Driver{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		EmployeeCode: normalizeEmployeeCode(req.EmployeeCode),
		PlatformID:   req.PlatformID,
	}
	if d.Name == "" || d.EmployeeCode == "" {
		return DriverResponse{}, drivererrors.ErrInvalidDriverID
	}

	if err := s.repo.Create(ctx, d); err != nil {
		log.Warn("create driver failed", zap.String("employee_id", d.EmployeeCode), zap.Error(err))
		return DriverResponse{}, mapRepositoryError(err)
	}

	log.Info("driver created", zap.String("driver_id", d.ID.String()), zap.String("employee_id", d.EmployeeCode))
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context) ([]DriverResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	res := make([]DriverResponse, len(rows))
	for i, d := range rows {
		res[i] = mapToResponse(d)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DriverResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DriverResponse{}, drivererrors.ErrInvalidDriverID
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DriverResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDriverRequest) (DriverResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DriverResponse{}, drivererrors.ErrInvalidDriverID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DriverResponse{}, mapRepositoryError(err)
	}

	d.Name = strings.TrimSpace(req.Name)
	d.EmployeeCode = normalizeEmployeeCode(req.EmployeeCode)
	d.PlatformID = req.PlatformID

	if err := s.repo.Update(ctx, d); err != nil {
		return DriverResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return drivererrors.ErrInvalidDriverID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) Directory() Directory {
	return &directory{repo: s.repo}
}

type directory struct {
	repo Repository
}

func (d *directory) ResolvePlatformIDs(ctx context.Context, platformIDs []int64) (map[int64]uuid.UUID, error) {
	if len(platformIDs) == 0 {
		return map[int64]uuid.UUID{}, nil
	}
	rows, err := d.repo.FindByPlatformIDs(ctx, platformIDs)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	out := make(map[int64]uuid.UUID, len(rows))
	for _, row := range rows {
		if row.PlatformID != nil {
			out[*row.PlatformID] = row.ID
		}
	}
	return out, nil
}

func (d *directory) ListAll(ctx context.Context) ([]Driver, error) {
	return d.repo.FindAll(ctx)
}

// normalizeEmployeeCode keeps the internal code comparable: trimmed,
// uppercase.
func normalizeEmployeeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func mapToResponse(d Driver) DriverResponse {
	return DriverResponse{
		ID:           d.ID.String(),
		Name:         d.Name,
		EmployeeCode: d.EmployeeCode,
		PlatformID:   d.PlatformID,
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
	}
}
