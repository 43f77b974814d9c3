package shift

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=shift_repo.go -destination=mock/shift_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, s *Shift) error
	FindByID(ctx context.Context, id string) (*Shift, error)
	FindOpenByDriver(ctx context.Context, driverID string) (*Shift, error)
	FindActive(ctx context.Context) ([]Shift, error)
	FindRecent(ctx context.Context, limit int) ([]Shift, error)
	Update(ctx context.Context, s *Shift) error
	// SumHoursByDriver aggregates closed-shift hours grouped by driver,
	// for shifts whose check_in falls in [from, to).
	SumHoursByDriver(ctx context.Context, from, to time.Time) ([]DriverHours, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, s *Shift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Shift, error) {
	var s Shift
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *repository) FindOpenByDriver(ctx context.Context, driverID string) (*Shift, error) {
	var s Shift
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Where("check_out IS NULL").
		First(&s).Error
	return &s, err
}

func (r *repository) FindActive(ctx context.Context) ([]Shift, error) {
	var rows []Shift
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("Vehicle").
		Where("check_out IS NULL").
		Order("check_in DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindRecent(ctx context.Context, limit int) ([]Shift, error) {
	var rows []Shift
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("Vehicle").
		Order("check_in DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, s *Shift) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) SumHoursByDriver(ctx context.Context, from, to time.Time) ([]DriverHours, error) {
	var rows []DriverHours
	err := r.db.WithContext(ctx).
		Model(&Shift{}).
		Select("driver_id, COALESCE(SUM(hours_worked), 0) AS hours").
		Where("check_in >= ? AND check_in < ?", from, to).
		Where("check_out IS NOT NULL").
		Group("driver_id").
		Scan(&rows).Error
	return rows, err
}
