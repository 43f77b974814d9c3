package driver

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=driver_repo.go -destination=mock/driver_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, d *Driver) error
	FindAll(ctx context.Context) ([]Driver, error)
	FindByID(ctx context.Context, id string) (*Driver, error)
	FindByPlatformIDs(ctx context.Context, platformIDs []int64) ([]Driver, error)
	Update(ctx context.Context, d *Driver) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, d *Driver) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Driver, error) {
	var rows []Driver
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Driver, error) {
	var d Driver
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) FindByPlatformIDs(ctx context.Context, platformIDs []int64) ([]Driver, error) {
	var rows []Driver
	err := r.db.WithContext(ctx).
		Where("didi_driver_id IN ?", platformIDs).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, d *Driver) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Driver{}, "id = ?", id).Error
}
