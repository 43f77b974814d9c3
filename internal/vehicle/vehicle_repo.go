package vehicle

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=vehicle_repo.go -destination=mock/vehicle_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, v *Vehicle) error
	FindAll(ctx context.Context) ([]Vehicle, error)
	FindByID(ctx context.Context, id string) (*Vehicle, error)
	Update(ctx context.Context, v *Vehicle) error
	// UpdateStatusIf transitions status only when the current value
	// matches expected. Returns the number of rows touched so the caller
	// can detect a lost race.
	UpdateStatusIf(ctx context.Context, id, expected, next string) (int64, error)
	SetStatus(ctx context.Context, id, status string) error
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

func (r *repository) Create(ctx context.Context, v *Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Vehicle, error) {
	var rows []Vehicle
	err := r.db.WithContext(ctx).
		Order("plate ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Vehicle, error) {
	var v Vehicle
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *repository) Update(ctx context.Context, v *Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *repository) UpdateStatusIf(ctx context.Context, id, expected, next string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Vehicle{}).
		Where("id = ? AND status = ?", id, expected).
		Update("status", next)
	return res.RowsAffected, res.Error
}

func (r *repository) SetStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&Vehicle{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Vehicle{}, "id = ?", id).Error
}
