package trip

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EarningsRepository interface {
	WithTx(tx *gorm.DB) EarningsRepository
	Upsert(ctx context.Context, e *WeeklyEarnings) error
	FindByWeek(ctx context.Context, weekStart time.Time) ([]WeeklyEarnings, error)
	FindByDriverWeek(ctx context.Context, driverID uuid.UUID, weekStart time.Time) (*WeeklyEarnings, error)
	ListWeeks(ctx context.Context, limit int) ([]time.Time, error)
	Delete(ctx context.Context, driverID uuid.UUID, weekStart time.Time) error
}

type earningsRepository struct {
	db *gorm.DB
}

func NewEarningsRepository(db *gorm.DB) EarningsRepository {
	return &earningsRepository{db: db}
}

func (r *earningsRepository) WithTx(tx *gorm.DB) EarningsRepository {
	return &earningsRepository{db: tx}
}

// Upsert replaces the whole aggregate for (driver, week). Not additive;
// the rebuild already summed every trip for the key.
func (r *earningsRepository) Upsert(ctx context.Context, e *WeeklyEarnings) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "driver_id"}, {Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"trip_count", "revenue", "raw", "imported_at", "updated_at",
			}),
		}).
		Create(e).Error
}

func (r *earningsRepository) FindByWeek(ctx context.Context, weekStart time.Time) ([]WeeklyEarnings, error) {
	var rows []WeeklyEarnings
	err := r.db.WithContext(ctx).
		Where("week_start = ?", weekStart).
		Find(&rows).Error
	return rows, err
}

func (r *earningsRepository) FindByDriverWeek(ctx context.Context, driverID uuid.UUID, weekStart time.Time) (*WeeklyEarnings, error) {
	var e WeeklyEarnings
	err := r.db.WithContext(ctx).
		First(&e, "driver_id = ? AND week_start = ?", driverID, weekStart).Error
	return &e, err
}

func (r *earningsRepository) ListWeeks(ctx context.Context, limit int) ([]time.Time, error) {
	var weeks []time.Time
	err := r.db.WithContext(ctx).
		Model(&WeeklyEarnings{}).
		Distinct("week_start").
		Order("week_start DESC").
		Limit(limit).
		Pluck("week_start", &weeks).Error
	return weeks, err
}

func (r *earningsRepository) Delete(ctx context.Context, driverID uuid.UUID, weekStart time.Time) error {
	return r.db.WithContext(ctx).
		Where("driver_id = ? AND week_start = ?", driverID, weekStart).
		Delete(&WeeklyEarnings{}).Error
}
