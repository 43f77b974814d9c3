package payroll

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertBatch(ctx context.Context, results []PayrollResult) error
	FindByWeek(ctx context.Context, weekStart time.Time) ([]PayrollResult, error)
	ListWeeks(ctx context.Context, limit int) ([]time.Time, error)
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

// UpsertBatch replaces each (driver, week) row entirely, so re-running
// a week after new imports never leaves stale amounts behind.
func (r *repository) UpsertBatch(ctx context.Context, results []PayrollResult) error {
	if len(results) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit("Driver").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "driver_id"}, {Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"hours", "trip_count", "revenue",
				"base_salary", "bonus", "overtime", "support", "total",
				"run_at", "updated_at",
			}),
		}).
		Create(&results).Error
}

func (r *repository) FindByWeek(ctx context.Context, weekStart time.Time) ([]PayrollResult, error) {
	var rows []PayrollResult
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Where("week_start = ?", weekStart).
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListWeeks(ctx context.Context, limit int) ([]time.Time, error) {
	var weeks []time.Time
	err := r.db.WithContext(ctx).
		Model(&PayrollResult{}).
		Distinct("week_start").
		Order("week_start DESC").
		Limit(limit).
		Pluck("week_start", &weeks).Error
	return weeks, err
}
