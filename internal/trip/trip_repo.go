package trip

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DriverRevenue is one driver's recomputed trip total for a week.
type DriverRevenue struct {
	DriverID uuid.UUID       `gorm:"column:driver_id"`
	Trips    int             `gorm:"column:trips"`
	Revenue  decimal.Decimal `gorm:"column:revenue"`
}

//go:generate mockgen -source=trip_repo.go -destination=mock/trip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertBatch(ctx context.Context, trips []Trip) error
	FindByDriverWeek(ctx context.Context, driverID uuid.UUID, weekStart time.Time) ([]Trip, error)
	FindSince(ctx context.Context, from time.Time, limit int) ([]Trip, error)
	SumRevenueByWeek(ctx context.Context, weekStart time.Time) ([]DriverRevenue, error)
	DeleteByDriverWeek(ctx context.Context, driverID uuid.UUID, weekStart time.Time) error
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

// UpsertBatch inserts trips or overwrites in place on a trip_id
// collision, so re-importing a file is idempotent.
func (r *repository) UpsertBatch(ctx context.Context, trips []Trip) error {
	if len(trips) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "trip_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"didi_driver_id", "driver_id", "trip_date",
				"start_time", "end_time", "cost", "tip",
				"pickup_lat", "pickup_lng", "week_start", "updated_at",
			}),
		}).
		Create(&trips).Error
}

func (r *repository) FindByDriverWeek(ctx context.Context, driverID uuid.UUID, weekStart time.Time) ([]Trip, error) {
	var rows []Trip
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND week_start = ?", driverID, weekStart).
		Order("trip_date ASC, start_time ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindSince(ctx context.Context, from time.Time, limit int) ([]Trip, error) {
	var rows []Trip
	err := r.db.WithContext(ctx).
		Where("trip_date >= ?", from).
		Order("trip_date DESC, start_time DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *repository) SumRevenueByWeek(ctx context.Context, weekStart time.Time) ([]DriverRevenue, error) {
	var rows []DriverRevenue
	err := r.db.WithContext(ctx).
		Model(&Trip{}).
		Select("driver_id, COUNT(*) AS trips, COALESCE(SUM(cost + tip), 0) AS revenue").
		Where("week_start = ?", weekStart).
		Group("driver_id").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) DeleteByDriverWeek(ctx context.Context, driverID uuid.UUID, weekStart time.Time) error {
	return r.db.WithContext(ctx).
		Where("driver_id = ? AND week_start = ?", driverID, weekStart).
		Delete(&Trip{}).Error
}
