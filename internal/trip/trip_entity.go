package trip

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Trip is one imported DiDi ride. The external trip id is the
// idempotency key: re-importing the same id overwrites in place.
type Trip struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalTripID   string          `gorm:"column:trip_id;type:varchar(60);not null;uniqueIndex:uq_trip_external_id"`
	PlatformDriverID int64           `gorm:"column:didi_driver_id;type:bigint;not null"`
	DriverID         uuid.UUID       `gorm:"column:driver_id;type:uuid;not null;index"`
	TripDate         time.Time       `gorm:"column:trip_date;type:date;not null"`
	StartTime        string          `gorm:"column:start_time;type:varchar(8);not null"`
	EndTime          string          `gorm:"column:end_time;type:varchar(8);not null"`
	Cost             decimal.Decimal `gorm:"column:cost;type:numeric(12,2);not null"`
	Tip              decimal.Decimal `gorm:"column:tip;type:numeric(12,2);not null"`
	PickupLat        *float64        `gorm:"column:pickup_lat;type:double precision"`
	PickupLng        *float64        `gorm:"column:pickup_lng;type:double precision"`
	WeekStart        time.Time       `gorm:"column:week_start;type:date;not null;index"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`
}

func (Trip) TableName() string {
	return "trips"
}

// WeeklyEarnings is the per-driver weekly aggregate rebuilt from trips
// on every import of that (driver, week). Raw keeps the contributing
// rows for audit and chat context.
type WeeklyEarnings struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	DriverID   uuid.UUID       `gorm:"column:driver_id;type:uuid;not null;uniqueIndex:uq_earnings_driver_week,priority:1"`
	WeekStart  time.Time       `gorm:"column:week_start;type:date;not null;uniqueIndex:uq_earnings_driver_week,priority:2"`
	TripCount  int             `gorm:"column:trip_count;not null"`
	Revenue    decimal.Decimal `gorm:"column:revenue;type:numeric(12,2);not null"`
	Raw        datatypes.JSON  `gorm:"column:raw;type:jsonb"`
	ImportedAt time.Time       `gorm:"column:imported_at;not null"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (WeeklyEarnings) TableName() string {
	return "weekly_earnings"
}
