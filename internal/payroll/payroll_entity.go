package payroll

import (
	"time"

	"github.com/esnupy/lafa/internal/driver"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollResult is the computed pay for one driver in one week.
// Re-running the week overwrites the row in place.
type PayrollResult struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	DriverID  uuid.UUID       `gorm:"column:driver_id;type:uuid;not null;uniqueIndex:uq_payroll_driver_week,priority:1"`
	WeekStart time.Time       `gorm:"column:week_start;type:date;not null;uniqueIndex:uq_payroll_driver_week,priority:2"`
	Hours     decimal.Decimal `gorm:"column:hours;type:numeric(6,2);not null"`
	TripCount int             `gorm:"column:trip_count;not null"`
	Revenue   decimal.Decimal `gorm:"column:revenue;type:numeric(12,2);not null"`
	Base      decimal.Decimal `gorm:"column:base_salary;type:numeric(12,2);not null"`
	Bonus     decimal.Decimal `gorm:"column:bonus;type:numeric(12,2);not null"`
	Overtime  decimal.Decimal `gorm:"column:overtime;type:numeric(12,2);not null"`
	Support   decimal.Decimal `gorm:"column:support;type:numeric(12,2);not null"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	RunAt     time.Time       `gorm:"column:run_at;not null"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`

	Driver *driver.Driver `gorm:"foreignKey:DriverID"`
}

func (PayrollResult) TableName() string {
	return "payroll_results"
}
