package shift

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Shift struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	DriverID     uuid.UUID `gorm:"column:driver_id;type:uuid;not null;index"`
	VehicleID    uuid.UUID `gorm:"column:vehicle_id;type:uuid;not null;index"`
	SupervisorID uuid.UUID `gorm:"column:supervisor_id;type:uuid;not null"`
	CheckIn      time.Time `gorm:"column:check_in;type:timestamptz;not null;index"`
	// NULL while the shift is open. A driver has at most one open shift.
	CheckOut    *time.Time       `gorm:"column:check_out;type:timestamptz"`
	HoursWorked *decimal.Decimal `gorm:"column:hours_worked;type:numeric(6,2)"`
	CreatedAt   time.Time        `gorm:"column:created_at"`
	UpdatedAt   time.Time        `gorm:"column:updated_at"`

	Driver  *DriverRef  `gorm:"foreignKey:DriverID;references:ID"`
	Vehicle *VehicleRef `gorm:"foreignKey:VehicleID;references:ID"`
}

func (Shift) TableName() string {
	return "shifts"
}

type DriverRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (DriverRef) TableName() string {
	return "drivers"
}

type VehicleRef struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Plate string    `gorm:"column:plate"`
}

func (VehicleRef) TableName() string {
	return "vehicles"
}

// DriverHours is the weekly aggregation row the payroll run consumes.
type DriverHours struct {
	DriverID uuid.UUID
	Hours    decimal.Decimal
}
