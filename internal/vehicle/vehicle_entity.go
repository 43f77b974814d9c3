package vehicle

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusAvailable   = "disponible"
	StatusAssigned    = "asignado"
	StatusMaintenance = "mantenimiento"
)

type Vehicle struct {
	ID    uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Plate string    `gorm:"column:plate;type:varchar(20);not null;uniqueIndex:uq_vehicle_plate"`
	Model string    `gorm:"column:model;type:varchar(80);not null"`
	// Availability is the check-in gate: only "disponible" vehicles can
	// start a shift.
	Status string `gorm:"column:status;type:varchar(20);not null;default:disponible"`

	// EV spec sheet, all optional.
	AutonomyKM        *int    `gorm:"column:autonomy_km"`
	FastCharge        *string `gorm:"column:fast_charge;type:varchar(40)"`
	BatteryWarrantyKM *int    `gorm:"column:battery_warranty_km"`
	DidiCategory      *string `gorm:"column:didi_category;type:varchar(40)"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func ValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusMaintenance:
		return true
	}
	return false
}
