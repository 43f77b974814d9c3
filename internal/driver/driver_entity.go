package driver

import (
	"time"

	"github.com/google/uuid"
)

type Driver struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"column:name;type:varchar(120);not null"`
	EmployeeCode string    `gorm:"column:employee_id;type:varchar(30);not null;uniqueIndex:uq_driver_employee_id"`
	// External DiDi driver id; unique when present, NULL for drivers not
	// yet active on the platform.
	PlatformID *int64    `gorm:"column:didi_driver_id;type:bigint;uniqueIndex:uq_driver_didi_id"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Driver) TableName() string {
	return "drivers"
}
