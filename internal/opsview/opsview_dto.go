package opsview

import (
	"github.com/esnupy/lafa/internal/payroll"
	"github.com/esnupy/lafa/internal/shift"
	"github.com/esnupy/lafa/internal/trip"
	"github.com/esnupy/lafa/internal/vehicle"
)

// Snapshot is the cross-cutting operations view. The dashboard renders
// it and the chat assistant receives it as context, so everything in it
// is already formatted.
type Snapshot struct {
	GeneratedAt   string `json:"generated_at"`
	WeekStart     string `json:"week_start"`
	PrevWeekStart string `json:"prev_week_start"`

	Drivers      []DriverSummary           `json:"drivers"`
	Vehicles     []vehicle.VehicleResponse `json:"vehicles"`
	ActiveShifts []shift.ShiftResponse     `json:"active_shifts"`
	RecentTrips  []trip.TripResponse       `json:"recent_trips"`
	PrevPayroll  []payroll.ResultResponse  `json:"prev_week_payroll"`
}

// DriverSummary is one driver's week at a glance. When the current
// week has no activity yet the numbers fall back to the previous week,
// flagged by Week = "anterior".
type DriverSummary struct {
	DriverID     string `json:"driver_id"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
	Week         string `json:"week"`
	Hours        string `json:"hours"`
	TripCount    int    `json:"trip_count"`
	Revenue      string `json:"revenue"`
	MeetsGoal    bool   `json:"meets_goal"`
	MissingHours string `json:"missing_hours"`
	MissingRev   string `json:"missing_revenue"`
	Projected    string `json:"projected_total"`
	OnShift      bool   `json:"on_shift"`
}
