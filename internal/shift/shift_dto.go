package shift

type CheckInRequest struct {
	DriverID  string `json:"driver_id" binding:"required,uuid"`
	VehicleID string `json:"vehicle_id" binding:"required,uuid"`
}

type CheckOutRequest struct {
	ShiftID string `json:"shift_id" binding:"required,uuid"`
}

type ShiftResponse struct {
	ID          string  `json:"id"`
	DriverID    string  `json:"driver_id"`
	DriverName  string  `json:"driver_name,omitempty"`
	VehicleID   string  `json:"vehicle_id"`
	Plate       string  `json:"plate,omitempty"`
	CheckIn     string  `json:"check_in"`
	CheckOut    *string `json:"check_out,omitempty"`
	HoursWorked *string `json:"hours_worked,omitempty"`
}
