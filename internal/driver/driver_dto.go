package driver

type CreateDriverRequest struct {
	Name         string `json:"name" binding:"required"`
	EmployeeCode string `json:"employee_id" binding:"required"`
	PlatformID   *int64 `json:"didi_driver_id"`
}

type UpdateDriverRequest struct {
	Name         string `json:"name" binding:"required"`
	EmployeeCode string `json:"employee_id" binding:"required"`
	PlatformID   *int64 `json:"didi_driver_id"`
}

type DriverResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_id"`
	PlatformID   *int64 `json:"didi_driver_id,omitempty"`
	CreatedAt    string `json:"created_at"`
}
