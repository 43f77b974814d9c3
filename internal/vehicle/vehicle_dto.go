package vehicle

type CreateVehicleRequest struct {
	Plate             string  `json:"plate" binding:"required"`
	Model             string  `json:"model" binding:"required"`
	Status            string  `json:"status" binding:"required,oneof=disponible asignado mantenimiento"`
	AutonomyKM        *int    `json:"autonomy_km"`
	FastCharge        *string `json:"fast_charge"`
	BatteryWarrantyKM *int    `json:"battery_warranty_km"`
	DidiCategory      *string `json:"didi_category"`
}

type UpdateVehicleRequest struct {
	Plate             *string `json:"plate"`
	Model             *string `json:"model"`
	Status            *string `json:"status" binding:"omitempty,oneof=disponible asignado mantenimiento"`
	AutonomyKM        *int    `json:"autonomy_km"`
	FastCharge        *string `json:"fast_charge"`
	BatteryWarrantyKM *int    `json:"battery_warranty_km"`
	DidiCategory      *string `json:"didi_category"`
}

type VehicleResponse struct {
	ID                string  `json:"id"`
	Plate             string  `json:"plate"`
	Model             string  `json:"model"`
	Status            string  `json:"status"`
	AutonomyKM        *int    `json:"autonomy_km,omitempty"`
	FastCharge        *string `json:"fast_charge,omitempty"`
	BatteryWarrantyKM *int    `json:"battery_warranty_km,omitempty"`
	DidiCategory      *string `json:"didi_category,omitempty"`
	CreatedAt         string  `json:"created_at"`
}
