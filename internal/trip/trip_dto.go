package trip

// RawTripRow carries one spreadsheet row as the client read it. Cells
// arrive untyped: numeric cells decode as float64 (including Excel
// date/time serials), everything else as string. The normalizer sorts
// it out.
type RawTripRow struct {
	DriverID  any `json:"driver_id"`
	TripID    any `json:"trip_id"`
	Date      any `json:"date"`
	StartTime any `json:"start_time"`
	EndTime   any `json:"end_time"`
	Cost      any `json:"cost"`
	Tip       any `json:"tip"`
	PickupLat any `json:"pickup_lat"`
	PickupLng any `json:"pickup_lng"`
}

type ImportRequest struct {
	Rows []RawTripRow `json:"rows" binding:"required,min=1"`
}

type ImportResponse struct {
	RowsReceived int      `json:"rows_received"`
	RowsFiltered int      `json:"rows_filtered"`
	TripsSaved   int      `json:"trips_saved"`
	Drivers      int      `json:"drivers"`
	Weeks        []string `json:"weeks"`
}

type TripResponse struct {
	ID          string   `json:"id"`
	TripID      string   `json:"trip_id"`
	DriverID    string   `json:"driver_id"`
	DriverName  string   `json:"driver_name,omitempty"`
	Date        string   `json:"date"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Cost        string   `json:"cost"`
	Tip         string   `json:"tip"`
	WeekStart   string   `json:"week_start"`
	PickupLat   *float64 `json:"pickup_lat,omitempty"`
	PickupLng   *float64 `json:"pickup_lng,omitempty"`
}

type EarningsResponse struct {
	ID         string `json:"id"`
	DriverID   string `json:"driver_id"`
	DriverName string `json:"driver_name,omitempty"`
	WeekStart  string `json:"week_start"`
	TripCount  int    `json:"trip_count"`
	Revenue    string `json:"revenue"`
	ImportedAt string `json:"imported_at"`
}
