package payroll

type RunRequest struct {
	// Week is the Monday of the target week, YYYY-MM-DD. Empty means
	// the current week.
	Week string `json:"week"`
}

type ResultResponse struct {
	ID           string `json:"id"`
	DriverID     string `json:"driver_id"`
	DriverName   string `json:"driver_name"`
	EmployeeCode string `json:"employee_code"`
	WeekStart    string `json:"week_start"`
	Hours        string `json:"hours"`
	TripCount    int    `json:"trip_count"`
	Revenue      string `json:"revenue"`
	Base         string `json:"base"`
	Bonus        string `json:"bonus"`
	Overtime     string `json:"overtime"`
	Support      string `json:"support"`
	Total        string `json:"total"`
	MeetsGoal    bool   `json:"meets_goal"`
}

type RunResponse struct {
	WeekStart string           `json:"week_start"`
	Drivers   int              `json:"drivers"`
	Results   []ResultResponse `json:"results"`
}
