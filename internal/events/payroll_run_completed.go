package events

import "time"

const PayrollRunCompletedTopic = "fleet.payroll.run.completed.v1"

type PayrollRunCompletedEvent struct {
	EventType  string    `json:"event_type"`
	WeekStart  string    `json:"week_start"`
	Drivers    int       `json:"drivers"`
	RunBy      string    `json:"run_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
