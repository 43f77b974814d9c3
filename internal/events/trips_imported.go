package events

import "time"

const TripsImportedTopic = "fleet.trips.imported.v1"

type TripsImportedEvent struct {
	EventType  string    `json:"event_type"`
	BatchSize  int       `json:"batch_size"`
	Drivers    int       `json:"drivers"`
	Weeks      []string  `json:"weeks"`
	ImportedBy string    `json:"imported_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
