package entity

import "time"

// MapActivity is one map event as received by the activity worker.
type MapActivity struct {
	MessageID  string         `json:"message_id"` // Broker message id, used to drop redeliveries
	MapID      string         `json:"map_id"`
	Type       string         `json:"type"`
	SubjectID  string         `json:"subject_id,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	ReceivedAt time.Time      `json:"received_at"`
}
