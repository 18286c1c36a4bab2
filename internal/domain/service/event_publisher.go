package service

import (
	"context"
	"time"
)

// MapEventType names a state change on a map instance
type MapEventType string

const (
	EventReferenceToggled    MapEventType = "reference.toggled"
	EventMeasuringToggled    MapEventType = "measuring.toggled"
	EventMeasurementRecorded MapEventType = "measurement.recorded"
	EventMeasurementDeleted  MapEventType = "measurement.deleted"
	EventReferenceDragged    MapEventType = "reference.dragged"
	EventFeatureCommitted    MapEventType = "feature.committed"
	EventFeatureUpdated      MapEventType = "feature.updated"
	EventFeatureDeleted      MapEventType = "feature.deleted"
	EventFeaturesCleared     MapEventType = "features.cleared"
	EventViewportChanged     MapEventType = "viewport.changed"
	EventMapSnapshotExported MapEventType = "map.exported"
)

// MapEvent is published after a successful mutation of a map instance
type MapEvent struct {
	RequestID  string         `json:"request_id,omitempty"` // For distributed tracing
	MapID      string         `json:"map_id"`
	Type       MapEventType   `json:"type"`
	SubjectID  string         `json:"subject_id,omitempty"` // Feature or measurement the event is about
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishMapEvent publishes a map event for downstream consumers
	PublishMapEvent(ctx context.Context, event *MapEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
