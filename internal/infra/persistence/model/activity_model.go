// Package model contains the GORM table structs.
package model

import (
	"time"

	"github.com/google/uuid"
)

// MapActivityModel is the GORM-specific struct for the 'map_activities' table.
// A message id is stored once per map.
type MapActivityModel struct {
	ID         uint64         `gorm:"primaryKey;autoIncrement"`
	MapID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_map_activities_map_message,priority:1;index:idx_map_activities_map_id"`
	MessageID  string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_map_activities_map_message,priority:2"`
	Type       string         `gorm:"type:varchar(64);not null"`
	SubjectID  string         `gorm:"type:varchar(255)"`
	Payload    map[string]any `gorm:"type:jsonb;serializer:json"`
	RequestID  string         `gorm:"type:varchar(255)"`
	OccurredAt time.Time
	ReceivedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (MapActivityModel) TableName() string {
	return "map_activities"
}
