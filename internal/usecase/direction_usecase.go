package usecase

import (
	"context"

	"github.com/google/uuid"

	"mapnote/internal/domain/direction"
	"mapnote/internal/domain/entity"
)

// DirectionView is the state of a map's direction tool after an operation
type DirectionView struct {
	State        direction.State               `json:"state"`
	Reference    *entity.Point                 `json:"reference,omitempty"`
	Measurements []entity.DirectionMeasurement `json:"measurements"`
	Lines        []entity.Segment              `json:"lines"`
	NextSeq      int                           `json:"next_seq"`
	Status       string                        `json:"status"`
}

// DirectionUsecase defines the interface for the reference point and direction measurements
type DirectionUsecase interface {
	// ToggleReference places the reference point at the viewport centre, or clears the session
	ToggleReference(ctx context.Context, mapID uuid.UUID) (*DirectionView, error)
	DragReference(ctx context.Context, mapID uuid.UUID, to entity.Point) (*DirectionView, error)
	ToggleMeasuring(ctx context.Context, mapID uuid.UUID) (*DirectionView, error)
	RecordPoint(ctx context.Context, mapID uuid.UUID, point entity.Point) (*entity.DirectionMeasurement, error)
	DeleteMeasurement(ctx context.Context, mapID uuid.UUID, seq int) (*DirectionView, error)
	GetDirection(ctx context.Context, mapID uuid.UUID) (*DirectionView, error)
}
