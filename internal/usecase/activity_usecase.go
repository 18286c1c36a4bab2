package usecase

import (
	"context"

	"github.com/google/uuid"

	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/service"
)

// ActivityUsecase defines the interface for the map activity history fed by published map events
type ActivityUsecase interface {
	// Record stores a delivered event. Redeliveries of the same message are ignored.
	Record(ctx context.Context, messageID string, event *service.MapEvent) error
	// History returns the most recent activity of a map, newest first.
	History(ctx context.Context, mapID uuid.UUID, limit int) ([]entity.MapActivity, error)
}
