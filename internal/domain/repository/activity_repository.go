package repository

import (
	"context"

	"mapnote/internal/domain/entity"
)

// ActivityRepository keeps the recent event history of each map.
type ActivityRepository interface {
	// Append stores the activity. It reports false when an activity with the
	// same message id was already stored for the map.
	Append(ctx context.Context, activity *entity.MapActivity) (bool, error)

	// ListByMap returns up to limit activities, newest first.
	ListByMap(ctx context.Context, mapID string, limit int) ([]entity.MapActivity, error)
}
