package repository

import (
	"context"

	"github.com/google/uuid"

	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/workspace"
	"mapnote/internal/errors"
)

var (
	ErrMapNotFound     = errors.New("map not found")
	ErrMapLimitReached = errors.New("map limit reached")
)

// MapRepository stores open map instances.
type MapRepository interface {
	// Create opens a new map instance centred on the viewport.
	Create(ctx context.Context, viewport entity.Viewport) (*workspace.Snapshot, error)

	// Execute runs fn with exclusive access to one map instance.
	// Calls for the same map are applied one at a time in arrival order.
	Execute(ctx context.Context, mapID uuid.UUID, fn func(ws *workspace.Workspace) error) error

	// Delete closes a map instance.
	Delete(ctx context.Context, mapID uuid.UUID) error

	// List returns the ids of all open map instances.
	List(ctx context.Context) ([]uuid.UUID, error)
}
