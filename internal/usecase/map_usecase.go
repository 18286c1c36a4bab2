package usecase

import (
	"context"

	"github.com/google/uuid"

	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/sidebar"
	"mapnote/internal/domain/workspace"
)

// CreateMapInput represents the input for opening a map instance
type CreateMapInput struct {
	Center *entity.Point `json:"center,omitempty"`
	Zoom   *float64      `json:"zoom,omitempty"`
}

// MapUsecase defines the interface for map instance lifecycle and view state
type MapUsecase interface {
	CreateMap(ctx context.Context, input *CreateMapInput) (*workspace.Snapshot, error)
	GetMap(ctx context.Context, mapID uuid.UUID) (*workspace.Snapshot, error)
	ListMaps(ctx context.Context) ([]uuid.UUID, error)
	DeleteMap(ctx context.Context, mapID uuid.UUID) error

	SetViewport(ctx context.Context, mapID uuid.UUID, viewport entity.Viewport) (*entity.Viewport, error)
	GetSidebar(ctx context.Context, mapID uuid.UUID) (*sidebar.View, error)
}
