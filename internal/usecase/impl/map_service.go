package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"mapnote/config"
	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/repository"
	"mapnote/internal/domain/service"
	"mapnote/internal/domain/sidebar"
	"mapnote/internal/domain/workspace"
	"mapnote/internal/usecase"
)

type mapService struct {
	mapBase

	searchUC        usecase.SearchUsecase
	defaultViewport entity.Viewport
}

// MapServiceParams holds dependencies for the map service, injected by Fx
type MapServiceParams struct {
	fx.In

	Repo      repository.MapRepository
	Publisher service.EventPublisher
	SearchUC  usecase.SearchUsecase
	Config    *config.Config
	Logger    *slog.Logger
}

// NewMapService creates a new map service instance
func NewMapService(params MapServiceParams) usecase.MapUsecase {
	ws := params.Config.Workspace

	return &mapService{
		mapBase:  newMapBase(params.Repo, params.Publisher, params.Logger),
		searchUC: params.SearchUC,
		defaultViewport: entity.Viewport{
			Center: entity.Point{Lat: ws.DefaultCenterLat, Lng: ws.DefaultCenterLng},
			Zoom:   ws.DefaultZoom,
		},
	}
}

func (s *mapService) CreateMap(ctx context.Context, input *usecase.CreateMapInput) (*workspace.Snapshot, error) {
	viewport := s.defaultViewport
	if input != nil {
		if input.Center != nil {
			viewport.Center = *input.Center
		}
		if input.Zoom != nil {
			viewport.Zoom = *input.Zoom
		}
	}

	snapshot, err := s.repo.Create(ctx, viewport)
	if err != nil {
		return nil, toAppError(err)
	}

	s.log(ctx).Info("Map created", slog.String("map_id", snapshot.ID.String()))

	return snapshot, nil
}

func (s *mapService) GetMap(ctx context.Context, mapID uuid.UUID) (*workspace.Snapshot, error) {
	var snapshot workspace.Snapshot
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		snapshot = ws.Snapshot()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

func (s *mapService) ListMaps(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list maps")
	}

	return ids, nil
}

func (s *mapService) DeleteMap(ctx context.Context, mapID uuid.UUID) error {
	if err := s.repo.Delete(ctx, mapID); err != nil {
		return toAppError(err)
	}
	s.searchUC.Forget(mapID)

	s.log(ctx).Info("Map deleted", slog.String("map_id", mapID.String()))

	return nil
}

func (s *mapService) SetViewport(ctx context.Context, mapID uuid.UUID, viewport entity.Viewport) (*entity.Viewport, error) {
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		ws.Viewport = viewport

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mapID, service.EventViewportChanged, "", map[string]any{
		"lat":  viewport.Center.Lat,
		"lng":  viewport.Center.Lng,
		"zoom": viewport.Zoom,
	})

	return &viewport, nil
}

func (s *mapService) GetSidebar(ctx context.Context, mapID uuid.UUID) (*sidebar.View, error) {
	var view sidebar.View
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		view = ws.Sidebar()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &view, nil
}
