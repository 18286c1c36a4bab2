package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/repository"
	"mapnote/internal/domain/service"
	"mapnote/internal/domain/workspace"
	"mapnote/internal/usecase"
)

type directionService struct {
	mapBase
}

// DirectionServiceParams holds dependencies for the direction service, injected by Fx
type DirectionServiceParams struct {
	fx.In

	Repo      repository.MapRepository
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewDirectionService creates a new direction service instance
func NewDirectionService(params DirectionServiceParams) usecase.DirectionUsecase {
	return &directionService{
		mapBase: newMapBase(params.Repo, params.Publisher, params.Logger),
	}
}

func directionView(ws *workspace.Workspace) *usecase.DirectionView {
	return &usecase.DirectionView{
		State:        ws.Session.State(),
		Reference:    ws.Session.Reference(),
		Measurements: ws.Session.Measurements(),
		Lines:        ws.Session.Lines(),
		NextSeq:      ws.Session.NextSeq(),
		Status:       ws.Sidebar().Status,
	}
}

func (s *directionService) ToggleReference(ctx context.Context, mapID uuid.UUID) (*usecase.DirectionView, error) {
	var view *usecase.DirectionView
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		ws.Session.SetReferencePoint(ws.Viewport.Center)
		view = directionView(ws)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mapID, service.EventReferenceToggled, "", map[string]any{"state": string(view.State)})

	return view, nil
}

func (s *directionService) DragReference(ctx context.Context, mapID uuid.UUID, to entity.Point) (*usecase.DirectionView, error) {
	var view *usecase.DirectionView
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		if err := ws.Session.DragReferencePoint(to); err != nil {
			return err
		}
		view = directionView(ws)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mapID, service.EventReferenceDragged, "", map[string]any{
		"lat":          to.Lat,
		"lng":          to.Lng,
		"measurements": len(view.Measurements),
	})

	return view, nil
}

func (s *directionService) ToggleMeasuring(ctx context.Context, mapID uuid.UUID) (*usecase.DirectionView, error) {
	var view *usecase.DirectionView
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		if _, err := ws.Session.ToggleMeasuring(); err != nil {
			return err
		}
		view = directionView(ws)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mapID, service.EventMeasuringToggled, "", map[string]any{"state": string(view.State)})

	return view, nil
}

func (s *directionService) RecordPoint(ctx context.Context, mapID uuid.UUID, point entity.Point) (*entity.DirectionMeasurement, error) {
	var m entity.DirectionMeasurement
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		var err error
		m, err = ws.Session.RecordPoint(point)

		return err
	})
	if err != nil {
		return nil, err
	}

	s.log(ctx).Debug("Direction measured",
		slog.String("map_id", mapID.String()),
		slog.Int("seq", m.Seq),
		slog.String("cardinal", m.Cardinal),
		slog.Float64("distance_m", m.DistanceMeters),
	)
	s.publish(ctx, mapID, service.EventMeasurementRecorded, m.ID.String(), map[string]any{
		"seq":      m.Seq,
		"bearing":  m.Bearing,
		"cardinal": m.Cardinal,
		"distance": m.DistanceMeters,
	})

	return &m, nil
}

func (s *directionService) DeleteMeasurement(ctx context.Context, mapID uuid.UUID, seq int) (*usecase.DirectionView, error) {
	var (
		view    *usecase.DirectionView
		removed entity.DirectionMeasurement
	)
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		var err error
		if removed, err = ws.Session.DeleteMeasurement(seq); err != nil {
			return err
		}
		view = directionView(ws)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mapID, service.EventMeasurementDeleted, removed.ID.String(), map[string]any{"seq": seq})

	return view, nil
}

func (s *directionService) GetDirection(ctx context.Context, mapID uuid.UUID) (*usecase.DirectionView, error) {
	var view *usecase.DirectionView
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		view = directionView(ws)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}
