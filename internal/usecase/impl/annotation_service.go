package impl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"mapnote/internal/domain/annotation"
	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/geodesy"
	"mapnote/internal/domain/repository"
	"mapnote/internal/domain/service"
	"mapnote/internal/domain/sidebar"
	"mapnote/internal/domain/workspace"
	"mapnote/internal/usecase"
)

// Zoom used when centring on a single marker or a location fix
const markerFocusZoom = 15

type annotationService struct {
	mapBase
}

// AnnotationServiceParams holds dependencies for the annotation service, injected by Fx
type AnnotationServiceParams struct {
	fx.In

	Repo      repository.MapRepository
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewAnnotationService creates a new annotation service instance
func NewAnnotationService(params AnnotationServiceParams) usecase.AnnotationUsecase {
	return &annotationService{
		mapBase: newMapBase(params.Repo, params.Publisher, params.Logger),
	}
}

func (s *annotationService) BeginDraft(ctx context.Context, mapID uuid.UUID, geometry entity.Geometry) (*entity.Draft, error) {
	var draft entity.Draft
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		draft = ws.Registry.BeginDraft(geometry)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &draft, nil
}

func (s *annotationService) CommitDraft(ctx context.Context, mapID, draftID uuid.UUID, input *usecase.CommitDraftInput) (*entity.AnnotationFeature, error) {
	if input == nil {
		input = &usecase.CommitDraftInput{}
	}

	var feature entity.AnnotationFeature
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		var err error
		feature, err = ws.Registry.Commit(draftID, input.Title, input.Description, input.Color)

		return err
	})
	if err != nil {
		s.log(ctx).Debug("Draft rejected",
			slog.String("map_id", mapID.String()),
			slog.String("draft_id", draftID.String()),
			slog.Any("error", err),
		)

		return nil, err
	}

	s.publish(ctx, mapID, service.EventFeatureCommitted, feature.ID.String(), map[string]any{
		"kind":  string(feature.Geometry.Kind),
		"title": feature.Title,
	})

	return &feature, nil
}

func (s *annotationService) CancelDraft(ctx context.Context, mapID, draftID uuid.UUID) error {
	return s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		return ws.Registry.Cancel(draftID)
	})
}

func (s *annotationService) ListFeatures(ctx context.Context, mapID uuid.UUID) ([]entity.AnnotationFeature, error) {
	var features []entity.AnnotationFeature
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		features = ws.Registry.List()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return features, nil
}

func (s *annotationService) UpdateGeometry(ctx context.Context, mapID, featureID uuid.UUID, geometry entity.Geometry) (*entity.AnnotationFeature, error) {
	var feature entity.AnnotationFeature
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		var err error
		feature, err = ws.Registry.UpdateGeometry(featureID, geometry)

		return err
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mapID, service.EventFeatureUpdated, feature.ID.String(), map[string]any{
		"measurement": feature.Measurement,
	})

	return &feature, nil
}

func (s *annotationService) DeleteFeature(ctx context.Context, mapID, featureID uuid.UUID) error {
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		_, err := ws.Registry.Delete(featureID)

		return err
	})
	if err != nil {
		return err
	}

	s.publish(ctx, mapID, service.EventFeatureDeleted, featureID.String(), nil)

	return nil
}

func (s *annotationService) ClearFeatures(ctx context.Context, mapID uuid.UUID) (int, error) {
	var removed int
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		removed = ws.Registry.ClearAll()

		return nil
	})
	if err != nil {
		return 0, err
	}

	s.publish(ctx, mapID, service.EventFeaturesCleared, "", map[string]any{"removed": removed})

	return removed, nil
}

func (s *annotationService) AddCurrentLocation(ctx context.Context, mapID uuid.UUID, input *usecase.CurrentLocationInput) (*entity.AnnotationFeature, error) {
	var feature entity.AnnotationFeature
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		var err error
		if feature, err = ws.Registry.AddCurrentLocation(input.Point, input.Accuracy); err != nil {
			return err
		}
		ws.Viewport = entity.Viewport{Center: input.Point, Zoom: markerFocusZoom}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mapID, service.EventFeatureCommitted, feature.ID.String(), map[string]any{
		"kind":  string(feature.Geometry.Kind),
		"title": feature.Title,
	})

	return &feature, nil
}

func (s *annotationService) FocusFeature(ctx context.Context, mapID, featureID uuid.UUID) (*usecase.FocusResult, error) {
	var result usecase.FocusResult
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		feature, err := ws.Registry.Get(featureID)
		if err != nil {
			return err
		}

		ws.Viewport = focusViewport(feature.Geometry)
		result = usecase.FocusResult{
			Feature:  feature,
			Viewport: ws.Viewport,
			Popup:    popupText(feature),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mapID, service.EventViewportChanged, featureID.String(), map[string]any{
		"lat":  result.Viewport.Center.Lat,
		"lng":  result.Viewport.Center.Lng,
		"zoom": result.Viewport.Zoom,
	})

	return &result, nil
}

// focusViewport centres on a marker at a fixed zoom and fits every other shape.
func focusViewport(g entity.Geometry) entity.Viewport {
	if g.Kind == entity.FeatureKindMarker {
		return entity.Viewport{Center: annotation.Anchor(g), Zoom: markerFocusZoom}
	}

	bound := geodesy.GeometryBounds(g)

	return entity.Viewport{
		Center: entity.PointFromOrb(bound.Center()),
		Zoom:   geodesy.FitZoom(bound, geodesy.ViewportWidthPx, geodesy.ViewportHeightPx),
	}
}

func popupText(f entity.AnnotationFeature) string {
	description := f.Description
	if description == "" {
		description = sidebar.NoDescription
	}

	return fmt.Sprintf("%s\n%s\n%s", f.Title, description, f.Measurement)
}
