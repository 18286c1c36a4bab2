package usecase

import (
	"context"

	"github.com/google/uuid"

	"mapnote/internal/domain/entity"
)

// CommitDraftInput represents the save dialog fields
type CommitDraftInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CurrentLocationInput represents a device position fix
type CurrentLocationInput struct {
	Point    entity.Point `json:"point"`
	Accuracy float64      `json:"accuracy"`
}

// FocusResult is the viewport and popup shown when a sidebar entry is clicked
type FocusResult struct {
	Feature  entity.AnnotationFeature `json:"feature"`
	Viewport entity.Viewport          `json:"viewport"`
	Popup    string                   `json:"popup"`
}

// AnnotationUsecase defines the interface for drawing, saving and editing features
type AnnotationUsecase interface {
	BeginDraft(ctx context.Context, mapID uuid.UUID, geometry entity.Geometry) (*entity.Draft, error)
	CommitDraft(ctx context.Context, mapID, draftID uuid.UUID, input *CommitDraftInput) (*entity.AnnotationFeature, error)
	CancelDraft(ctx context.Context, mapID, draftID uuid.UUID) error

	ListFeatures(ctx context.Context, mapID uuid.UUID) ([]entity.AnnotationFeature, error)
	UpdateGeometry(ctx context.Context, mapID, featureID uuid.UUID, geometry entity.Geometry) (*entity.AnnotationFeature, error)
	DeleteFeature(ctx context.Context, mapID, featureID uuid.UUID) error
	ClearFeatures(ctx context.Context, mapID uuid.UUID) (int, error)

	AddCurrentLocation(ctx context.Context, mapID uuid.UUID, input *CurrentLocationInput) (*entity.AnnotationFeature, error)
	FocusFeature(ctx context.Context, mapID, featureID uuid.UUID) (*FocusResult, error)
}
