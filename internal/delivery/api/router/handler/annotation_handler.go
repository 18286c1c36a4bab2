package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"mapnote/internal/delivery/api/response"
	"mapnote/internal/domain/entity"
	"mapnote/internal/usecase"
)

// AnnotationHandlerParams holds dependencies for AnnotationHandler, injected by Fx.
type AnnotationHandlerParams struct {
	fx.In

	AnnotationUC usecase.AnnotationUsecase
	Logger       *slog.Logger
}

// AnnotationHandler serves drafts and committed features
type AnnotationHandler struct {
	annotationUC usecase.AnnotationUsecase
	logger       *slog.Logger
}

// NewAnnotationHandler is the constructor for AnnotationHandler
func NewAnnotationHandler(params AnnotationHandlerParams) *AnnotationHandler {
	return &AnnotationHandler{
		annotationUC: params.AnnotationUC,
		logger:       params.Logger,
	}
}

// GeometryRequest represents a drawn or edited shape
type GeometryRequest struct {
	Kind   string         `json:"kind" validate:"omitempty,oneof=marker polyline polygon rectangle circle"`
	Points []PointRequest `json:"points" validate:"dive"`
	Radius float64        `json:"radius" validate:"gte=0"`
}

// Geometry converts the request into a domain geometry
func (r GeometryRequest) Geometry() entity.Geometry {
	points := make([]entity.Point, len(r.Points))
	for i, p := range r.Points {
		points[i] = p.Point()
	}

	return entity.Geometry{
		Kind:   entity.FeatureKind(r.Kind),
		Points: points,
		Radius: r.Radius,
	}
}

// CommitDraftRequest represents the save dialog
type CommitDraftRequest struct {
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=2000"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

// CurrentLocationRequest represents a device position fix
type CurrentLocationRequest struct {
	Lat      float64 `json:"lat" validate:"latitude"`
	Lng      float64 `json:"lng" validate:"longitude"`
	Accuracy float64 `json:"accuracy" validate:"gte=0"`
}

// BeginDraft stages a just-drawn shape
func (h *AnnotationHandler) BeginDraft(c echo.Context) error {
	var req GeometryRequest
	if ok, err := bindAndValidate(c, &req, "Invalid shape input"); !ok {
		return err
	}
	if req.Kind == "" {
		return response.BadRequest(c, "VALIDATION_FAILED", "Shape kind is required")
	}

	draft, err := h.annotationUC.BeginDraft(c.Request().Context(), mapIDParam(c), req.Geometry())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, draft)
}

// CommitDraft saves the pending shape with its metadata
func (h *AnnotationHandler) CommitDraft(c echo.Context) error {
	draftID, err := uuid.Parse(c.Param("draftId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid draft ID")
	}

	var req CommitDraftRequest
	if ok, err := bindAndValidate(c, &req, "Invalid feature input"); !ok {
		return err
	}

	feature, err := h.annotationUC.CommitDraft(c.Request().Context(), mapIDParam(c), draftID, &usecase.CommitDraftInput{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, feature)
}

// CancelDraft discards the pending shape
func (h *AnnotationHandler) CancelDraft(c echo.Context) error {
	draftID, err := uuid.Parse(c.Param("draftId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid draft ID")
	}

	if err := h.annotationUC.CancelDraft(c.Request().Context(), mapIDParam(c), draftID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Draft discarded"})
}

// ListFeatures returns committed features in insertion order
func (h *AnnotationHandler) ListFeatures(c echo.Context) error {
	features, err := h.annotationUC.ListFeatures(c.Request().Context(), mapIDParam(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, features)
}

// UpdateGeometry applies an edit made on the draw layer
func (h *AnnotationHandler) UpdateGeometry(c echo.Context) error {
	featureID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid feature ID")
	}

	var req GeometryRequest
	if ok, err := bindAndValidate(c, &req, "Invalid shape input"); !ok {
		return err
	}

	feature, err := h.annotationUC.UpdateGeometry(c.Request().Context(), mapIDParam(c), featureID, req.Geometry())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, feature)
}

// DeleteFeature removes one feature; this is the sidebar delete action
func (h *AnnotationHandler) DeleteFeature(c echo.Context) error {
	featureID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid feature ID")
	}

	if err := h.annotationUC.DeleteFeature(c.Request().Context(), mapIDParam(c), featureID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Feature deleted successfully"})
}

// ClearFeatures removes every committed feature
func (h *AnnotationHandler) ClearFeatures(c echo.Context) error {
	removed, err := h.annotationUC.ClearFeatures(c.Request().Context(), mapIDParam(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int{"removed": removed})
}

// AddCurrentLocation drops a "My Location" marker
func (h *AnnotationHandler) AddCurrentLocation(c echo.Context) error {
	var req CurrentLocationRequest
	if ok, err := bindAndValidate(c, &req, "Invalid location input"); !ok {
		return err
	}

	feature, err := h.annotationUC.AddCurrentLocation(c.Request().Context(), mapIDParam(c), &usecase.CurrentLocationInput{
		Point:    entity.Point{Lat: req.Lat, Lng: req.Lng},
		Accuracy: req.Accuracy,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, feature)
}

// FocusFeature recentres the map on a sidebar entry
func (h *AnnotationHandler) FocusFeature(c echo.Context) error {
	featureID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid feature ID")
	}

	result, err := h.annotationUC.FocusFeature(c.Request().Context(), mapIDParam(c), featureID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}
