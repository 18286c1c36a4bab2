package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"mapnote/internal/delivery/api/response"
	"mapnote/internal/domain/entity"
	"mapnote/internal/usecase"
)

// MapHandlerParams holds dependencies for MapHandler, injected by Fx.
type MapHandlerParams struct {
	fx.In

	MapUC  usecase.MapUsecase
	Logger *slog.Logger
}

// MapHandler serves map instance lifecycle and view state
type MapHandler struct {
	mapUC  usecase.MapUsecase
	logger *slog.Logger
}

// NewMapHandler is the constructor for MapHandler
func NewMapHandler(params MapHandlerParams) *MapHandler {
	return &MapHandler{
		mapUC:  params.MapUC,
		logger: params.Logger,
	}
}

// CreateMapRequest represents the request body for opening a map
type CreateMapRequest struct {
	Center *PointRequest `json:"center,omitempty"`
	Zoom   *float64      `json:"zoom,omitempty" validate:"omitempty,min=0,max=22"`
}

// ViewportRequest represents the request body for moving the map view
type ViewportRequest struct {
	Center PointRequest `json:"center"`
	Zoom   float64      `json:"zoom" validate:"min=0,max=22"`
}

// CreateMap opens a new map instance
func (h *MapHandler) CreateMap(c echo.Context) error {
	var req CreateMapRequest
	if ok, err := bindAndValidate(c, &req, "Invalid map input"); !ok {
		return err
	}

	input := &usecase.CreateMapInput{Zoom: req.Zoom}
	if req.Center != nil {
		center := req.Center.Point()
		input.Center = &center
	}

	snapshot, err := h.mapUC.CreateMap(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, snapshot)
}

// ListMaps returns the ids of every open map
func (h *MapHandler) ListMaps(c echo.Context) error {
	ids, err := h.mapUC.ListMaps(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"maps": ids})
}

// GetMap returns the full snapshot of a map
func (h *MapHandler) GetMap(c echo.Context) error {
	snapshot, err := h.mapUC.GetMap(c.Request().Context(), mapIDParam(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, snapshot)
}

// DeleteMap closes a map instance
func (h *MapHandler) DeleteMap(c echo.Context) error {
	if err := h.mapUC.DeleteMap(c.Request().Context(), mapIDParam(c)); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Map deleted successfully"})
}

// SetViewport records where the client is looking
func (h *MapHandler) SetViewport(c echo.Context) error {
	var req ViewportRequest
	if ok, err := bindAndValidate(c, &req, "Invalid viewport input"); !ok {
		return err
	}

	viewport, err := h.mapUC.SetViewport(c.Request().Context(), mapIDParam(c), entity.Viewport{
		Center: req.Center.Point(),
		Zoom:   req.Zoom,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, viewport)
}

// GetSidebar returns the sidebar projection
func (h *MapHandler) GetSidebar(c echo.Context) error {
	view, err := h.mapUC.GetSidebar(c.Request().Context(), mapIDParam(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}
