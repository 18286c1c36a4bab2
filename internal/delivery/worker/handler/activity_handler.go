package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"mapnote/internal/delivery/api/response"
	"mapnote/internal/domain/constants"
	"mapnote/internal/usecase"
)

// ActivityHandlerParams holds dependencies for the ActivityHandler
type ActivityHandlerParams struct {
	fx.In

	ActivityUC usecase.ActivityUsecase
	Logger     *slog.Logger
}

// ActivityHandler serves the recorded event history of a map
type ActivityHandler struct {
	activityUC usecase.ActivityUsecase
	logger     *slog.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(params ActivityHandlerParams) *ActivityHandler {
	return &ActivityHandler{
		activityUC: params.ActivityUC,
		logger:     params.Logger,
	}
}

// GetActivity lists the newest events of a map; ?limit= narrows the list
func (h *ActivityHandler) GetActivity(c echo.Context) error {
	mapID, err := uuid.Parse(c.Param(constants.ParamMapID))
	if err != nil {
		return response.BadRequest(c, "INVALID_MAP_ID", "Invalid map ID")
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return response.BadRequest(c, "INVALID_LIMIT", "limit must be a non-negative integer")
		}
	}

	activities, err := h.activityUC.History(c.Request().Context(), mapID, limit)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"activities": activities})
}
