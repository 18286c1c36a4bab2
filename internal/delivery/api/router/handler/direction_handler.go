package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"mapnote/internal/delivery/api/response"
	"mapnote/internal/usecase"
)

// DirectionHandlerParams holds dependencies for DirectionHandler, injected by Fx.
type DirectionHandlerParams struct {
	fx.In

	DirectionUC usecase.DirectionUsecase
	Logger      *slog.Logger
}

// DirectionHandler serves the reference point and direction measurements
type DirectionHandler struct {
	directionUC usecase.DirectionUsecase
	logger      *slog.Logger
}

// NewDirectionHandler is the constructor for DirectionHandler
func NewDirectionHandler(params DirectionHandlerParams) *DirectionHandler {
	return &DirectionHandler{
		directionUC: params.DirectionUC,
		logger:      params.Logger,
	}
}

// ToggleReference places or clears the main point
func (h *DirectionHandler) ToggleReference(c echo.Context) error {
	view, err := h.directionUC.ToggleReference(c.Request().Context(), mapIDParam(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}

// DragReference moves the main point after a drag ends
func (h *DirectionHandler) DragReference(c echo.Context) error {
	var req PointRequest
	if ok, err := bindAndValidate(c, &req, "Invalid point input"); !ok {
		return err
	}

	view, err := h.directionUC.DragReference(c.Request().Context(), mapIDParam(c), req.Point())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}

// ToggleMeasuring switches the "Find Direction" mode
func (h *DirectionHandler) ToggleMeasuring(c echo.Context) error {
	view, err := h.directionUC.ToggleMeasuring(c.Request().Context(), mapIDParam(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}

// RecordPoint handles a map click while measuring
func (h *DirectionHandler) RecordPoint(c echo.Context) error {
	var req PointRequest
	if ok, err := bindAndValidate(c, &req, "Invalid point input"); !ok {
		return err
	}

	measurement, err := h.directionUC.RecordPoint(c.Request().Context(), mapIDParam(c), req.Point())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, measurement)
}

// DeleteMeasurement removes the measurement shown as :seq
func (h *DirectionHandler) DeleteMeasurement(c echo.Context) error {
	seq, err := strconv.Atoi(c.Param("seq"))
	if err != nil || seq < 1 {
		return response.BadRequest(c, "INVALID_SEQ", "Invalid measurement number")
	}

	view, err := h.directionUC.DeleteMeasurement(c.Request().Context(), mapIDParam(c), seq)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}

// GetDirection returns the session view
func (h *DirectionHandler) GetDirection(c echo.Context) error {
	view, err := h.directionUC.GetDirection(c.Request().Context(), mapIDParam(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}
