package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"mapnote/internal/delivery/api/response"
	"mapnote/internal/domain/service"
	"mapnote/internal/usecase"
	"mapnote/internal/util"
)

// ShareHandlerParams holds dependencies for ShareHandler, injected by Fx.
type ShareHandlerParams struct {
	fx.In

	ShareUC usecase.ShareUsecase
	Encoder service.FeatureEncoder
	Logger  *slog.Logger
}

// ShareHandler serves QR codes and GeoJSON exports
type ShareHandler struct {
	shareUC     usecase.ShareUsecase
	contentType string
	logger      *slog.Logger
}

// NewShareHandler is the constructor for ShareHandler
func NewShareHandler(params ShareHandlerParams) *ShareHandler {
	return &ShareHandler{
		shareUC:     params.ShareUC,
		contentType: params.Encoder.ContentType(),
		logger:      params.Logger,
	}
}

// FeatureQRCode returns a PNG QR code pointing at the feature
func (h *ShareHandler) FeatureQRCode(c echo.Context) error {
	featureID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid feature ID")
	}

	png, err := h.shareUC.FeatureQRCode(c.Request().Context(), mapIDParam(c), featureID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// RenderGeoJSON returns the current features as a FeatureCollection
func (h *ShareHandler) RenderGeoJSON(c echo.Context) error {
	document, err := h.shareUC.RenderGeoJSON(c.Request().Context(), mapIDParam(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	etag := util.ETag(document)
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}

	return c.Blob(http.StatusOK, h.contentType, document)
}

// ExportMap writes the features to the export bucket
func (h *ShareHandler) ExportMap(c echo.Context) error {
	result, err := h.shareUC.ExportMap(c.Request().Context(), mapIDParam(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, result)
}

// GetExport returns the last exported document
func (h *ShareHandler) GetExport(c echo.Context) error {
	document, err := h.shareUC.LoadExport(c.Request().Context(), mapIDParam(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	etag := util.ETag(document)
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}

	return c.Blob(http.StatusOK, h.contentType, document)
}
