package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"mapnote/internal/delivery/api/response"
	"mapnote/internal/usecase"
)

// SearchHandlerParams holds dependencies for SearchHandler, injected by Fx.
type SearchHandlerParams struct {
	fx.In

	SearchUC usecase.SearchUsecase
	Logger   *slog.Logger
}

// SearchHandler serves the location search box
type SearchHandler struct {
	searchUC usecase.SearchUsecase
	logger   *slog.Logger
}

// NewSearchHandler is the constructor for SearchHandler
func NewSearchHandler(params SearchHandlerParams) *SearchHandler {
	return &SearchHandler{
		searchUC: params.SearchUC,
		logger:   params.Logger,
	}
}

// SearchRequest carries the text typed into the search box
type SearchRequest struct {
	Query string `json:"query" validate:"max=256"`
}

// SelectPlaceRequest represents a picked suggestion
type SelectPlaceRequest struct {
	DisplayName string  `json:"displayName" validate:"max=512"`
	Lat         float64 `json:"lat" validate:"latitude"`
	Lng         float64 `json:"lng" validate:"longitude"`
}

// SubmitInput accepts a keystroke; suggestions are fetched after the quiet window
func (h *SearchHandler) SubmitInput(c echo.Context) error {
	var req SearchRequest
	if ok, err := bindAndValidate(c, &req, "Invalid search input"); !ok {
		return err
	}

	accepted, err := h.searchUC.SubmitInput(c.Request().Context(), mapIDParam(c), req.Query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusAccepted, accepted)
}

// Suggestions returns the last applied suggestion list
func (h *SearchHandler) Suggestions(c echo.Context) error {
	suggestions, err := h.searchUC.Suggestions(c.Request().Context(), mapIDParam(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, suggestions)
}

// Search resolves the query and recentres the map on the best match
func (h *SearchHandler) Search(c echo.Context) error {
	var req SearchRequest
	if ok, err := bindAndValidate(c, &req, "Invalid search input"); !ok {
		return err
	}

	result, err := h.searchUC.Search(c.Request().Context(), mapIDParam(c), req.Query)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

// SelectPlace recentres the map on a suggestion without another lookup
func (h *SearchHandler) SelectPlace(c echo.Context) error {
	var req SelectPlaceRequest
	if ok, err := bindAndValidate(c, &req, "Invalid place input"); !ok {
		return err
	}

	result, err := h.searchUC.SelectPlace(c.Request().Context(), mapIDParam(c), &usecase.SelectPlaceInput{
		DisplayName: req.DisplayName,
		Lat:         req.Lat,
		Lng:         req.Lng,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}
