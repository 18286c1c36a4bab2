// Package handler contains the echo handlers of the map API.
package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mapnote/internal/delivery/api/response"
	deliverycontext "mapnote/internal/delivery/context"
	"mapnote/internal/domain/entity"
)

// PointRequest is a coordinate in a request body
type PointRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// Point converts the request into a domain point
func (p PointRequest) Point() entity.Point {
	return entity.Point{Lat: p.Lat, Lng: p.Lng}
}

// HealthCheck reports that the server is up
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// mapIDParam returns the map id parsed by the MapScope middleware.
func mapIDParam(c echo.Context) uuid.UUID {
	mapID, _ := deliverycontext.GetMapID(c)

	return mapID
}

// bindAndValidate binds the body into req and runs its validation tags.
// It writes the error response itself and reports whether the handler may continue.
func bindAndValidate(c echo.Context, req any, bindMessage string) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, response.BindingError(c, "INVALID_INPUT", bindMessage)
	}
	if err := c.Validate(req); err != nil {
		return false, response.ValidationError(c, err)
	}

	return true, nil
}
