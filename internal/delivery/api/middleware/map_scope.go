package middleware

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mapnote/internal/delivery/api/response"
	deliverycontext "mapnote/internal/delivery/context"
	"mapnote/internal/domain/constants"
)

// MapScope parses the :mapId path parameter once for every workspace route
// and tags the request-scoped logger with it.
func MapScope(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		mapID, err := uuid.Parse(c.Param(constants.ParamMapID))
		if err != nil {
			return response.BadRequest(c, "INVALID_MAP_ID", "Invalid map ID")
		}

		deliverycontext.SetMapID(c, mapID)

		ctx := c.Request().Context()
		if logger := deliverycontext.GetLogger(ctx); logger != nil {
			ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("map_id", mapID.String())))
			c.SetRequest(c.Request().WithContext(ctx))
		}

		return next(c)
	}
}
