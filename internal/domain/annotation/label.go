package annotation

import (
	"fmt"

	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/geodesy"
)

// MeasurementLabel renders the display measurement of a geometry.
func MeasurementLabel(g entity.Geometry) string {
	switch g.Kind {
	case entity.FeatureKindPolyline:
		return fmt.Sprintf("Distance: %.0f m", geodesy.PolylineLength(g.Points))
	case entity.FeatureKindPolygon:
		return areaLabel(geodesy.PolygonArea(g.Points))
	case entity.FeatureKindRectangle:
		if len(g.Points) < 2 {
			return areaLabel(0)
		}

		return areaLabel(geodesy.RectangleArea(g.Points[0], g.Points[1]))
	case entity.FeatureKindCircle:
		return areaLabel(geodesy.CircleArea(g.Radius))
	case entity.FeatureKindMarker:
		if len(g.Points) == 0 {
			return ""
		}
		p := g.Points[0]

		return fmt.Sprintf("Coordinates: %.6f°, %.6f°", p.Lat, p.Lng)
	}

	return ""
}

func areaLabel(squareMeters float64) string {
	return fmt.Sprintf("Area: %.3f km²", squareMeters/1e6)
}

// Anchor returns the point a feature is shared or focused on: the marker
// itself, the circle centre, otherwise the centre of the bounds.
func Anchor(g entity.Geometry) entity.Point {
	switch g.Kind {
	case entity.FeatureKindMarker, entity.FeatureKindCircle:
		if len(g.Points) > 0 {
			return g.Points[0]
		}
	}

	return geodesy.Center(g.Points)
}
