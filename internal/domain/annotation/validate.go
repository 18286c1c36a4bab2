package annotation

import (
	"math"

	"mapnote/internal/domain/entity"
	"mapnote/internal/errors"
)

var minPoints = map[entity.FeatureKind]int{
	entity.FeatureKindMarker:    1,
	entity.FeatureKindPolyline:  2,
	entity.FeatureKindPolygon:   3,
	entity.FeatureKindRectangle: 2,
	entity.FeatureKindCircle:    1,
}

// Validate checks that a geometry carries enough finite coordinates for its kind.
func Validate(g entity.Geometry) error {
	if !g.Kind.Valid() {
		return errors.Wrapf(ErrMalformedGeometry, "unknown kind %q", g.Kind)
	}
	if len(g.Points) < minPoints[g.Kind] {
		return errors.Wrapf(ErrMalformedGeometry, "%s needs at least %d points, got %d", g.Kind, minPoints[g.Kind], len(g.Points))
	}
	for i, p := range g.Points {
		if !p.IsFinite() {
			return errors.Wrapf(ErrMalformedGeometry, "point %d is not finite", i)
		}
	}

	switch g.Kind {
	case entity.FeatureKindCircle:
		if math.IsNaN(g.Radius) || math.IsInf(g.Radius, 0) || g.Radius <= 0 {
			return errors.Wrap(ErrMalformedGeometry, "circle radius must be positive")
		}
	case entity.FeatureKindRectangle:
		a, b := g.Points[0], g.Points[1]
		if a.Lat == b.Lat || a.Lng == b.Lng {
			return errors.Wrap(ErrMalformedGeometry, "rectangle corners must be opposite")
		}
	}

	return nil
}
