package geodesy

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/maptile"

	"mapnote/internal/domain/entity"
)

const (
	tileSize = 256.0

	// Nominal client viewport used when fitting bounds
	ViewportWidthPx  = 1024.0
	ViewportHeightPx = 768.0
	MaxZoom          = 18
)

// GeometryBounds returns the bounding box of a shape, including a circle's radius.
func GeometryBounds(g entity.Geometry) orb.Bound {
	if g.Kind == entity.FeatureKindCircle && len(g.Points) > 0 {
		return geo.NewBoundAroundPoint(g.Points[0].Orb(), g.Radius)
	}

	return Bounds(g.Points)
}

// FitZoom returns the largest zoom level at which the bound fits in a viewport
// of the given pixel size, as a slippy-map client would fit it.
func FitZoom(bound orb.Bound, widthPx, heightPx float64) float64 {
	for z := MaxZoom; z > 0; z-- {
		zoom := maptile.Zoom(z)
		nw := maptile.Fraction(orb.Point{bound.Min.Lon(), bound.Max.Lat()}, zoom)
		se := maptile.Fraction(orb.Point{bound.Max.Lon(), bound.Min.Lat()}, zoom)

		w := (se.X() - nw.X()) * tileSize
		h := (se.Y() - nw.Y()) * tileSize
		if w <= widthPx && h <= heightPx {
			return float64(z)
		}
	}

	return 0
}
