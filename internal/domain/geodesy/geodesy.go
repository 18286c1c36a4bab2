// Package geodesy holds the pure geographic math used by direction
// measurements and feature labels.
package geodesy

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"mapnote/internal/domain/entity"
)

// EarthRadiusMeters is the mean Earth radius used for point-to-point distances.
const EarthRadiusMeters = 6371000.0

var cardinals = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Bearing returns the initial great-circle bearing from one point to another,
// in degrees clockwise from true north, normalized to [0, 360).
func Bearing(from, to entity.Point) float64 {
	b := geo.Bearing(from.Orb(), to.Orb())
	b = math.Mod(b+360, 360)
	if b >= 360 || b < 0 || math.IsNaN(b) {
		return 0
	}

	return b
}

// Cardinal maps a bearing onto the nearest of the eight compass points.
// Ties round half up, so 22.5 is NE and 337.5 wraps to N.
func Cardinal(bearing float64) string {
	idx := int(math.Floor(bearing/45+0.5)) % 8
	if idx < 0 {
		idx += 8
	}

	return cardinals[idx]
}

// Distance returns the haversine great-circle distance in meters.
func Distance(a, b entity.Point) float64 {
	if a.Equal(b) {
		return 0
	}

	lat1 := deg2rad(a.Lat)
	lat2 := deg2rad(b.Lat)
	dLat := lat2 - lat1
	dLng := deg2rad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	h = math.Min(1, h)

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

// PolylineLength sums the distances between consecutive vertices.
func PolylineLength(points []entity.Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1], points[i])
	}

	return total
}

// PolygonArea returns the geodesic area of a single ring in square meters.
// The ring does not need to repeat its first vertex.
func PolygonArea(ring []entity.Point) float64 {
	if len(ring) < 3 {
		return 0
	}

	r := make(orb.Ring, 0, len(ring)+1)
	for _, p := range ring {
		r = append(r, p.Orb())
	}
	if !r[0].Equal(r[len(r)-1]) {
		r = append(r, r[0])
	}

	return math.Abs(geo.Area(orb.Polygon{r}))
}

// RectangleArea returns the geodesic area of the box spanned by two opposite corners.
func RectangleArea(a, b entity.Point) float64 {
	bound := orb.Bound{Min: a.Orb(), Max: a.Orb()}.Extend(b.Orb())

	return math.Abs(geo.Area(bound.ToPolygon()))
}

// CircleArea returns the planar area of a circle of the given radius.
func CircleArea(radius float64) float64 {
	return math.Pi * radius * radius
}

// Bounds returns the bounding box of the given points.
func Bounds(points []entity.Point) orb.Bound {
	if len(points) == 0 {
		return orb.Bound{}
	}

	bound := orb.Bound{Min: points[0].Orb(), Max: points[0].Orb()}
	for _, p := range points[1:] {
		bound = bound.Extend(p.Orb())
	}

	return bound
}

// Center returns the centre of the points' bounding box.
func Center(points []entity.Point) entity.Point {
	return entity.PointFromOrb(Bounds(points).Center())
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}
