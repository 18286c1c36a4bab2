// Package entity contains the core business objects of the project.
package entity

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Point is a geographic coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Equal reports exact coordinate equality (no tolerance).
func (p Point) Equal(other Point) bool {
	return p.Lat == other.Lat && p.Lng == other.Lng
}

// IsFinite reports whether both coordinates are real numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lng) && !math.IsInf(p.Lng, 0)
}

// Orb converts to an orb.Point, which is ordered [lng, lat].
func (p Point) Orb() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// String renders the point the way the sidebar lists it.
func (p Point) String() string {
	return fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lng)
}

// PointFromOrb converts an orb.Point back to a Point.
func PointFromOrb(p orb.Point) Point {
	return Point{Lat: p.Lat(), Lng: p.Lon()}
}

// Viewport is the visible area of a map instance.
type Viewport struct {
	Center Point   `json:"center"`
	Zoom   float64 `json:"zoom"`
}
