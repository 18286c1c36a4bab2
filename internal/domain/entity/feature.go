package entity

import (
	"time"

	"github.com/google/uuid"
)

// FeatureKind tags the geometry variant of an annotation.
type FeatureKind string

const (
	FeatureKindMarker    FeatureKind = "marker"
	FeatureKindPolyline  FeatureKind = "polyline"
	FeatureKindPolygon   FeatureKind = "polygon"
	FeatureKindRectangle FeatureKind = "rectangle"
	FeatureKindCircle    FeatureKind = "circle"
)

// Valid reports whether k is one of the known kinds.
func (k FeatureKind) Valid() bool {
	switch k {
	case FeatureKindMarker, FeatureKindPolyline, FeatureKindPolygon, FeatureKindRectangle, FeatureKindCircle:
		return true
	}

	return false
}

// Geometry is the kind-specific shape payload:
//   - marker: Points[0]
//   - polyline: ordered vertices
//   - polygon: outer ring vertices, closing vertex optional
//   - rectangle: two opposite corners
//   - circle: Points[0] is the centre, Radius in meters
type Geometry struct {
	Kind   FeatureKind `json:"kind"`
	Points []Point     `json:"points"`
	Radius float64     `json:"radius,omitempty"`
}

// Clone returns a deep copy so callers never share the vertex slice.
func (g Geometry) Clone() Geometry {
	points := make([]Point, len(g.Points))
	copy(points, g.Points)
	g.Points = points

	return g
}

// AnnotationFeature is a committed, user-drawn shape with its metadata.
type AnnotationFeature struct {
	ID          uuid.UUID `json:"id"`
	Geometry    Geometry  `json:"geometry"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Measurement string    `json:"measurement"` // Cached display label, refreshed on geometry edits
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Draft is a just-drawn shape waiting for the user to save or cancel it.
type Draft struct {
	ID        uuid.UUID `json:"id"`
	Geometry  Geometry  `json:"geometry"`
	CreatedAt time.Time `json:"created_at"`
}

// Place is a single geocoding hit.
type Place struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// Point returns the place coordinate.
func (p Place) Point() Point {
	return Point{Lat: p.Lat, Lng: p.Lng}
}

// Suggestions is the last suggestion list applied to a map's search box.
type Suggestions struct {
	Query  string  `json:"query"`
	Seq    uint64  `json:"seq"` // Sequence number of the fetch that produced this list
	Places []Place `json:"places"`
	Error  string  `json:"error,omitempty"`
}
