// Package export renders map features as GeoJSON and stores the documents in
// a blob bucket.
package export

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/geodesy"
	"mapnote/internal/domain/service"
)

// GeoJSONContentType is the media type of exported documents
const GeoJSONContentType = "application/geo+json"

type geoJSONEncoder struct{}

// NewGeoJSONEncoder returns the GeoJSON FeatureEncoder
func NewGeoJSONEncoder() service.FeatureEncoder {
	return geoJSONEncoder{}
}

func (geoJSONEncoder) Encode(features []entity.AnnotationFeature) ([]byte, error) {
	return Marshal(features)
}

func (geoJSONEncoder) ContentType() string {
	return GeoJSONContentType
}

// FeatureCollection converts committed features into a GeoJSON collection.
// Circles have no GeoJSON geometry and are written as their centre point with
// a radius property.
func FeatureCollection(features []entity.AnnotationFeature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		gf := geojson.NewFeature(toGeometry(f.Geometry))
		gf.ID = f.ID.String()
		gf.Properties["title"] = f.Title
		gf.Properties["description"] = f.Description
		gf.Properties["color"] = f.Color
		gf.Properties["kind"] = string(f.Geometry.Kind)
		gf.Properties["measurement"] = f.Measurement
		if f.Geometry.Kind == entity.FeatureKindCircle {
			gf.Properties["radius"] = f.Geometry.Radius
		}
		fc.Append(gf)
	}

	return fc
}

// Marshal encodes the features as a GeoJSON document.
func Marshal(features []entity.AnnotationFeature) ([]byte, error) {
	data, err := FeatureCollection(features).MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "marshal geojson")
	}

	return data, nil
}

func toGeometry(g entity.Geometry) orb.Geometry {
	switch g.Kind {
	case entity.FeatureKindMarker, entity.FeatureKindCircle:
		return g.Points[0].Orb()
	case entity.FeatureKindPolyline:
		ls := make(orb.LineString, 0, len(g.Points))
		for _, p := range g.Points {
			ls = append(ls, p.Orb())
		}

		return ls
	case entity.FeatureKindRectangle:
		return geodesy.Bounds(g.Points).ToPolygon()
	case entity.FeatureKindPolygon:
		ring := make(orb.Ring, 0, len(g.Points)+1)
		for _, p := range g.Points {
			ring = append(ring, p.Orb())
		}
		if !ring.Closed() {
			ring = append(ring, ring[0])
		}

		return orb.Polygon{ring}
	}

	return orb.Collection{}
}
