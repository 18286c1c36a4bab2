// Package sidebar projects the annotation registry and the direction session
// into the list entries shown next to the map.
package sidebar

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"mapnote/internal/domain/direction"
	"mapnote/internal/domain/entity"
)

const (
	NoDescription = "No description"

	StatusArmed          = `Main point set. Click "Find Direction" and then click on the map.`
	StatusMeasuringEmpty = "Click on the map to measure direction from main point."
)

// DeleteAction is the request a client issues to remove the entry.
type DeleteAction struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// FeatureEntry is one committed feature in the list.
type FeatureEntry struct {
	ID           uuid.UUID          `json:"id"`
	Kind         entity.FeatureKind `json:"kind"`
	Icon         string             `json:"icon"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Color        string             `json:"color"`
	Measurement  string             `json:"measurement"`
	DeleteAction DeleteAction       `json:"delete_action"`
}

// MeasurementEntry is one direction measurement in the list.
type MeasurementEntry struct {
	ID           uuid.UUID    `json:"id"`
	Seq          int          `json:"seq"`
	Label        string       `json:"label"`
	Coordinates  string       `json:"coordinates"`
	Direction    string       `json:"direction"`
	Distance     string       `json:"distance"`
	DeleteAction DeleteAction `json:"delete_action"`
}

// View is the whole sidebar.
type View struct {
	DirectionState direction.State    `json:"direction_state"`
	Status         string             `json:"status"`
	Features       []FeatureEntry     `json:"features"`
	Measurements   []MeasurementEntry `json:"measurements"`
}

// Routes builds delete paths for the owning map.
type Routes interface {
	FeaturePath(id uuid.UUID) string
	MeasurementPath(seq int) string
}

// Project builds the sidebar for the given features and session.
func Project(features []entity.AnnotationFeature, session *direction.Session, routes Routes) View {
	view := View{
		DirectionState: session.State(),
		Status:         statusText(session),
		Features:       make([]FeatureEntry, 0, len(features)),
		Measurements:   []MeasurementEntry{},
	}

	for _, f := range features {
		view.Features = append(view.Features, FeatureEntry{
			ID:          f.ID,
			Kind:        f.Geometry.Kind,
			Icon:        Icon(f.Geometry.Kind),
			Title:       f.Title,
			Description: describe(f.Description),
			Color:       f.Color,
			Measurement: f.Measurement,
			DeleteAction: DeleteAction{
				Method: http.MethodDelete,
				Path:   routes.FeaturePath(f.ID),
			},
		})
	}

	for _, m := range session.Measurements() {
		view.Measurements = append(view.Measurements, MeasurementEntry{
			ID:          m.ID,
			Seq:         m.Seq,
			Label:       fmt.Sprintf("Point %d", m.Seq),
			Coordinates: m.Target.String(),
			Direction:   fmt.Sprintf("%s (%.1f°)", m.Cardinal, m.Bearing),
			Distance:    fmt.Sprintf("%.0f meters", m.DistanceMeters),
			DeleteAction: DeleteAction{
				Method: http.MethodDelete,
				Path:   routes.MeasurementPath(m.Seq),
			},
		})
	}

	return view
}

// Icon returns the sidebar icon name for a feature kind.
func Icon(kind entity.FeatureKind) string {
	switch kind {
	case entity.FeatureKindPolyline:
		return "route"
	case entity.FeatureKindPolygon:
		return "draw-polygon"
	case entity.FeatureKindMarker:
		return "map-pin"
	case entity.FeatureKindRectangle, entity.FeatureKindCircle:
		return "vector-square"
	}

	return ""
}

func describe(description string) string {
	if description == "" {
		return NoDescription
	}

	return description
}

func statusText(session *direction.Session) string {
	switch session.State() {
	case direction.StateArmed:
		return StatusArmed
	case direction.StateMeasuring:
		if len(session.Measurements()) == 0 {
			return StatusMeasuringEmpty
		}
	}

	return ""
}

// MapRoutes resolves delete paths under /api/v1/maps/:mapId.
type MapRoutes struct {
	MapID uuid.UUID
}

// FeaturePath implements Routes.
func (r MapRoutes) FeaturePath(id uuid.UUID) string {
	return fmt.Sprintf("/api/v1/maps/%s/features/%s", r.MapID, id)
}

// MeasurementPath implements Routes.
func (r MapRoutes) MeasurementPath(seq int) string {
	return fmt.Sprintf("/api/v1/maps/%s/direction/points/%d", r.MapID, seq)
}
