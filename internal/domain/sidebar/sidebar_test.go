package sidebar

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapnote/internal/domain/annotation"
	"mapnote/internal/domain/direction"
	"mapnote/internal/domain/entity"
)

func TestProject_Features(t *testing.T) {
	registry := annotation.NewRegistry()
	draft := registry.BeginDraft(entity.Geometry{Kind: entity.FeatureKindMarker, Points: []entity.Point{{Lat: 1, Lng: 2}}})
	marker, err := registry.Commit(draft.ID, "Cafe", "", "")
	require.NoError(t, err)
	draft = registry.BeginDraft(entity.Geometry{Kind: entity.FeatureKindCircle, Points: []entity.Point{{Lat: 1, Lng: 2}}, Radius: 10})
	_, err = registry.Commit(draft.ID, "", "Zone", "#123456")
	require.NoError(t, err)

	mapID := uuid.New()
	view := Project(registry.List(), direction.NewSession(), MapRoutes{MapID: mapID})

	require.Len(t, view.Features, 2)
	assert.Equal(t, "map-pin", view.Features[0].Icon)
	assert.Equal(t, NoDescription, view.Features[0].Description)
	assert.Equal(t, "Cafe", view.Features[0].Title)
	assert.Equal(t, DeleteAction{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/api/v1/maps/%s/features/%s", mapID, marker.ID),
	}, view.Features[0].DeleteAction)

	assert.Equal(t, "vector-square", view.Features[1].Icon)
	assert.Equal(t, "Zone", view.Features[1].Description)
	assert.Equal(t, annotation.DefaultTitle, view.Features[1].Title)

	assert.Equal(t, direction.StateInactive, view.DirectionState)
	assert.Empty(t, view.Status)
	assert.Empty(t, view.Measurements)
}

func TestProject_MeasurementsFollowRenumbering(t *testing.T) {
	session := direction.NewSession()
	session.SetReferencePoint(entity.Point{Lat: 0, Lng: 0})
	_, err := session.ToggleMeasuring()
	require.NoError(t, err)

	view := Project(nil, session, MapRoutes{MapID: uuid.New()})
	assert.Equal(t, StatusMeasuringEmpty, view.Status)

	for _, p := range []entity.Point{{Lat: 0, Lng: 1}, {Lat: 1, Lng: 0}, {Lat: 1, Lng: 1}} {
		_, err = session.RecordPoint(p)
		require.NoError(t, err)
	}
	_, err = session.DeleteMeasurement(1)
	require.NoError(t, err)

	mapID := uuid.New()
	view = Project(nil, session, MapRoutes{MapID: mapID})

	require.Len(t, view.Measurements, 2)
	first := view.Measurements[0]
	assert.Equal(t, 1, first.Seq)
	assert.Equal(t, "Point 1", first.Label)
	assert.Equal(t, "1.000000, 0.000000", first.Coordinates)
	assert.Equal(t, "N (0.0°)", first.Direction)
	assert.Equal(t, "111195 meters", first.Distance)
	assert.Equal(t, fmt.Sprintf("/api/v1/maps/%s/direction/points/1", mapID), first.DeleteAction.Path)
	assert.Equal(t, 2, view.Measurements[1].Seq)
	assert.Empty(t, view.Status)
}

func TestProject_ArmedStatus(t *testing.T) {
	session := direction.NewSession()
	session.SetReferencePoint(entity.Point{})

	view := Project(nil, session, MapRoutes{})

	assert.Equal(t, StatusArmed, view.Status)
	assert.Equal(t, direction.StateArmed, view.DirectionState)
}

func TestIcon(t *testing.T) {
	assert.Equal(t, "route", Icon(entity.FeatureKindPolyline))
	assert.Equal(t, "draw-polygon", Icon(entity.FeatureKindPolygon))
	assert.Equal(t, "vector-square", Icon(entity.FeatureKindRectangle))
}
