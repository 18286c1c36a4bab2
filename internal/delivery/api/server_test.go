package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mapnote/config"
	"mapnote/internal/delivery/api/router"
	"mapnote/internal/delivery/api/router/handler"
	"mapnote/internal/domain/entity"
	"mapnote/internal/infra/debounce"
	"mapnote/internal/infra/export"
	"mapnote/internal/infra/persistence/memory"
	"mapnote/internal/infra/qrcode"
	mockService "mapnote/internal/mocks/service"
	"mapnote/internal/usecase/impl"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testServer struct {
	t        *testing.T
	echo     *echo.Echo
	geocoder *mockService.MockGeocoder
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Geocoding.Debounce = 50 * time.Millisecond

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().PublishMapEvent(mock.Anything, mock.Anything).Return(nil).Maybe()
	geocoder := mockService.NewMockGeocoder(t)

	store, err := export.OpenSnapshotStore(ctx, "mem://", "", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	debouncers := debounce.NewRegistry(cfg.Geocoding.Debounce)
	t.Cleanup(debouncers.StopAll)

	repo := memory.NewMapRepository(memory.MapRepositoryParams{Config: cfg, Logger: logger})
	encoder := export.NewGeoJSONEncoder()

	searchUC := impl.NewSearchService(impl.SearchServiceParams{
		Ctx: ctx, Repo: repo, Publisher: publisher, Geocoder: geocoder,
		Debouncers: debouncers, Config: cfg, Logger: logger,
	})
	mapUC := impl.NewMapService(impl.MapServiceParams{
		Repo: repo, Publisher: publisher, SearchUC: searchUC, Config: cfg, Logger: logger,
	})
	directionUC := impl.NewDirectionService(impl.DirectionServiceParams{Repo: repo, Publisher: publisher, Logger: logger})
	annotationUC := impl.NewAnnotationService(impl.AnnotationServiceParams{Repo: repo, Publisher: publisher, Logger: logger})
	shareUC := impl.NewShareService(impl.ShareServiceParams{
		Repo: repo, Publisher: publisher, QRCode: qrcode.NewQRCodeService(128, "M"),
		Encoder: encoder, Store: store, Logger: logger,
	})

	routerParams := router.RouterParams{
		MapHandler:        handler.NewMapHandler(handler.MapHandlerParams{MapUC: mapUC, Logger: logger}),
		DirectionHandler:  handler.NewDirectionHandler(handler.DirectionHandlerParams{DirectionUC: directionUC, Logger: logger}),
		AnnotationHandler: handler.NewAnnotationHandler(handler.AnnotationHandlerParams{AnnotationUC: annotationUC, Logger: logger}),
		SearchHandler:     handler.NewSearchHandler(handler.SearchHandlerParams{SearchUC: searchUC, Logger: logger}),
		ShareHandler:      handler.NewShareHandler(handler.ShareHandlerParams{ShareUC: shareUC, Encoder: encoder, Logger: logger}),
	}

	return &testServer{
		t:        t,
		echo:     NewEcho(cfg, logger, routerParams),
		geocoder: geocoder,
	}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

// call performs the request, checks the status and decodes data into out.
func (s *testServer) call(method, path string, body any, wantStatus int, out any) envelope {
	s.t.Helper()

	rec := s.do(method, path, body)
	require.Equal(s.t, wantStatus, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	if out != nil {
		require.NoError(s.t, json.Unmarshal(env.Data, out))
	}

	return env
}

func (s *testServer) createMap(center entity.Point) string {
	s.t.Helper()

	var snapshot struct {
		ID string `json:"id"`
	}
	s.call(http.MethodPost, "/api/v1/maps", map[string]any{
		"center": map[string]float64{"lat": center.Lat, "lng": center.Lng},
		"zoom":   13,
	}, http.StatusCreated, &snapshot)

	return "/api/v1/maps/" + snapshot.ID
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestServer_RequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "req-123")
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "req-123", env.Meta.RequestID)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
}

func TestServer_DirectionFlow(t *testing.T) {
	s := newTestServer(t)
	base := s.createMap(entity.Point{Lat: 0, Lng: 0})

	var view struct {
		State  string `json:"state"`
		Status string `json:"status"`
	}
	s.call(http.MethodPost, base+"/direction/reference", nil, http.StatusOK, &view)
	assert.Equal(t, "armed", view.State)
	assert.Contains(t, view.Status, "Main point set")

	s.call(http.MethodPost, base+"/direction/mode", nil, http.StatusOK, &view)
	assert.Equal(t, "measuring", view.State)

	var measurement entity.DirectionMeasurement
	s.call(http.MethodPost, base+"/direction/points", map[string]float64{"lat": 0, "lng": 1}, http.StatusCreated, &measurement)
	assert.Equal(t, 1, measurement.Seq)
	assert.Equal(t, "E", measurement.Cardinal)

	var sidebar struct {
		Measurements []struct {
			Direction    string `json:"direction"`
			Distance     string `json:"distance"`
			DeleteAction struct {
				Method string `json:"method"`
				Path   string `json:"path"`
			} `json:"delete_action"`
		} `json:"measurements"`
	}
	s.call(http.MethodGet, base+"/sidebar", nil, http.StatusOK, &sidebar)
	require.Len(t, sidebar.Measurements, 1)
	assert.Equal(t, "E (90.0°)", sidebar.Measurements[0].Direction)
	assert.Equal(t, "111195 meters", sidebar.Measurements[0].Distance)

	action := sidebar.Measurements[0].DeleteAction
	assert.Equal(t, http.MethodDelete, action.Method)
	s.call(action.Method, action.Path, nil, http.StatusOK, nil)

	var direction struct {
		Measurements []entity.DirectionMeasurement `json:"measurements"`
	}
	s.call(http.MethodGet, base+"/direction", nil, http.StatusOK, &direction)
	assert.Empty(t, direction.Measurements)
}

func TestServer_ErrorEnvelope(t *testing.T) {
	s := newTestServer(t)
	base := s.createMap(entity.Point{})

	env := s.call(http.MethodPost, base+"/direction/mode", nil, http.StatusConflict, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NO_REFERENCE_POINT", env.Error.Code)
	assert.Equal(t, "Please set a main point first", env.Error.Message)

	env = s.call(http.MethodGet, "/api/v1/maps/not-a-uuid", nil, http.StatusBadRequest, nil)
	assert.Equal(t, "INVALID_MAP_ID", env.Error.Code)

	env = s.call(http.MethodGet, "/api/v1/maps/6f1c7d2e-0000-4000-8000-000000000000", nil, http.StatusNotFound, nil)
	assert.Equal(t, "MAP_NOT_FOUND", env.Error.Code)

	env = s.call(http.MethodPut, base+"/viewport", map[string]any{
		"center": map[string]float64{"lat": 95, "lng": 0},
		"zoom":   3,
	}, http.StatusBadRequest, nil)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.NotNil(t, env.Error.Details)

	env = s.call(http.MethodDelete, base+"/direction/points/zero", nil, http.StatusBadRequest, nil)
	assert.Equal(t, "INVALID_SEQ", env.Error.Code)
}

func TestServer_FeatureFlow(t *testing.T) {
	s := newTestServer(t)
	base := s.createMap(entity.Point{})

	var draft entity.Draft
	s.call(http.MethodPost, base+"/drafts", map[string]any{
		"kind":   "polyline",
		"points": []map[string]float64{{"lat": 0, "lng": 0}, {"lat": 0, "lng": 1}},
	}, http.StatusCreated, &draft)

	var feature entity.AnnotationFeature
	s.call(http.MethodPost, base+"/drafts/"+draft.ID.String()+"/commit", map[string]string{
		"title": "Walk",
		"color": "#00ff00",
	}, http.StatusCreated, &feature)
	assert.Equal(t, "Walk", feature.Title)
	assert.Equal(t, "Distance: 111195 m", feature.Measurement)

	var features []entity.AnnotationFeature
	s.call(http.MethodGet, base+"/features", nil, http.StatusOK, &features)
	require.Len(t, features, 1)

	rec := s.do(http.MethodGet, base+"/features/"+feature.ID.String()+"/qrcode", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte("\x89PNG"), rec.Body.Bytes()[:4])

	env := s.call(http.MethodGet, base+"/export", nil, http.StatusNotFound, nil)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	var exported struct {
		Key          string `json:"key"`
		FeatureCount int    `json:"feature_count"`
	}
	s.call(http.MethodPost, base+"/export", nil, http.StatusCreated, &exported)
	assert.Equal(t, 1, exported.FeatureCount)
	assert.Contains(t, exported.Key, ".geojson")

	rec = s.do(http.MethodGet, base+"/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.GeoJSONContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Body.String(), `"FeatureCollection"`)
	assert.Contains(t, rec.Body.String(), `"LineString"`)

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	req := httptest.NewRequest(http.MethodGet, base+"/export", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)

	var focus struct {
		Popup string `json:"popup"`
	}
	s.call(http.MethodPost, base+"/features/"+feature.ID.String()+"/focus", nil, http.StatusOK, &focus)
	assert.Equal(t, "Walk\nNo description\nDistance: 111195 m", focus.Popup)

	s.call(http.MethodDelete, base+"/features/"+feature.ID.String(), nil, http.StatusOK, nil)
	env = s.call(http.MethodDelete, base+"/features/"+feature.ID.String(), nil, http.StatusNotFound, nil)
	assert.Equal(t, "FEATURE_NOT_FOUND", env.Error.Code)
}

func TestServer_MalformedDraft(t *testing.T) {
	s := newTestServer(t)
	base := s.createMap(entity.Point{})

	var draft entity.Draft
	s.call(http.MethodPost, base+"/drafts", map[string]any{
		"kind":   "circle",
		"points": []map[string]float64{{"lat": 1, "lng": 1}},
		"radius": 0,
	}, http.StatusCreated, &draft)

	env := s.call(http.MethodPost, base+"/drafts/"+draft.ID.String()+"/commit", map[string]string{}, http.StatusUnprocessableEntity, nil)
	assert.Equal(t, "MALFORMED_GEOMETRY", env.Error.Code)

	env = s.call(http.MethodPost, base+"/drafts/"+draft.ID.String()+"/commit", map[string]string{}, http.StatusConflict, nil)
	assert.Equal(t, "INVALID_DRAFT", env.Error.Code)

	env = s.call(http.MethodPost, base+"/drafts", map[string]any{"kind": "hexagon"}, http.StatusBadRequest, nil)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestServer_Search(t *testing.T) {
	s := newTestServer(t)
	base := s.createMap(entity.Point{})

	s.geocoder.EXPECT().
		Search(mock.Anything, "Tokyo", 1).
		Return([]entity.Place{{DisplayName: "Tokyo, Japan", Lat: 35.6762, Lng: 139.6503}}, nil)

	var result struct {
		Notice   string          `json:"notice"`
		Viewport entity.Viewport `json:"viewport"`
	}
	s.call(http.MethodPost, base+"/search", map[string]string{"query": "Tokyo"}, http.StatusOK, &result)
	assert.Equal(t, "Location found: Tokyo, Japan", result.Notice)
	assert.Equal(t, 13.0, result.Viewport.Zoom)

	env := s.call(http.MethodPost, base+"/search", map[string]string{"query": "  "}, http.StatusBadRequest, nil)
	assert.Equal(t, "EMPTY_SEARCH_QUERY", env.Error.Code)
	assert.Equal(t, "Please enter a location to search", env.Error.Message)
}

func TestServer_SearchSuggestionsAreDebounced(t *testing.T) {
	s := newTestServer(t)
	base := s.createMap(entity.Point{})

	s.geocoder.EXPECT().
		Search(mock.Anything, "Paris", 5).
		Return([]entity.Place{{DisplayName: "Paris, France", Lat: 48.8566, Lng: 2.3522}}, nil).
		Once()

	for _, query := range []string{"Par", "Pari", "Paris"} {
		var accepted struct {
			Scheduled bool `json:"scheduled"`
		}
		s.call(http.MethodPost, base+"/search/input", map[string]string{"query": query}, http.StatusAccepted, &accepted)
		assert.True(t, accepted.Scheduled)
	}

	assert.Eventually(t, func() bool {
		rec := s.do(http.MethodGet, base+"/search/suggestions", nil)
		if rec.Code != http.StatusOK {
			return false
		}

		var env envelope
		var suggestions entity.Suggestions
		if json.Unmarshal(rec.Body.Bytes(), &env) != nil || json.Unmarshal(env.Data, &suggestions) != nil {
			return false
		}

		return suggestions.Query == "Paris" && len(suggestions.Places) == 1
	}, time.Second, 10*time.Millisecond)
}
