package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapnote/internal/domain/direction"
	"mapnote/internal/domain/entity"
	domainerrors "mapnote/internal/domain/errors"
	"mapnote/internal/domain/repository"
	"mapnote/internal/domain/service"
	mockService "mapnote/internal/mocks/service"
	"mapnote/internal/usecase"
)

// mapServiceFixtures holds all test dependencies for map service tests.
type mapServiceFixtures struct {
	service    usecase.MapUsecase
	repo       repository.MapRepository
	publisher  *mockService.MockEventPublisher
	debouncers *recordingDebouncers
}

func createTestMapService(t *testing.T) mapServiceFixtures {
	repo := newTestRepo()
	publisher := mockService.NewMockEventPublisher(t)
	debouncers := newRecordingDebouncers()
	searchUC := NewSearchService(SearchServiceParams{
		Ctx:        context.Background(),
		Repo:       repo,
		Publisher:  publisher,
		Geocoder:   mockService.NewMockGeocoder(t),
		Debouncers: debouncers,
		Config:     testConfig(),
		Logger:     testLogger(),
	})

	svc := NewMapService(MapServiceParams{
		Repo:      repo,
		Publisher: publisher,
		SearchUC:  searchUC,
		Config:    testConfig(),
		Logger:    testLogger(),
	})

	return mapServiceFixtures{
		service:    svc,
		repo:       repo,
		publisher:  publisher,
		debouncers: debouncers,
	}
}

func TestMapService_CreateMap_DefaultViewport(t *testing.T) {
	fx := createTestMapService(t)

	snapshot, err := fx.service.CreateMap(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, entity.Point{Lat: 25.0330, Lng: 121.5654}, snapshot.Viewport.Center)
	assert.Equal(t, 13.0, snapshot.Viewport.Zoom)
	assert.Equal(t, direction.StateInactive, snapshot.State)
	assert.Empty(t, snapshot.Features)
	assert.Nil(t, snapshot.Draft)
}

func TestMapService_CreateMap_CustomViewport(t *testing.T) {
	fx := createTestMapService(t)

	center := entity.Point{Lat: 51.5, Lng: -0.12}
	zoom := 9.0
	snapshot, err := fx.service.CreateMap(context.Background(), &usecase.CreateMapInput{Center: &center, Zoom: &zoom})
	require.NoError(t, err)
	assert.Equal(t, center, snapshot.Viewport.Center)
	assert.Equal(t, zoom, snapshot.Viewport.Zoom)
}

func TestMapService_CreateMap_LimitReached(t *testing.T) {
	fx := createTestMapService(t)
	ctx := context.Background()

	_, err := fx.service.CreateMap(ctx, nil)
	require.NoError(t, err)
	_, err = fx.service.CreateMap(ctx, nil)
	require.NoError(t, err)

	_, err = fx.service.CreateMap(ctx, nil)
	assert.ErrorIs(t, err, domainerrors.ErrMapLimitReached)
}

func TestMapService_GetMap_NotFound(t *testing.T) {
	fx := createTestMapService(t)

	_, err := fx.service.GetMap(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrMapNotFound)
}

func TestMapService_ListMaps(t *testing.T) {
	fx := createTestMapService(t)
	ctx := context.Background()

	first, err := fx.service.CreateMap(ctx, nil)
	require.NoError(t, err)
	second, err := fx.service.CreateMap(ctx, nil)
	require.NoError(t, err)

	ids, err := fx.service.ListMaps(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, ids)
}

func TestMapService_DeleteMap_ForgetsSearch(t *testing.T) {
	fx := createTestMapService(t)
	ctx := context.Background()

	snapshot, err := fx.service.CreateMap(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, fx.service.DeleteMap(ctx, snapshot.ID))
	assert.Contains(t, fx.debouncers.removed, snapshot.ID.String())

	_, err = fx.service.GetMap(ctx, snapshot.ID)
	assert.ErrorIs(t, err, domainerrors.ErrMapNotFound)

	err = fx.service.DeleteMap(ctx, snapshot.ID)
	assert.ErrorIs(t, err, domainerrors.ErrMapNotFound)
}

func TestMapService_SetViewport(t *testing.T) {
	fx := createTestMapService(t)
	ctx := context.Background()
	mapID := createTestMap(t, fx.repo, entity.Point{})

	expectEvent(fx.publisher, service.EventViewportChanged)

	viewport := entity.Viewport{Center: entity.Point{Lat: 1, Lng: 2}, Zoom: 7}
	got, err := fx.service.SetViewport(ctx, mapID, viewport)
	require.NoError(t, err)
	assert.Equal(t, viewport, *got)

	snapshot, err := fx.service.GetMap(ctx, mapID)
	require.NoError(t, err)
	assert.Equal(t, viewport, snapshot.Viewport)
}

func TestMapService_GetSidebar_Empty(t *testing.T) {
	fx := createTestMapService(t)
	mapID := createTestMap(t, fx.repo, entity.Point{})

	view, err := fx.service.GetSidebar(context.Background(), mapID)
	require.NoError(t, err)
	assert.Equal(t, direction.StateInactive, view.DirectionState)
	assert.Empty(t, view.Features)
	assert.Empty(t, view.Measurements)
}
