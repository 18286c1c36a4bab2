package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mapnote/internal/domain/entity"
	domainerrors "mapnote/internal/domain/errors"
	"mapnote/internal/domain/repository"
	"mapnote/internal/domain/service"
	"mapnote/internal/domain/workspace"
	mockService "mapnote/internal/mocks/service"
	"mapnote/internal/usecase"
)

// shareServiceFixtures holds all test dependencies for share service tests.
type shareServiceFixtures struct {
	service   usecase.ShareUsecase
	repo      repository.MapRepository
	publisher *mockService.MockEventPublisher
	qrcode    *mockService.MockQRCodeService
	encoder   *mockService.MockFeatureEncoder
	store     *mockService.MockSnapshotStore
	mapID     uuid.UUID
}

func createTestShareService(t *testing.T) shareServiceFixtures {
	repo := newTestRepo()
	publisher := mockService.NewMockEventPublisher(t)
	qrcode := mockService.NewMockQRCodeService(t)
	encoder := mockService.NewMockFeatureEncoder(t)
	store := mockService.NewMockSnapshotStore(t)

	svc := NewShareService(ShareServiceParams{
		Repo:      repo,
		Publisher: publisher,
		QRCode:    qrcode,
		Encoder:   encoder,
		Store:     store,
		Logger:    testLogger(),
	})

	return shareServiceFixtures{
		service:   svc,
		repo:      repo,
		publisher: publisher,
		qrcode:    qrcode,
		encoder:   encoder,
		store:     store,
		mapID:     createTestMap(t, repo, entity.Point{}),
	}
}

// seedFeature commits a feature directly through the workspace.
func (fx shareServiceFixtures) seedFeature(t *testing.T, g entity.Geometry) entity.AnnotationFeature {
	t.Helper()

	var feature entity.AnnotationFeature
	err := fx.repo.Execute(context.Background(), fx.mapID, func(ws *workspace.Workspace) error {
		draft := ws.Registry.BeginDraft(g)
		var err error
		feature, err = ws.Registry.Commit(draft.ID, "Shared", "", "")

		return err
	})
	require.NoError(t, err)

	return feature
}

func TestShareService_FeatureQRCode_UsesAnchor(t *testing.T) {
	fx := createTestShareService(t)
	ctx := context.Background()

	circle := fx.seedFeature(t, entity.Geometry{
		Kind:   entity.FeatureKindCircle,
		Points: []entity.Point{{Lat: 35.6762, Lng: 139.6503}},
		Radius: 500,
	})

	png := []byte{0x89, 'P', 'N', 'G'}
	fx.qrcode.EXPECT().
		GenerateLocationQR(entity.Point{Lat: 35.6762, Lng: 139.6503}).
		Return(png, nil)

	got, err := fx.service.FeatureQRCode(ctx, fx.mapID, circle.ID)
	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestShareService_FeatureQRCode_NotFound(t *testing.T) {
	fx := createTestShareService(t)

	_, err := fx.service.FeatureQRCode(context.Background(), fx.mapID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrFeatureNotFound)
}

func TestShareService_RenderGeoJSON(t *testing.T) {
	fx := createTestShareService(t)
	feature := fx.seedFeature(t, markerGeometry(1, 2))

	fx.encoder.EXPECT().
		Encode(mock.MatchedBy(func(features []entity.AnnotationFeature) bool {
			return len(features) == 1 && features[0].ID == feature.ID
		})).
		Return([]byte(`{"type":"FeatureCollection"}`), nil)

	doc, err := fx.service.RenderGeoJSON(context.Background(), fx.mapID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection"}`, string(doc))
}

func TestShareService_ExportMap(t *testing.T) {
	fx := createTestShareService(t)
	ctx := context.Background()
	fx.seedFeature(t, markerGeometry(1, 2))
	fx.seedFeature(t, markerGeometry(3, 4))

	doc := []byte(`{"type":"FeatureCollection","features":[]}`)
	key := "maps/" + fx.mapID.String() + ".geojson"

	fx.encoder.EXPECT().Encode(mock.Anything).Return(doc, nil)
	fx.store.EXPECT().Save(ctx, fx.mapID.String(), doc).Return(key, nil)
	expectEvent(fx.publisher, service.EventMapSnapshotExported)

	result, err := fx.service.ExportMap(ctx, fx.mapID)
	require.NoError(t, err)
	assert.Equal(t, key, result.Key)
	assert.Equal(t, 2, result.FeatureCount)
}

func TestShareService_ExportMap_StoreFailure(t *testing.T) {
	fx := createTestShareService(t)
	ctx := context.Background()

	fx.encoder.EXPECT().Encode(mock.Anything).Return([]byte(`{}`), nil)
	fx.store.EXPECT().Save(ctx, fx.mapID.String(), mock.Anything).Return("", errors.New("bucket unavailable"))

	_, err := fx.service.ExportMap(ctx, fx.mapID)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "EXPORT_FAILED", appErr.ErrorCode())
}

func TestShareService_LoadExport(t *testing.T) {
	fx := createTestShareService(t)
	ctx := context.Background()

	fx.store.EXPECT().Load(ctx, fx.mapID.String()).Return([]byte(`{}`), nil).Once()
	doc, err := fx.service.LoadExport(ctx, fx.mapID)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), doc)

	fx.store.EXPECT().
		Load(ctx, fx.mapID.String()).
		Return(nil, errors.Wrap(service.ErrSnapshotNotFound, "read maps/x.geojson")).
		Once()
	_, err = fx.service.LoadExport(ctx, fx.mapID)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.ErrorCode())
}
