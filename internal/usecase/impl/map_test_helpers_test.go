package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mapnote/config"
	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/repository"
	"mapnote/internal/domain/service"
	"mapnote/internal/infra/persistence/memory"
	mockService "mapnote/internal/mocks/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Workspace: &config.WorkspaceConfig{
			MaxMaps:          2,
			DefaultCenterLat: 25.0330,
			DefaultCenterLng: 121.5654,
			DefaultZoom:      13,
		},
		Geocoding: &config.GeocodingConfig{
			MinQueryLength:  3,
			SuggestionLimit: 5,
			Debounce:        10 * time.Millisecond,
			SearchZoom:      13,
		},
		Worker: &config.WorkerConfig{
			HistorySize: 100,
		},
	}
}

func newTestRepo() repository.MapRepository {
	return memory.NewMapRepository(memory.MapRepositoryParams{
		Config: testConfig(),
		Logger: testLogger(),
	})
}

// newQuietPublisher accepts any number of events.
func newQuietPublisher(t *testing.T) *mockService.MockEventPublisher {
	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().
		PublishMapEvent(mock.Anything, mock.Anything).
		Return(nil).
		Maybe()

	return publisher
}

// expectEvent asserts that exactly one event of the given type is published.
func expectEvent(publisher *mockService.MockEventPublisher, eventType service.MapEventType) {
	publisher.EXPECT().
		PublishMapEvent(mock.Anything, mock.MatchedBy(func(e *service.MapEvent) bool {
			return e.Type == eventType
		})).
		Return(nil).
		Once()
}

func mockAnyEvent() any {
	return mock.AnythingOfType("*service.MapEvent")
}

func createTestMap(t *testing.T, repo repository.MapRepository, center entity.Point) uuid.UUID {
	t.Helper()

	snapshot, err := repo.Create(context.Background(), entity.Viewport{Center: center, Zoom: 13})
	require.NoError(t, err)

	return snapshot.ID
}
