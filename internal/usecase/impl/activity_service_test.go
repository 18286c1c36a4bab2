package impl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "mapnote/internal/domain/errors"
	"mapnote/internal/domain/service"
	"mapnote/internal/infra/persistence/memory"
	"mapnote/internal/usecase"
)

func createTestActivityService(t *testing.T, historySize int) usecase.ActivityUsecase {
	t.Helper()

	cfg := testConfig()
	cfg.Worker.HistorySize = historySize

	repo := memory.NewActivityRepository(memory.ActivityRepositoryParams{Config: cfg, Logger: testLogger()})

	return NewActivityService(ActivityServiceParams{Repo: repo, Config: cfg, Logger: testLogger()})
}

func TestActivityService_RecordAndHistory(t *testing.T) {
	svc := createTestActivityService(t, 10)
	ctx := context.Background()
	mapID := uuid.New()
	occurred := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	err := svc.Record(ctx, "msg-1", &service.MapEvent{
		RequestID:  "req-1",
		MapID:      mapID.String(),
		Type:       service.EventFeatureCommitted,
		SubjectID:  "feature-1",
		Payload:    map[string]any{"kind": "marker"},
		OccurredAt: occurred,
	})
	require.NoError(t, err)

	err = svc.Record(ctx, "msg-2", &service.MapEvent{MapID: mapID.String(), Type: service.EventViewportChanged})
	require.NoError(t, err)

	history, err := svc.History(ctx, mapID, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, string(service.EventViewportChanged), history[0].Type)

	first := history[1]
	assert.Equal(t, "msg-1", first.MessageID)
	assert.Equal(t, "feature-1", first.SubjectID)
	assert.Equal(t, "req-1", first.RequestID)
	assert.Equal(t, occurred, first.OccurredAt)
	assert.False(t, first.ReceivedAt.IsZero())
}

func TestActivityService_RedeliveryIsIgnored(t *testing.T) {
	svc := createTestActivityService(t, 10)
	ctx := context.Background()
	event := &service.MapEvent{MapID: uuid.NewString(), Type: service.EventFeaturesCleared}

	require.NoError(t, svc.Record(ctx, "msg-1", event))
	require.NoError(t, svc.Record(ctx, "msg-1", event))

	mapID, err := uuid.Parse(event.MapID)
	require.NoError(t, err)

	history, err := svc.History(ctx, mapID, 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestActivityService_RejectsInvalidEvent(t *testing.T) {
	svc := createTestActivityService(t, 10)
	ctx := context.Background()

	tests := []struct {
		name  string
		event *service.MapEvent
	}{
		{name: "nil event", event: nil},
		{name: "missing type", event: &service.MapEvent{MapID: uuid.NewString()}},
		{name: "bad map id", event: &service.MapEvent{MapID: "nope", Type: service.EventViewportChanged}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Record(ctx, "msg", tt.event)
			require.Error(t, err)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "INVALID_EVENT", appErr.ErrorCode())
		})
	}
}

func TestActivityService_HistoryLimitIsCapped(t *testing.T) {
	svc := createTestActivityService(t, 3)
	ctx := context.Background()
	mapID := uuid.New()

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, svc.Record(ctx, id, &service.MapEvent{MapID: mapID.String(), Type: service.EventMeasurementRecorded}))
	}

	history, err := svc.History(ctx, mapID, 50)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "e", history[0].MessageID)

	history, err = svc.History(ctx, mapID, 1)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
