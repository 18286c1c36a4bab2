// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	deliverycontext "mapnote/internal/delivery/context"
	"mapnote/internal/domain/annotation"
	"mapnote/internal/domain/direction"
	domainerrors "mapnote/internal/domain/errors"
	"mapnote/internal/domain/repository"
	"mapnote/internal/domain/service"
	"mapnote/internal/domain/workspace"
)

// mapBase carries what every map-scoped service needs: serialized access to a
// workspace and best-effort event publishing.
type mapBase struct {
	repo      repository.MapRepository
	publisher service.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

func newMapBase(repo repository.MapRepository, publisher service.EventPublisher, logger *slog.Logger) mapBase {
	return mapBase{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (b *mapBase) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, b.logger)
}

// execute runs fn under the map's lock and translates domain failures into AppErrors.
func (b *mapBase) execute(ctx context.Context, mapID uuid.UUID, fn func(ws *workspace.Workspace) error) error {
	if err := b.repo.Execute(ctx, mapID, fn); err != nil {
		return toAppError(err)
	}

	return nil
}

// publish sends a map event; failures are logged and never reach the caller.
func (b *mapBase) publish(ctx context.Context, mapID uuid.UUID, eventType service.MapEventType, subjectID string, payload map[string]any) {
	event := &service.MapEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		MapID:      mapID.String(),
		Type:       eventType,
		SubjectID:  subjectID,
		Payload:    payload,
		OccurredAt: b.now().UTC(),
	}

	if err := b.publisher.PublishMapEvent(ctx, event); err != nil {
		b.log(ctx).Warn("Failed to publish map event",
			slog.String("map_id", event.MapID),
			slog.String("type", string(eventType)),
			slog.Any("error", err),
		)
	}
}

// toAppError maps domain sentinel errors onto the API error taxonomy.
// Unknown errors pass through unchanged.
func toAppError(err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, repository.ErrMapNotFound):
		return domainerrors.ErrMapNotFound
	case errors.Is(err, repository.ErrMapLimitReached):
		return domainerrors.ErrMapLimitReached
	case errors.Is(err, direction.ErrNoReferencePoint):
		return domainerrors.ErrNoReferencePoint
	case errors.Is(err, direction.ErrNotMeasuring):
		return domainerrors.ErrNotMeasuring
	case errors.Is(err, direction.ErrPointIsReference):
		return domainerrors.ErrPointIsReference
	case errors.Is(err, direction.ErrMeasurementNotFound):
		return domainerrors.ErrMeasurementNotFound
	case errors.Is(err, annotation.ErrInvalidDraft):
		return domainerrors.ErrInvalidDraft
	case errors.Is(err, annotation.ErrMalformedGeometry):
		return domainerrors.ErrMalformedGeometry.WithDetails(err.Error())
	case errors.Is(err, annotation.ErrFeatureNotFound):
		return domainerrors.ErrFeatureNotFound
	}

	return err
}
