package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"mapnote/config"
	deliverycontext "mapnote/internal/delivery/context"
	"mapnote/internal/domain/entity"
	domainerrors "mapnote/internal/domain/errors"
	"mapnote/internal/domain/repository"
	"mapnote/internal/domain/service"
	"mapnote/internal/usecase"
)

type activityService struct {
	repo        repository.ActivityRepository
	historySize int
	logger      *slog.Logger
	now         func() time.Time
}

// ActivityServiceParams holds dependencies for the activity service, injected by Fx
type ActivityServiceParams struct {
	fx.In

	Repo   repository.ActivityRepository
	Config *config.Config
	Logger *slog.Logger
}

// NewActivityService creates a new activity service instance
func NewActivityService(params ActivityServiceParams) usecase.ActivityUsecase {
	return &activityService{
		repo:        params.Repo,
		historySize: params.Config.Worker.HistorySize,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (s *activityService) Record(ctx context.Context, messageID string, event *service.MapEvent) error {
	if event == nil || event.Type == "" {
		return domainerrors.ErrInvalidEvent.WithDetails("event type is required")
	}
	if _, err := uuid.Parse(event.MapID); err != nil {
		return domainerrors.ErrInvalidEvent.WithDetails("map_id is not a valid id")
	}

	activity := &entity.MapActivity{
		MessageID:  messageID,
		MapID:      event.MapID,
		Type:       string(event.Type),
		SubjectID:  event.SubjectID,
		Payload:    event.Payload,
		RequestID:  event.RequestID,
		OccurredAt: event.OccurredAt,
		ReceivedAt: s.now().UTC(),
	}

	stored, err := s.repo.Append(ctx, activity)
	if err != nil {
		return errors.Wrap(err, "append activity")
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)
	if !stored {
		logger.Debug("Duplicate map event ignored",
			slog.String("map_id", event.MapID),
			slog.String("message_id", messageID),
		)

		return nil
	}

	logger.Debug("Map event recorded",
		slog.String("map_id", event.MapID),
		slog.String("type", string(event.Type)),
	)

	return nil
}

func (s *activityService) History(ctx context.Context, mapID uuid.UUID, limit int) ([]entity.MapActivity, error) {
	if limit <= 0 || limit > s.historySize {
		limit = s.historySize
	}

	activities, err := s.repo.ListByMap(ctx, mapID.String(), limit)
	if err != nil {
		return nil, errors.Wrap(err, "list activity")
	}

	return activities, nil
}
