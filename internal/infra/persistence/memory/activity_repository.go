package memory

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"go.uber.org/fx"

	"mapnote/config"
	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/repository"
)

// activityLog is a bounded, oldest-first history of one map.
type activityLog struct {
	entries []entity.MapActivity
	seen    map[string]struct{}
}

type activityRepository struct {
	mu       sync.Mutex
	logs     map[string]*activityLog
	capacity int
	logger   *slog.Logger
}

// ActivityRepositoryParams holds dependencies for the in-memory activity history, injected by Fx
type ActivityRepositoryParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewActivityRepository creates an in-memory activity history
func NewActivityRepository(params ActivityRepositoryParams) repository.ActivityRepository {
	return newActivityRepository(params.Config.Worker.HistorySize, params.Logger)
}

func newActivityRepository(capacity int, logger *slog.Logger) *activityRepository {
	if capacity <= 0 {
		capacity = 1
	}

	return &activityRepository{
		logs:     make(map[string]*activityLog),
		capacity: capacity,
		logger:   logger,
	}
}

func (r *activityRepository) Append(ctx context.Context, activity *entity.MapActivity) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log, ok := r.logs[activity.MapID]
	if !ok {
		log = &activityLog{seen: make(map[string]struct{})}
		r.logs[activity.MapID] = log
	}

	if activity.MessageID != "" {
		if _, dup := log.seen[activity.MessageID]; dup {
			return false, nil
		}
		log.seen[activity.MessageID] = struct{}{}
	}

	stored := *activity
	stored.Payload = maps.Clone(activity.Payload)
	log.entries = append(log.entries, stored)

	if overflow := len(log.entries) - r.capacity; overflow > 0 {
		for _, evicted := range log.entries[:overflow] {
			delete(log.seen, evicted.MessageID)
		}
		log.entries = append([]entity.MapActivity(nil), log.entries[overflow:]...)
		r.logger.DebugContext(ctx, "activity evicted",
			slog.String("map_id", activity.MapID),
			slog.Int("evicted", overflow),
		)
	}

	return true, nil
}

func (r *activityRepository) ListByMap(_ context.Context, mapID string, limit int) ([]entity.MapActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log, ok := r.logs[mapID]
	if !ok {
		return []entity.MapActivity{}, nil
	}

	if limit <= 0 || limit > len(log.entries) {
		limit = len(log.entries)
	}

	result := make([]entity.MapActivity, 0, limit)
	for i := len(log.entries) - 1; i >= 0 && len(result) < limit; i-- {
		entry := log.entries[i]
		entry.Payload = maps.Clone(entry.Payload)
		result = append(result, entry)
	}

	return result, nil
}
