// Package memory keeps map instances in process memory.
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"mapnote/config"
	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/repository"
	"mapnote/internal/domain/workspace"
	"mapnote/internal/errors"
)

type slot struct {
	mu sync.Mutex
	ws *workspace.Workspace
}

type mapRepository struct {
	mu      sync.RWMutex
	slots   map[uuid.UUID]*slot
	maxMaps int
	logger  *slog.Logger
	now     func() time.Time
}

// MapRepositoryParams holds dependencies for the in-memory repository, injected by Fx
type MapRepositoryParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewMapRepository creates an in-memory map repository
func NewMapRepository(params MapRepositoryParams) repository.MapRepository {
	maxMaps := 0
	if params.Config.Workspace != nil {
		maxMaps = params.Config.Workspace.MaxMaps
	}

	return newMapRepository(maxMaps, params.Logger)
}

func newMapRepository(maxMaps int, logger *slog.Logger) *mapRepository {
	return &mapRepository{
		slots:   make(map[uuid.UUID]*slot),
		maxMaps: maxMaps,
		logger:  logger,
		now:     time.Now,
	}
}

func (r *mapRepository) Create(ctx context.Context, viewport entity.Viewport) (*workspace.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxMaps > 0 && len(r.slots) >= r.maxMaps {
		return nil, errors.Wrapf(repository.ErrMapLimitReached, "limit %d", r.maxMaps)
	}

	ws := workspace.New(uuid.New(), viewport, r.now())
	r.slots[ws.ID] = &slot{ws: ws}

	r.logger.DebugContext(ctx, "map created", slog.String("map_id", ws.ID.String()))
	snapshot := ws.Snapshot()

	return &snapshot, nil
}

func (r *mapRepository) Execute(ctx context.Context, mapID uuid.UUID, fn func(ws *workspace.Workspace) error) error {
	r.mu.RLock()
	s, ok := r.slots[mapID]
	r.mu.RUnlock()
	if !ok {
		return errors.Wrapf(repository.ErrMapNotFound, "map %s", mapID)
	}

	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Deleted while we were waiting for the lock
	if s.ws == nil {
		return errors.Wrapf(repository.ErrMapNotFound, "map %s", mapID)
	}

	return fn(s.ws)
}

func (r *mapRepository) Delete(ctx context.Context, mapID uuid.UUID) error {
	r.mu.Lock()
	s, ok := r.slots[mapID]
	delete(r.slots, mapID)
	r.mu.Unlock()

	if !ok {
		return errors.Wrapf(repository.ErrMapNotFound, "map %s", mapID)
	}

	s.mu.Lock()
	s.ws = nil
	s.mu.Unlock()

	r.logger.DebugContext(ctx, "map deleted", slog.String("map_id", mapID.String()))

	return nil
}

func (r *mapRepository) List(_ context.Context) ([]uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type entry struct {
		id      uuid.UUID
		created time.Time
	}
	entries := make([]entry, 0, len(r.slots))
	for id, s := range r.slots {
		entries = append(entries, entry{id: id, created: s.createdAt()})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].created.Before(entries[j].created)
	})

	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.id)
	}

	return ids, nil
}

func (s *slot) createdAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ws == nil {
		return time.Time{}
	}

	return s.ws.CreatedAt
}

// Module provides the in-memory persistence FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewMapRepository),
	fx.Provide(NewActivityRepository),
)
