// Package workspace defines a single open map: its viewport, direction
// session, annotation registry and search box.
package workspace

import (
	"time"

	"github.com/google/uuid"

	"mapnote/internal/domain/annotation"
	"mapnote/internal/domain/direction"
	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/sidebar"
)

// Workspace is one map instance. Callers must hold the owning repository's
// lock for the workspace while touching it.
type Workspace struct {
	ID        uuid.UUID
	Viewport  entity.Viewport
	Session   *direction.Session
	Registry  *annotation.Registry
	Search    *SearchBox
	CreatedAt time.Time
}

// New returns an empty workspace centred on the given viewport.
func New(id uuid.UUID, viewport entity.Viewport, now time.Time) *Workspace {
	return &Workspace{
		ID:        id,
		Viewport:  viewport,
		Session:   direction.NewSession(),
		Registry:  annotation.NewRegistry(),
		Search:    &SearchBox{},
		CreatedAt: now,
	}
}

// Sidebar projects the current features and measurements.
func (w *Workspace) Sidebar() sidebar.View {
	return sidebar.Project(w.Registry.List(), w.Session, sidebar.MapRoutes{MapID: w.ID})
}

// Snapshot is a read-only copy of a workspace.
type Snapshot struct {
	ID           uuid.UUID                     `json:"id"`
	Viewport     entity.Viewport               `json:"viewport"`
	State        direction.State               `json:"direction_state"`
	Reference    *entity.Point                 `json:"reference,omitempty"`
	Measurements []entity.DirectionMeasurement `json:"measurements"`
	Lines        []entity.Segment              `json:"lines"`
	Features     []entity.AnnotationFeature    `json:"features"`
	Draft        *entity.Draft                 `json:"draft,omitempty"`
	Sidebar      sidebar.View                  `json:"sidebar"`
	CreatedAt    time.Time                     `json:"created_at"`
}

// Snapshot copies the workspace state.
func (w *Workspace) Snapshot() Snapshot {
	s := Snapshot{
		ID:           w.ID,
		Viewport:     w.Viewport,
		State:        w.Session.State(),
		Reference:    w.Session.Reference(),
		Measurements: w.Session.Measurements(),
		Lines:        w.Session.Lines(),
		Features:     w.Registry.List(),
		Sidebar:      w.Sidebar(),
		CreatedAt:    w.CreatedAt,
	}
	if draft, ok := w.Registry.PendingDraft(); ok {
		s.Draft = &draft
	}

	return s
}
