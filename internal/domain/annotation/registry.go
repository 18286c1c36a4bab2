// Package annotation keeps the committed map features and the single shape
// waiting in the save dialog.
package annotation

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"mapnote/internal/domain/entity"
	"mapnote/internal/errors"
)

const (
	DefaultTitle = "Untitled Feature"
	DefaultColor = "#FF0000"

	CurrentLocationTitle = "My Location"
	CurrentLocationColor = "#30B0FF"
)

var (
	ErrInvalidDraft      = errors.New("no matching pending draft")
	ErrMalformedGeometry = errors.New("malformed geometry")
	ErrFeatureNotFound   = errors.New("feature not found")
)

// Registry holds committed features in insertion order plus at most one draft.
// It is not safe for concurrent use.
type Registry struct {
	features []*entity.AnnotationFeature
	index    map[uuid.UUID]*entity.AnnotationFeature
	draft    *entity.Draft

	now   func() time.Time
	newID func() uuid.UUID
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[uuid.UUID]*entity.AnnotationFeature),
		now:   time.Now,
		newID: uuid.New,
	}
}

// BeginDraft stages a freshly drawn shape, replacing any pending one.
func (r *Registry) BeginDraft(g entity.Geometry) entity.Draft {
	r.draft = &entity.Draft{
		ID:        r.newID(),
		Geometry:  g.Clone(),
		CreatedAt: r.now(),
	}

	return *r.draft
}

// PendingDraft returns the staged shape, if any.
func (r *Registry) PendingDraft() (entity.Draft, bool) {
	if r.draft == nil {
		return entity.Draft{}, false
	}

	return *r.draft, true
}

// Commit turns the pending draft into a feature. A malformed draft is
// discarded and nothing is inserted.
func (r *Registry) Commit(draftID uuid.UUID, title, description, color string) (entity.AnnotationFeature, error) {
	if r.draft == nil || r.draft.ID != draftID {
		return entity.AnnotationFeature{}, ErrInvalidDraft
	}

	draft := r.draft
	r.draft = nil

	if err := Validate(draft.Geometry); err != nil {
		return entity.AnnotationFeature{}, err
	}

	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	if strings.TrimSpace(color) == "" {
		color = DefaultColor
	}

	return r.insert(draft.Geometry, title, description, color), nil
}

// Cancel discards the pending draft.
func (r *Registry) Cancel(draftID uuid.UUID) error {
	if r.draft == nil || r.draft.ID != draftID {
		return ErrInvalidDraft
	}
	r.draft = nil

	return nil
}

// AddCurrentLocation inserts a marker for a device position fix.
func (r *Registry) AddCurrentLocation(p entity.Point, accuracy float64) (entity.AnnotationFeature, error) {
	g := entity.Geometry{Kind: entity.FeatureKindMarker, Points: []entity.Point{p}}
	if err := Validate(g); err != nil {
		return entity.AnnotationFeature{}, err
	}
	description := fmt.Sprintf("Accuracy: %d meters", int64(math.Round(accuracy)))

	return r.insert(g, CurrentLocationTitle, description, CurrentLocationColor), nil
}

// UpdateGeometry replaces the geometry of an existing feature after an edit.
// The kind cannot change.
func (r *Registry) UpdateGeometry(id uuid.UUID, g entity.Geometry) (entity.AnnotationFeature, error) {
	f, ok := r.index[id]
	if !ok {
		return entity.AnnotationFeature{}, ErrFeatureNotFound
	}
	if g.Kind == "" {
		g.Kind = f.Geometry.Kind
	}
	if g.Kind != f.Geometry.Kind {
		return entity.AnnotationFeature{}, errors.Wrapf(ErrMalformedGeometry, "cannot change %s into %s", f.Geometry.Kind, g.Kind)
	}
	if err := Validate(g); err != nil {
		return entity.AnnotationFeature{}, err
	}

	f.Geometry = g.Clone()
	f.Measurement = MeasurementLabel(f.Geometry)
	f.UpdatedAt = r.now()

	return cloneFeature(f), nil
}

// Delete removes a committed feature.
func (r *Registry) Delete(id uuid.UUID) (entity.AnnotationFeature, error) {
	f, ok := r.index[id]
	if !ok {
		return entity.AnnotationFeature{}, ErrFeatureNotFound
	}

	delete(r.index, id)
	for i, candidate := range r.features {
		if candidate.ID == id {
			r.features = append(r.features[:i], r.features[i+1:]...)

			break
		}
	}

	return cloneFeature(f), nil
}

// ClearAll removes every committed feature. The pending draft is kept.
func (r *Registry) ClearAll() int {
	n := len(r.features)
	r.features = nil
	r.index = make(map[uuid.UUID]*entity.AnnotationFeature)

	return n
}

// Get returns a copy of one feature.
func (r *Registry) Get(id uuid.UUID) (entity.AnnotationFeature, error) {
	f, ok := r.index[id]
	if !ok {
		return entity.AnnotationFeature{}, ErrFeatureNotFound
	}

	return cloneFeature(f), nil
}

// List returns copies of all features in insertion order.
func (r *Registry) List() []entity.AnnotationFeature {
	out := make([]entity.AnnotationFeature, 0, len(r.features))
	for _, f := range r.features {
		out = append(out, cloneFeature(f))
	}

	return out
}

// Len returns the number of committed features.
func (r *Registry) Len() int {
	return len(r.features)
}

func (r *Registry) insert(g entity.Geometry, title, description, color string) entity.AnnotationFeature {
	now := r.now()
	f := &entity.AnnotationFeature{
		ID:          r.newID(),
		Geometry:    g.Clone(),
		Title:       title,
		Description: description,
		Color:       color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.Measurement = MeasurementLabel(f.Geometry)

	r.features = append(r.features, f)
	r.index[f.ID] = f

	return cloneFeature(f)
}

func cloneFeature(f *entity.AnnotationFeature) entity.AnnotationFeature {
	out := *f
	out.Geometry = f.Geometry.Clone()

	return out
}
