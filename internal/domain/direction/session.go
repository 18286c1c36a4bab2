// Package direction implements the reference-point / measuring state machine
// behind the "Find Direction" tool.
package direction

import (
	"sort"

	"github.com/google/uuid"

	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/geodesy"
	"mapnote/internal/errors"
)

// State is the phase of a direction session.
type State string

const (
	StateInactive  State = "inactive"
	StateArmed     State = "armed"
	StateMeasuring State = "measuring"
)

var (
	ErrNoReferencePoint    = errors.New("no reference point")
	ErrNotMeasuring        = errors.New("not in measuring mode")
	ErrPointIsReference    = errors.New("point equals the reference point")
	ErrMeasurementNotFound = errors.New("measurement not found")
)

// Session owns the reference point and the numbered measurements taken from it.
// It is not safe for concurrent use; callers serialize access.
type Session struct {
	state        State
	reference    *entity.Point
	measurements []entity.DirectionMeasurement
	nextSeq      int
	newID        func() uuid.UUID
}

// NewSession returns an inactive session.
func NewSession() *Session {
	return &Session{
		state:   StateInactive,
		nextSeq: 1,
		newID:   uuid.New,
	}
}

// SetReferencePoint toggles the reference point. From Inactive it places the
// reference at center; from any other state it clears the whole session.
func (s *Session) SetReferencePoint(center entity.Point) State {
	if s.state == StateInactive {
		ref := center
		s.reference = &ref
		s.state = StateArmed

		return s.state
	}

	s.reset()

	return s.state
}

// ToggleMeasuring switches between Armed and Measuring. Entering Measuring
// discards the measurements of the previous round.
func (s *Session) ToggleMeasuring() (State, error) {
	switch s.state {
	case StateInactive:
		return s.state, ErrNoReferencePoint
	case StateArmed:
		s.measurements = nil
		s.nextSeq = 1
		s.state = StateMeasuring
	case StateMeasuring:
		s.state = StateArmed
	}

	return s.state, nil
}

// RecordPoint measures p against the reference point and appends it.
func (s *Session) RecordPoint(p entity.Point) (entity.DirectionMeasurement, error) {
	if s.state != StateMeasuring {
		return entity.DirectionMeasurement{}, ErrNotMeasuring
	}
	if p.Equal(*s.reference) {
		return entity.DirectionMeasurement{}, ErrPointIsReference
	}

	m := entity.DirectionMeasurement{
		ID:     s.newID(),
		Seq:    s.nextSeq,
		Target: p,
	}
	s.measure(&m)
	s.measurements = append(s.measurements, m)
	s.nextSeq++

	return m, nil
}

// DeleteMeasurement removes the measurement currently displayed as seq and
// renumbers the rest.
func (s *Session) DeleteMeasurement(seq int) (entity.DirectionMeasurement, error) {
	for i, m := range s.measurements {
		if m.Seq == seq {
			return s.removeAt(i), nil
		}
	}

	return entity.DirectionMeasurement{}, ErrMeasurementNotFound
}

// DeleteMeasurementByID removes a measurement by its stable id.
func (s *Session) DeleteMeasurementByID(id uuid.UUID) (entity.DirectionMeasurement, error) {
	for i, m := range s.measurements {
		if m.ID == id {
			return s.removeAt(i), nil
		}
	}

	return entity.DirectionMeasurement{}, ErrMeasurementNotFound
}

// DragReferencePoint moves the reference point and recomputes every
// measurement against the new location.
func (s *Session) DragReferencePoint(loc entity.Point) error {
	if s.state == StateInactive {
		return ErrNoReferencePoint
	}

	ref := loc
	s.reference = &ref
	for i := range s.measurements {
		s.measure(&s.measurements[i])
	}

	return nil
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}

// Reference returns a copy of the reference point, or nil.
func (s *Session) Reference() *entity.Point {
	if s.reference == nil {
		return nil
	}
	ref := *s.reference

	return &ref
}

// Measurements returns a copy of the measurements in display order.
func (s *Session) Measurements() []entity.DirectionMeasurement {
	out := make([]entity.DirectionMeasurement, len(s.measurements))
	copy(out, s.measurements)

	return out
}

// NextSeq returns the number the next recorded point will get.
func (s *Session) NextSeq() int {
	return s.nextSeq
}

// Lines returns one reference-to-target segment per measurement.
func (s *Session) Lines() []entity.Segment {
	if s.reference == nil {
		return []entity.Segment{}
	}

	lines := make([]entity.Segment, 0, len(s.measurements))
	for _, m := range s.measurements {
		lines = append(lines, entity.Segment{MeasurementID: m.ID, From: *s.reference, To: m.Target})
	}

	return lines
}

func (s *Session) measure(m *entity.DirectionMeasurement) {
	m.Bearing = geodesy.Bearing(*s.reference, m.Target)
	m.Cardinal = geodesy.Cardinal(m.Bearing)
	m.DistanceMeters = geodesy.Distance(*s.reference, m.Target)
}

func (s *Session) removeAt(i int) entity.DirectionMeasurement {
	removed := s.measurements[i]
	s.measurements = append(s.measurements[:i], s.measurements[i+1:]...)
	s.renumber()

	return removed
}

// renumber restores the dense 1..N sequence, keeping the relative order.
func (s *Session) renumber() {
	sort.SliceStable(s.measurements, func(i, j int) bool {
		return s.measurements[i].Seq < s.measurements[j].Seq
	})
	for i := range s.measurements {
		s.measurements[i].Seq = i + 1
	}
	s.nextSeq = len(s.measurements) + 1
}

func (s *Session) reset() {
	s.state = StateInactive
	s.reference = nil
	s.measurements = nil
	s.nextSeq = 1
}
