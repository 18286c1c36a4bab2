package entity

import "github.com/google/uuid"

// DirectionMeasurement is one measured point relative to the reference point.
// Seq is the 1-based display number; it is reassigned whenever a measurement
// is deleted. ID never changes.
type DirectionMeasurement struct {
	ID             uuid.UUID `json:"id"`
	Seq            int       `json:"seq"`
	Target         Point     `json:"target"`
	Bearing        float64   `json:"bearing"`         // Degrees clockwise from north, [0,360)
	Cardinal       string    `json:"cardinal"`        // One of N, NE, E, SE, S, SW, W, NW
	DistanceMeters float64   `json:"distance_meters"` // Great-circle distance from the reference point
}

// Segment is a straight overlay line between two points.
type Segment struct {
	MeasurementID uuid.UUID `json:"measurement_id"`
	From          Point     `json:"from"`
	To            Point     `json:"to"`
}
