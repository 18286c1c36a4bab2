package service

import (
	"mapnote/internal/domain/entity"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateLocationQR generates a QR code encoding a geo: URI for the point
	GenerateLocationQR(point entity.Point) ([]byte, error)

	// ParseLocationQR parses the QR payload back into a point
	ParseLocationQR(qrData string) (entity.Point, error)
}
