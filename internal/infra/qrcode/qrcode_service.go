package qrcode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
	"go.uber.org/fx"

	"mapnote/config"
	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/service"
)

const (
	geoScheme   = "geo:"
	defaultSize = 256
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateLocationQR encodes the point as an RFC 5870 geo URI and renders it as PNG
func (s *qrcodeService) GenerateLocationQR(point entity.Point) ([]byte, error) {
	if !point.IsFinite() {
		return nil, errors.New("cannot encode a non-finite coordinate")
	}

	qrCode, err := qrcode.New(GeoURI(point), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}

// ParseLocationQR parses a geo URI back into a point. Parameters after ';'
// and an altitude component are ignored.
func (s *qrcodeService) ParseLocationQR(qrData string) (entity.Point, error) {
	data := strings.TrimSpace(qrData)
	if !strings.HasPrefix(strings.ToLower(data), geoScheme) {
		return entity.Point{}, errors.Errorf("invalid QR code payload: %q", qrData)
	}

	coords := data[len(geoScheme):]
	if i := strings.IndexAny(coords, ";?"); i >= 0 {
		coords = coords[:i]
	}

	parts := strings.Split(coords, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return entity.Point{}, errors.Errorf("invalid geo URI coordinates: %q", coords)
	}

	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return entity.Point{}, errors.Wrap(err, "failed to parse latitude")
	}
	lng, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return entity.Point{}, errors.Wrap(err, "failed to parse longitude")
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return entity.Point{}, errors.Errorf("coordinates out of range: %v,%v", lat, lng)
	}

	return entity.Point{Lat: lat, Lng: lng}, nil
}

// GeoURI formats the point as geo:lat,lng with six decimals.
func GeoURI(point entity.Point) string {
	return fmt.Sprintf("%s%.6f,%.6f", geoScheme, point.Lat, point.Lng)
}

// QRCodeParams holds dependencies for the QR code service, injected by Fx
type QRCodeParams struct {
	fx.In

	Config *config.Config
}

// NewFromConfig creates the QR code service from configuration
func NewFromConfig(params QRCodeParams) service.QRCodeService {
	cfg := params.Config.QRCode
	if cfg == nil {
		return NewQRCodeService(defaultSize, "M")
	}

	return NewQRCodeService(cfg.Size, cfg.ErrorCorrectionLevel)
}

// Module provides the QR code FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewFromConfig),
)
