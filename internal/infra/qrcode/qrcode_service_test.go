package qrcode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mapnote/internal/domain/entity"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
		{"Default size", 0, "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateLocationQR(t *testing.T) {
	service := NewQRCodeService(256, "M")

	qrBytes, err := service.GenerateLocationQR(entity.Point{Lat: 25.033964, Lng: 121.564468})
	require.NoError(t, err)
	require.Greater(t, len(qrBytes), 4)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_GenerateLocationQR_NonFinite(t *testing.T) {
	service := NewQRCodeService(256, "M")

	_, err := service.GenerateLocationQR(entity.Point{Lat: math.Inf(1), Lng: 0})

	assert.Error(t, err)
}

func TestGeoURI(t *testing.T) {
	assert.Equal(t, "geo:-33.868800,151.209300", GeoURI(entity.Point{Lat: -33.8688, Lng: 151.2093}))
}

func TestQRCodeService_ParseLocationQR(t *testing.T) {
	service := NewQRCodeService(256, "M")

	tests := []struct {
		name     string
		input    string
		expected entity.Point
		wantErr  bool
	}{
		{name: "plain", input: "geo:25.033964,121.564468", expected: entity.Point{Lat: 25.033964, Lng: 121.564468}},
		{name: "with altitude and params", input: "GEO:1.5,-2.25,30;u=10", expected: entity.Point{Lat: 1.5, Lng: -2.25}},
		{name: "round trip", input: GeoURI(entity.Point{Lat: 48.858370, Lng: 2.294481}), expected: entity.Point{Lat: 48.858370, Lng: 2.294481}},
		{name: "wrong scheme", input: "https://example.com", wantErr: true},
		{name: "missing longitude", input: "geo:25.0", wantErr: true},
		{name: "not a number", input: "geo:abc,1", wantErr: true},
		{name: "out of range", input: "geo:95,1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point, err := service.ParseLocationQR(tt.input)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected.Lat, point.Lat, 1e-9)
			assert.InDelta(t, tt.expected.Lng, point.Lng, 1e-9)
		})
	}
}
