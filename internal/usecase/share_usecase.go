package usecase

import (
	"context"

	"github.com/google/uuid"
)

// ExportResult describes a stored GeoJSON export
type ExportResult struct {
	Key          string `json:"key"`
	FeatureCount int    `json:"feature_count"`
}

// ShareUsecase defines the interface for QR codes and GeoJSON exports
type ShareUsecase interface {
	FeatureQRCode(ctx context.Context, mapID, featureID uuid.UUID) ([]byte, error)
	RenderGeoJSON(ctx context.Context, mapID uuid.UUID) ([]byte, error)
	ExportMap(ctx context.Context, mapID uuid.UUID) (*ExportResult, error)
	LoadExport(ctx context.Context, mapID uuid.UUID) ([]byte, error)
}
