package service

import (
	"context"

	"mapnote/internal/domain/entity"
	"mapnote/internal/errors"
)

// ErrSnapshotNotFound is returned by SnapshotStore.Load when nothing was exported yet
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore persists exported map documents
type SnapshotStore interface {
	// Save writes the document and returns the key it was stored under
	Save(ctx context.Context, mapID string, document []byte) (string, error)

	// Load reads a previously saved document
	Load(ctx context.Context, mapID string) ([]byte, error)

	// Close releases the underlying bucket
	Close() error
}

// FeatureEncoder renders committed features as an interchange document
type FeatureEncoder interface {
	Encode(features []entity.AnnotationFeature) ([]byte, error)
	ContentType() string
}
