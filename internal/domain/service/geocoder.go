package service

import (
	"context"

	"mapnote/internal/domain/entity"
)

// Geocoder resolves free-text queries to places
type Geocoder interface {
	// Search returns at most limit places for the query, best match first
	Search(ctx context.Context, query string, limit int) ([]entity.Place, error)
}
