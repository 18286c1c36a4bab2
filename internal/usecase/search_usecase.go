package usecase

import (
	"context"

	"github.com/google/uuid"

	"mapnote/internal/domain/entity"
)

// SelectPlaceInput represents a suggestion picked from the list
type SelectPlaceInput struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// SearchResult is the outcome of a search that recentred the map
type SearchResult struct {
	Place    entity.Place    `json:"place"`
	Viewport entity.Viewport `json:"viewport"`
	Notice   string          `json:"notice"`
}

// InputAccepted acknowledges a keystroke in the search box
type InputAccepted struct {
	Query     string `json:"query"`
	Scheduled bool   `json:"scheduled"` // false when the query was too short and the list was cleared
}

// SearchUsecase defines the interface for place search and suggestions
type SearchUsecase interface {
	// SubmitInput debounces suggestion fetches for the map's search box
	SubmitInput(ctx context.Context, mapID uuid.UUID, query string) (*InputAccepted, error)
	Suggestions(ctx context.Context, mapID uuid.UUID) (*entity.Suggestions, error)

	Search(ctx context.Context, mapID uuid.UUID, query string) (*SearchResult, error)
	SelectPlace(ctx context.Context, mapID uuid.UUID, input *SelectPlaceInput) (*SearchResult, error)

	// Forget drops pending work for a closed map
	Forget(mapID uuid.UUID)
}
