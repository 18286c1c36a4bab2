package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"mapnote/config"
	"mapnote/internal/domain/entity"
	domainerrors "mapnote/internal/domain/errors"
	"mapnote/internal/domain/repository"
	"mapnote/internal/domain/service"
	"mapnote/internal/domain/workspace"
	"mapnote/internal/usecase"
)

type searchService struct {
	mapBase

	geocoder        service.Geocoder
	debouncers      service.DebouncerRegistry
	minQueryLength  int
	suggestionLimit int
	searchZoom      float64

	// Suggestion fetches outlive the request that triggered them
	baseCtx context.Context
}

// SearchServiceParams holds dependencies for the search service, injected by Fx
type SearchServiceParams struct {
	fx.In

	Ctx        context.Context
	Repo       repository.MapRepository
	Publisher  service.EventPublisher
	Geocoder   service.Geocoder
	Debouncers service.DebouncerRegistry
	Config     *config.Config
	Logger     *slog.Logger
}

// NewSearchService creates a new search service instance
func NewSearchService(params SearchServiceParams) usecase.SearchUsecase {
	cfg := params.Config.Geocoding

	return &searchService{
		mapBase:         newMapBase(params.Repo, params.Publisher, params.Logger),
		geocoder:        params.Geocoder,
		debouncers:      params.Debouncers,
		minQueryLength:  cfg.MinQueryLength,
		suggestionLimit: cfg.SuggestionLimit,
		searchZoom:      cfg.SearchZoom,
		baseCtx:         params.Ctx,
	}
}

func (s *searchService) SubmitInput(ctx context.Context, mapID uuid.UUID, query string) (*usecase.InputAccepted, error) {
	query = strings.TrimSpace(query)

	if utf8.RuneCountInString(query) < s.minQueryLength {
		err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
			ws.Search.Clear(query)

			return nil
		})
		if err != nil {
			return nil, err
		}
		s.debouncers.Get(mapID.String()).Stop()

		return &usecase.InputAccepted{Query: query, Scheduled: false}, nil
	}

	// Fail fast on an unknown map before scheduling anything
	if err := s.execute(ctx, mapID, func(*workspace.Workspace) error { return nil }); err != nil {
		return nil, err
	}

	requestLogger := s.log(ctx)
	s.debouncers.Get(mapID.String()).Trigger(func() {
		s.fetchSuggestions(mapID, query, requestLogger)
	})

	return &usecase.InputAccepted{Query: query, Scheduled: true}, nil
}

// fetchSuggestions runs after the quiet window. The sequence number is taken
// when the fetch is issued so that a slow response cannot overwrite a newer one.
func (s *searchService) fetchSuggestions(mapID uuid.UUID, query string, logger *slog.Logger) {
	ctx := s.baseCtx

	var seq uint64
	if err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		seq = ws.Search.Issue()

		return nil
	}); err != nil {
		return
	}

	result := entity.Suggestions{Query: query, Seq: seq}
	places, err := s.geocoder.Search(ctx, query, s.suggestionLimit)
	if err != nil {
		logger.Warn("Suggestion fetch failed", slog.String("query", query), slog.Any("error", err))
		result.Error = domainerrors.ErrGeocodingFailed.Message()
	} else {
		result.Places = places
	}

	_ = s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		if !ws.Search.Apply(result) {
			logger.Debug("Discarding stale suggestions",
				slog.String("query", query),
				slog.Uint64("seq", seq),
			)
		}

		return nil
	})
}

func (s *searchService) Suggestions(ctx context.Context, mapID uuid.UUID) (*entity.Suggestions, error) {
	var current entity.Suggestions
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		current = ws.Search.Current()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &current, nil
}

func (s *searchService) Search(ctx context.Context, mapID uuid.UUID, query string) (*usecase.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.ErrEmptySearchQuery
	}

	// Unknown maps must not cost a geocoder call
	if err := s.execute(ctx, mapID, func(*workspace.Workspace) error { return nil }); err != nil {
		return nil, err
	}

	places, err := s.geocoder.Search(ctx, query, 1)
	if err != nil {
		s.log(ctx).Warn("Location search failed", slog.String("query", query), slog.Any("error", err))

		return nil, domainerrors.ErrGeocodingFailed.WithDetails(err.Error())
	}
	if len(places) == 0 {
		return nil, domainerrors.ErrLocationNotFound
	}

	return s.recenter(ctx, mapID, places[0])
}

func (s *searchService) SelectPlace(ctx context.Context, mapID uuid.UUID, input *usecase.SelectPlaceInput) (*usecase.SearchResult, error) {
	place := entity.Place{DisplayName: input.DisplayName, Lat: input.Lat, Lng: input.Lng}

	return s.recenter(ctx, mapID, place)
}

func (s *searchService) recenter(ctx context.Context, mapID uuid.UUID, place entity.Place) (*usecase.SearchResult, error) {
	viewport := entity.Viewport{Center: place.Point(), Zoom: s.searchZoom}
	err := s.execute(ctx, mapID, func(ws *workspace.Workspace) error {
		ws.Viewport = viewport

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mapID, service.EventViewportChanged, "", map[string]any{
		"lat":   viewport.Center.Lat,
		"lng":   viewport.Center.Lng,
		"zoom":  viewport.Zoom,
		"place": place.DisplayName,
	})

	return &usecase.SearchResult{
		Place:    place,
		Viewport: viewport,
		Notice:   fmt.Sprintf("Location found: %s", place.DisplayName),
	}, nil
}

func (s *searchService) Forget(mapID uuid.UUID) {
	s.debouncers.Remove(mapID.String())
}
