// Package geocoding resolves place names through a Nominatim-compatible
// search endpoint.
package geocoding

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"mapnote/config"
	"mapnote/internal/domain/entity"
	"mapnote/internal/domain/service"
)

const maxErrorBody = 512

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

type nominatimGeocoder struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
}

// GeocoderParams holds dependencies for the Geocoder, injected by Fx
type GeocoderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewGeocoder creates a Nominatim geocoder from configuration
func NewGeocoder(params GeocoderParams) service.Geocoder {
	cfg := params.Config.Geocoding

	return NewNominatimGeocoder(cfg.BaseURL, cfg.UserAgent, &http.Client{Timeout: cfg.Timeout}, params.Logger)
}

// NewNominatimGeocoder creates a geocoder against baseURL using the given client
func NewNominatimGeocoder(baseURL, userAgent string, client *http.Client, logger *slog.Logger) service.Geocoder {
	return &nominatimGeocoder{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: client,
		logger:     logger,
	}
}

// Search issues one request; there are no retries.
func (g *nominatimGeocoder) Search(ctx context.Context, query string, limit int) ([]entity.Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "geocoding request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

		return nil, errors.Errorf("geocoder returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "decode geocoding response")
	}

	places := make([]entity.Place, 0, len(raw))
	for _, r := range raw {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lng, lngErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lngErr != nil {
			g.logger.WarnContext(ctx, "skipping geocoding result with bad coordinates",
				slog.String("display_name", r.DisplayName),
			)

			continue
		}
		places = append(places, entity.Place{DisplayName: r.DisplayName, Lat: lat, Lng: lng})
	}

	g.logger.DebugContext(ctx, "geocoding search completed",
		slog.String("query", query),
		slog.Int("results", len(places)),
	)

	return places, nil
}

// Module provides the geocoding FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewGeocoder),
)
