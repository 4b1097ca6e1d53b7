package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"

	"cidadealerta/pkg/logger"
)

// Federal District bounding box, lon/lat corners as Nominatim expects them.
const defaultViewbox = "-48.3,-15.5,-47.3,-16.1"

type GeocodingResult struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// GeocodingService resolves free-text addresses through a Nominatim-style
// HTTP API. Queries are bounded to the configured viewbox first and fall
// back to a country-wide search when nothing matches.
type GeocodingService struct {
	client  *resty.Client
	baseURL string
	viewbox string
}

func NewGeocodingService(client *resty.Client, baseURL string) *GeocodingService {
	return &GeocodingService{
		client:  client,
		baseURL: baseURL,
		viewbox: defaultViewbox,
	}
}

func (s *GeocodingService) Search(ctx context.Context, query string) ([]GeocodingResult, error) {
	results, err := s.search(ctx, query, true)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		logger.Debug("Bounded geocoding returned nothing for %q, widening search", query)
		return s.search(ctx, query, false)
	}

	return results, nil
}

func (s *GeocodingService) search(ctx context.Context, query string, bounded bool) ([]GeocodingResult, error) {
	var places []nominatimPlace

	req := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format":       "json",
			"q":            query,
			"countrycodes": "br",
		}).
		SetResult(&places)

	if bounded {
		req.SetQueryParams(map[string]string{
			"viewbox": s.viewbox,
			"bounded": "1",
		})
	}

	resp, err := req.Get(s.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("geocoding request failed with status %d", resp.StatusCode())
	}

	results := make([]GeocodingResult, 0, len(places))
	for _, place := range places {
		lat, err := strconv.ParseFloat(place.Lat, 64)
		if err != nil {
			continue
		}
		lng, err := strconv.ParseFloat(place.Lon, 64)
		if err != nil {
			continue
		}
		results = append(results, GeocodingResult{
			DisplayName: place.DisplayName,
			Lat:         lat,
			Lng:         lng,
		})
	}

	return results, nil
}
