package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeocodingSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "br", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, "1", r.URL.Query().Get("bounded"))
		assert.NotEmpty(t, r.URL.Query().Get("viewbox"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{
			{"display_name": "Quadra 5, Brasília, DF", "lat": "-15.7801", "lon": "-47.9292"},
		})
	}))
	defer server.Close()

	svc := NewGeocodingService(resty.New(), server.URL)
	results, err := svc.Search(context.Background(), "Quadra 5")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Quadra 5, Brasília, DF", results[0].DisplayName)
	assert.Equal(t, -15.7801, results[0].Lat)
	assert.Equal(t, -47.9292, results[0].Lng)
}

func TestGeocodingSearchFallsBackUnbounded(t *testing.T) {
	var calls []bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bounded := r.URL.Query().Get("bounded") == "1"
		calls = append(calls, bounded)
		w.Header().Set("Content-Type", "application/json")
		if bounded {
			json.NewEncoder(w).Encode([]map[string]string{})
			return
		}
		json.NewEncoder(w).Encode([]map[string]string{
			{"display_name": "Goiânia, GO", "lat": "-16.6869", "lon": "-49.2648"},
		})
	}))
	defer server.Close()

	svc := NewGeocodingService(resty.New(), server.URL)
	results, err := svc.Search(context.Background(), "Goiânia")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Goiânia, GO", results[0].DisplayName)
	assert.Equal(t, []bool{true, false}, calls)
}

func TestGeocodingSearchSkipsMalformedCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{
			{"display_name": "Broken", "lat": "not-a-number", "lon": "-47.9"},
			{"display_name": "Fine", "lat": "-15.8", "lon": "-47.9"},
		})
	}))
	defer server.Close()

	svc := NewGeocodingService(resty.New(), server.URL)
	results, err := svc.Search(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Fine", results[0].DisplayName)
}

func TestGeocodingSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewGeocodingService(resty.New(), server.URL)
	_, err := svc.Search(context.Background(), "Quadra 5")
	assert.Error(t, err)
}
