package handler

import (
	"github.com/labstack/echo/v4"

	"cidadealerta/internal/domain/service"
	"cidadealerta/pkg/errors"
	"cidadealerta/pkg/response"
)

// EnrichmentHandler serves the optional report-form helpers: address
// geocoding and AI category suggestion. Both degrade to manual input when
// they fail; the client decides what to do with an error.
type EnrichmentHandler struct {
	geocoding *service.GeocodingService
	category  *service.CategorySuggestionService
}

func NewEnrichmentHandler(geocoding *service.GeocodingService, category *service.CategorySuggestionService) *EnrichmentHandler {
	return &EnrichmentHandler{
		geocoding: geocoding,
		category:  category,
	}
}

func (h *EnrichmentHandler) GeocodeSearch(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return response.Error(c, errors.BadRequest("Query parameter q is required", nil))
	}

	results, err := h.geocoding.Search(c.Request().Context(), query)
	if err != nil {
		return response.Error(c, errors.Internal("Geocoding failed", err))
	}

	return response.Success(c, results)
}

type suggestCategoryRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
}

func (h *EnrichmentHandler) SuggestCategory(c echo.Context) error {
	var req suggestCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	category, err := h.category.SuggestCategory(c.Request().Context(), req.Title, req.Description)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"category": category,
	})
}
