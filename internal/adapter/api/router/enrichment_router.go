package router

import (
	"github.com/labstack/echo/v4"

	"cidadealerta/internal/adapter/api/handler"
	"cidadealerta/internal/adapter/api/middleware"
)

func SetupEnrichmentRouter(e *echo.Echo, enrichmentHandler *handler.EnrichmentHandler, authMiddleware *middleware.AuthMiddleware) {
	e.GET("/v1/geo/search", enrichmentHandler.GeocodeSearch)

	ai := e.Group("/v1/ai")
	ai.Use(authMiddleware.Authenticate)
	ai.POST("/suggest-category", enrichmentHandler.SuggestCategory)
}
