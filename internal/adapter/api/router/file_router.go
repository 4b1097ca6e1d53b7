package router

import (
	"github.com/labstack/echo/v4"

	"cidadealerta/internal/adapter/api/handler"
	"cidadealerta/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, fileHandler *handler.FileHandler, authMiddleware *middleware.AuthMiddleware) {
	files := e.Group("/v1/files")
	files.Use(authMiddleware.Authenticate)
	files.POST("/upload", fileHandler.UploadPhoto)
}
