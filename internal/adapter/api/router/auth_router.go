package router

import (
	"github.com/labstack/echo/v4"

	"cidadealerta/internal/adapter/api/handler"
	"cidadealerta/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/session", authHandler.Session)
	auth.POST("/logout", authHandler.Logout, authMiddleware.Authenticate)
}
