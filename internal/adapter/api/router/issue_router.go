package router

import (
	"github.com/labstack/echo/v4"

	"cidadealerta/internal/adapter/api/handler"
	"cidadealerta/internal/adapter/api/middleware"
)

func SetupIssueRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, reportQuota *middleware.ReportQuotaMiddleware) {
	issueHandler := handler.GetIssueHandler()

	// Public read surface. Listing authenticates opportunistically so the
	// "mine" filter can resolve the caller's uid.
	e.GET("/v1/issues", issueHandler.ListIssues, authMiddleware.OptionalAuthenticate)
	e.GET("/v1/issues/:id", issueHandler.GetIssue)
	e.GET("/v1/categories", issueHandler.Categories)
	e.GET("/v1/stats/dashboard", issueHandler.DashboardStats)

	issues := e.Group("/v1/issues")
	issues.Use(authMiddleware.Authenticate)
	issues.POST("", issueHandler.ReportIssue, reportQuota.Limit)
	issues.POST("/:id/upvote", issueHandler.Upvote)
	issues.POST("/:id/comments", issueHandler.AddComment)
	issues.DELETE("/:id/comments/:commentId", issueHandler.DeleteComment)

	admin := e.Group("/v1/issues")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)
	admin.PATCH("/:id/status", issueHandler.UpdateStatus)
	admin.DELETE("/:id", issueHandler.DeleteIssue)
}
