package router

import (
	"github.com/labstack/echo/v4"

	"cidadealerta/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, reportQuota *middleware.ReportQuotaMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupIssueRouter(e, authMiddleware, adminMiddleware, reportQuota)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupHealthRouter(e)
}
