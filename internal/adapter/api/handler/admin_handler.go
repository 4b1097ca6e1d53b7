package handler

import (
	"github.com/labstack/echo/v4"

	"cidadealerta/internal/usecase"
	"cidadealerta/pkg/errors"
	"cidadealerta/pkg/response"
	"cidadealerta/pkg/utils"
)

type AdminHandler struct {
	adminUseCase *usecase.AdminUseCase
	issueUseCase *usecase.IssueUseCase
}

func NewAdminHandler(adminUseCase *usecase.AdminUseCase, issueUseCase *usecase.IssueUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
		issueUseCase: issueUseCase,
	}
}

type promoteRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Promote grants the admin claim to the user behind the given email. Only
// reachable through the admin-gated router group.
func (h *AdminHandler) Promote(c echo.Context) error {
	var req promoteRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.adminUseCase.PromoteToAdmin(c.Request().Context(), req.Email)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)
	role := c.QueryParam("role")

	users, total, err := h.adminUseCase.ListUsers(c.Request().Context(), role, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, pagination.Page, pagination.PageSize)
}
