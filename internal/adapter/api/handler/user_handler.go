package handler

import (
	"github.com/labstack/echo/v4"

	"cidadealerta/internal/usecase"
	"cidadealerta/pkg/errors"
	"cidadealerta/pkg/response"
)

type UserHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewUserHandler(authUseCase *usecase.AuthUseCase) *UserHandler {
	return &UserHandler{
		authUseCase: authUseCase,
	}
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.authUseCase.GetUserByID(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type updateProfileRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.authUseCase.UpdateProfile(c.Request().Context(), uid, req.Name, req.PhotoURL)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
