package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"cidadealerta/internal/usecase"
	"cidadealerta/pkg/errors"
	"cidadealerta/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	User         interface{} `json:"user"`
	IsAdmin      bool        `json:"is_admin"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, authResponse{
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
		User:         result.User,
		IsAdmin:      result.IsAdmin,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, authResponse{
		Token:        result.Token,
		RefreshToken: result.RefreshToken,
		User:         result.User,
		IsAdmin:      result.IsAdmin,
	})
}

// Session is the server-side mirror of the client's auth-state change: the
// bearer token is verified, the profile fetched or created, and the admin
// flag and one-shot tutorial flag returned.
func (h *AuthHandler) Session(c echo.Context) error {
	idToken, err := bearerToken(c)
	if err != nil {
		return response.Error(c, err)
	}

	session, err := h.authUseCase.EstablishSession(c.Request().Context(), idToken)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"user":          session.User,
		"is_admin":      session.IsAdmin,
		"show_tutorial": session.ShowTutorial,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.authUseCase.Logout(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Successfully logged out",
	})
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.Unauthorized("Authorization header required", nil)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}

	return parts[1], nil
}
