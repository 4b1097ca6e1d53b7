package handler

import (
	"github.com/labstack/echo/v4"

	"cidadealerta/internal/domain/entity"
	"cidadealerta/internal/domain/repository"
	"cidadealerta/internal/usecase"
	"cidadealerta/pkg/errors"
	"cidadealerta/pkg/response"
	"cidadealerta/pkg/utils"
)

type IssueHandler struct {
	issueUseCase *usecase.IssueUseCase
}

func NewIssueHandler(issueUseCase *usecase.IssueUseCase) *IssueHandler {
	return &IssueHandler{
		issueUseCase: issueUseCase,
	}
}

type reportIssueRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required,max=2000"`
	Category    string  `json:"category" validate:"required"`
	Lat         float64 `json:"lat" validate:"required,latitude"`
	Lng         float64 `json:"lng" validate:"required,longitude"`
	Address     string  `json:"address" validate:"omitempty,max=300"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
}

func (h *IssueHandler) ReportIssue(c echo.Context) error {
	var req reportIssueRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reporterID := c.Get("uid").(string)

	issue, err := h.issueUseCase.ReportIssue(c.Request().Context(), reporterID, usecase.ReportIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Address:     req.Address,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, issue)
}

func (h *IssueHandler) ListIssues(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	filter := repository.IssueFilter{
		Category: c.QueryParam("category"),
		Status:   entity.IssueStatus(c.QueryParam("status")),
		Search:   c.QueryParam("search"),
		Limit:    pagination.PageSize,
		Offset:   pagination.Offset,
	}
	if c.QueryParam("mine") == "true" {
		if uid, ok := c.Get("uid").(string); ok {
			filter.ReporterID = uid
		}
	}

	issues, total, err := h.issueUseCase.ListIssues(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, issues, total, pagination.Page, pagination.PageSize)
}

func (h *IssueHandler) GetIssue(c echo.Context) error {
	issue, err := h.issueUseCase.GetIssue(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, issue)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *IssueHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	issue, err := h.issueUseCase.UpdateStatus(c.Request().Context(), c.Param("id"), entity.IssueStatus(req.Status))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, issue)
}

func (h *IssueHandler) DeleteIssue(c echo.Context) error {
	if err := h.issueUseCase.DeleteIssue(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Issue deleted",
	})
}

type addCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

func (h *IssueHandler) AddComment(c echo.Context) error {
	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	authorID := c.Get("uid").(string)
	isAdmin, _ := c.Get("isAdmin").(bool)

	comment, err := h.issueUseCase.AddComment(c.Request().Context(), c.Param("id"), authorID, isAdmin,
		usecase.AddCommentInput{Content: req.Content})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, comment)
}

func (h *IssueHandler) DeleteComment(c echo.Context) error {
	requesterID := c.Get("uid").(string)
	isAdmin, _ := c.Get("isAdmin").(bool)

	err := h.issueUseCase.DeleteComment(c.Request().Context(), c.Param("id"), c.Param("commentId"), requesterID, isAdmin)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Comment deleted",
	})
}

func (h *IssueHandler) Upvote(c echo.Context) error {
	userID := c.Get("uid").(string)

	issue, err := h.issueUseCase.Upvote(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, issue)
}

func (h *IssueHandler) DashboardStats(c echo.Context) error {
	stats, err := h.issueUseCase.DashboardStats(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, stats)
}

// Categories exposes the canonical category list so clients never hardcode
// their own copy.
func (h *IssueHandler) Categories(c echo.Context) error {
	return response.Success(c, entity.Categories)
}
