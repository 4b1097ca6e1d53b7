package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"cidadealerta/internal/domain/entity"
	"cidadealerta/internal/domain/repository"
	"cidadealerta/pkg/errors"
	"cidadealerta/pkg/logger"
)

type IssueUseCase struct {
	issueRepo repository.IssueRepository
	userRepo  repository.UserRepository
}

func NewIssueUseCase(issueRepo repository.IssueRepository, userRepo repository.UserRepository) *IssueUseCase {
	return &IssueUseCase{
		issueRepo: issueRepo,
		userRepo:  userRepo,
	}
}

type ReportIssueInput struct {
	Title       string
	Description string
	Category    string
	Lat         float64
	Lng         float64
	Address     string
	ImageURL    string
}

// ReportIssue creates a new issue in the "Recebido" state and bumps the
// reporter's counter. The category is validated against the canonical set
// here, not just in the client.
func (uc *IssueUseCase) ReportIssue(ctx context.Context, reporterID string, input ReportIssueInput) (*entity.Issue, error) {
	if !entity.ValidCategory(input.Category) {
		return nil, errors.BadRequest(fmt.Sprintf("Unknown category %q", input.Category), nil)
	}

	reporter, err := uc.userRepo.GetByID(ctx, reporterID)
	if err != nil {
		return nil, err
	}

	issue := &entity.Issue{
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Status:       entity.StatusReceived,
		Location:     entity.GeoPoint{Lat: input.Lat, Lng: input.Lng},
		Address:      input.Address,
		ImageURL:     input.ImageURL,
		ReporterID:   reporter.ID,
		ReporterName: reporter.Name,
		Upvotes:      0,
		ReportedAt:   time.Now(),
	}

	if err := uc.issueRepo.Create(ctx, issue); err != nil {
		return nil, err
	}

	if err := uc.userRepo.IncrementIssuesReported(ctx, reporter.ID); err != nil {
		logger.Warn("Failed to bump reported counter for %s: %v", reporter.ID, err)
	}

	return issue, nil
}

func (uc *IssueUseCase) GetIssue(ctx context.Context, id string) (*entity.Issue, error) {
	return uc.issueRepo.GetByID(ctx, id)
}

func (uc *IssueUseCase) ListIssues(ctx context.Context, filter repository.IssueFilter) ([]*entity.Issue, int64, error) {
	if filter.Category != "" && !entity.ValidCategory(filter.Category) {
		return nil, 0, errors.BadRequest(fmt.Sprintf("Unknown category %q", filter.Category), nil)
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, errors.BadRequest(fmt.Sprintf("Unknown status %q", filter.Status), nil)
	}
	return uc.issueRepo.List(ctx, filter)
}

// UpdateStatus overwrites the triage state. Any transition between the three
// states is allowed.
func (uc *IssueUseCase) UpdateStatus(ctx context.Context, id string, status entity.IssueStatus) (*entity.Issue, error) {
	if !status.Valid() {
		return nil, errors.BadRequest(fmt.Sprintf("Unknown status %q", status), nil)
	}

	if err := uc.issueRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	return uc.issueRepo.GetByID(ctx, id)
}

func (uc *IssueUseCase) DeleteIssue(ctx context.Context, id string) error {
	if _, err := uc.issueRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.issueRepo.Delete(ctx, id)
}

type AddCommentInput struct {
	Content string
}

// AddComment stamps the author role from the verified session at write time,
// so an admin's badge is visible in the very next snapshot.
func (uc *IssueUseCase) AddComment(ctx context.Context, issueID, authorID string, isAdmin bool, input AddCommentInput) (*entity.Comment, error) {
	author, err := uc.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		ID:             uuid.New().String(),
		AuthorID:       author.ID,
		AuthorName:     author.Name,
		AuthorPhotoURL: author.PhotoURL,
		Content:        input.Content,
		CreatedAt:      time.Now(),
	}
	if isAdmin {
		comment.AuthorRole = "admin"
	}

	if err := uc.issueRepo.AddComment(ctx, issueID, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (uc *IssueUseCase) DeleteComment(ctx context.Context, issueID, commentID, requesterID string, isAdmin bool) error {
	comment, err := uc.issueRepo.GetComment(ctx, issueID, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != requesterID && !isAdmin {
		return errors.Forbidden("Only the author or an admin can delete a comment", nil)
	}

	return uc.issueRepo.DeleteComment(ctx, issueID, commentID)
}

func (uc *IssueUseCase) Upvote(ctx context.Context, issueID, userID string) (*entity.Issue, error) {
	if err := uc.issueRepo.Upvote(ctx, issueID, userID); err != nil {
		return nil, err
	}
	return uc.issueRepo.GetByID(ctx, issueID)
}

type DashboardStats struct {
	Total        int64             `json:"total"`
	Received     int64             `json:"received"`
	InProgress   int64             `json:"inProgress"`
	Resolved     int64             `json:"resolved"`
	ByCategory   map[string]int64  `json:"by_category"`
	TopReporters []*entity.AppUser `json:"top_reporters"`
	Recent       []*entity.Issue   `json:"recent"`
}

// DashboardStats aggregates the current issue list for the analytics
// dashboard and the community ranking.
func (uc *IssueUseCase) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	issues, total, err := uc.issueRepo.List(ctx, repository.IssueFilter{})
	if err != nil {
		return nil, err
	}

	byStatus := lo.CountValuesBy(issues, func(issue *entity.Issue) entity.IssueStatus {
		return issue.Status
	})

	byCategory := make(map[string]int64, len(entity.Categories))
	for _, category := range entity.Categories {
		byCategory[category] = 0
	}
	for _, issue := range issues {
		byCategory[issue.Category]++
	}

	topReporters, err := uc.userRepo.TopReporters(ctx, 10)
	if err != nil {
		logger.Warn("Failed to load top reporters: %v", err)
	}

	recent := issues
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return &DashboardStats{
		Total:        total,
		Received:     int64(byStatus[entity.StatusReceived]),
		InProgress:   int64(byStatus[entity.StatusInReview]),
		Resolved:     int64(byStatus[entity.StatusResolved]),
		ByCategory:   byCategory,
		TopReporters: topReporters,
		Recent:       recent,
	}, nil
}
