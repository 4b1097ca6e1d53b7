package repository

import (
	"context"

	"cidadealerta/internal/domain/entity"
)

// IssueFilter narrows List results. Zero values mean "no filter".
type IssueFilter struct {
	Category   string
	Status     entity.IssueStatus
	ReporterID string
	Search     string
	Limit      int
	Offset     int
}

type IssueRepository interface {
	Create(ctx context.Context, issue *entity.Issue) error
	GetByID(ctx context.Context, id string) (*entity.Issue, error)
	List(ctx context.Context, filter IssueFilter) ([]*entity.Issue, int64, error)
	UpdateStatus(ctx context.Context, id string, status entity.IssueStatus) error
	Delete(ctx context.Context, id string) error

	AddComment(ctx context.Context, issueID string, comment *entity.Comment) error
	DeleteComment(ctx context.Context, issueID, commentID string) error
	GetComment(ctx context.Context, issueID, commentID string) (*entity.Comment, error)

	Upvote(ctx context.Context, issueID, userID string) error

	// Listen blocks, invoking fn with the full newest-first issue list on the
	// initial snapshot and after every remote change, until ctx is cancelled.
	Listen(ctx context.Context, fn func(issues []*entity.Issue)) error
}
