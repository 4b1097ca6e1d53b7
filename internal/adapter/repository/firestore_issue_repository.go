package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cidadealerta/internal/domain/entity"
	"cidadealerta/internal/domain/repository"
	"cidadealerta/pkg/errors"
	"cidadealerta/pkg/logger"
)

type firestoreIssueRepository struct {
	client *firestore.Client
}

func NewFirestoreIssueRepository(client *firestore.Client) repository.IssueRepository {
	return &firestoreIssueRepository{
		client: client,
	}
}

func (r *firestoreIssueRepository) issues() *firestore.CollectionRef {
	return r.client.Collection("issues")
}

func (r *firestoreIssueRepository) comments(issueID string) *firestore.CollectionRef {
	return r.issues().Doc(issueID).Collection("comments")
}

func (r *firestoreIssueRepository) votes(issueID string) *firestore.CollectionRef {
	return r.issues().Doc(issueID).Collection("votes")
}

func (r *firestoreIssueRepository) Create(ctx context.Context, issue *entity.Issue) error {
	if issue.ID == "" {
		issue.ID = r.issues().NewDoc().ID
	}

	now := time.Now()
	if issue.ReportedAt.IsZero() {
		issue.ReportedAt = now
	}
	issue.UpdatedAt = now

	_, err := r.issues().Doc(issue.ID).Set(ctx, encodeIssue(issue))
	if err != nil {
		return errors.Internal("Failed to create issue", err)
	}

	return nil
}

func (r *firestoreIssueRepository) GetByID(ctx context.Context, id string) (*entity.Issue, error) {
	doc, err := r.issues().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Issue", err)
		}
		return nil, errors.Internal("Failed to get issue", err)
	}

	var data issueDoc
	if err := doc.DataTo(&data); err != nil {
		return nil, errors.Internal("Failed to parse issue data", err)
	}

	issue := decodeIssue(&data)
	if err := r.loadComments(ctx, issue); err != nil {
		return nil, err
	}

	return issue, nil
}

func (r *firestoreIssueRepository) loadComments(ctx context.Context, issue *entity.Issue) error {
	iter := r.comments(issue.ID).OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to load issue comments", err)
		}

		var comment entity.Comment
		if err := doc.DataTo(&comment); err != nil {
			return errors.Internal("Failed to parse comment data", err)
		}
		issue.Comments = append(issue.Comments, &comment)
	}

	return nil
}

func (r *firestoreIssueRepository) List(ctx context.Context, filter repository.IssueFilter) ([]*entity.Issue, int64, error) {
	query := r.issues().Query

	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status", "==", string(filter.Status))
	}
	if filter.ReporterID != "" {
		query = query.Where("reporterId", "==", filter.ReporterID)
	}

	query = query.OrderBy("reportedAt", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var issues []*entity.Issue
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate issues", err)
		}

		var data issueDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, 0, errors.Internal("Failed to parse issue data", err)
		}
		issues = append(issues, decodeIssue(&data))
	}

	// Firestore has no text search; filter decoded results instead.
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		matched := issues[:0]
		for _, issue := range issues {
			if strings.Contains(strings.ToLower(issue.Title), needle) ||
				strings.Contains(strings.ToLower(issue.Description), needle) {
				matched = append(matched, issue)
			}
		}
		issues = matched
	}

	total := int64(len(issues))

	if filter.Offset > 0 {
		if filter.Offset >= len(issues) {
			return nil, total, nil
		}
		issues = issues[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(issues) {
		issues = issues[:filter.Limit]
	}

	return issues, total, nil
}

func (r *firestoreIssueRepository) UpdateStatus(ctx context.Context, id string, newStatus entity.IssueStatus) error {
	_, err := r.issues().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(newStatus)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Issue", err)
		}
		return errors.Internal("Failed to update issue status", err)
	}

	return nil
}

func (r *firestoreIssueRepository) Delete(ctx context.Context, id string) error {
	if err := r.deleteSubcollection(ctx, r.comments(id)); err != nil {
		return err
	}
	if err := r.deleteSubcollection(ctx, r.votes(id)); err != nil {
		return err
	}

	_, err := r.issues().Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete issue", err)
	}

	return nil
}

func (r *firestoreIssueRepository) deleteSubcollection(ctx context.Context, coll *firestore.CollectionRef) error {
	iter := coll.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to iterate subcollection", err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.Internal("Failed to delete subcollection document", err)
		}
	}

	return nil
}

// AddComment creates the comment document and bumps the parent counters in
// one transaction, so the collection listener fires and concurrent comment
// writes never lose an update.
func (r *firestoreIssueRepository) AddComment(ctx context.Context, issueID string, comment *entity.Comment) error {
	issueRef := r.issues().Doc(issueID)
	commentRef := r.comments(issueID).Doc(comment.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(issueRef); err != nil {
			return err
		}
		if err := tx.Create(commentRef, comment); err != nil {
			return err
		}
		return tx.Update(issueRef, []firestore.Update{
			{Path: "commentCount", Value: firestore.Increment(1)},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Issue", err)
		}
		return errors.Internal("Failed to add comment", err)
	}

	return nil
}

func (r *firestoreIssueRepository) DeleteComment(ctx context.Context, issueID, commentID string) error {
	issueRef := r.issues().Doc(issueID)
	commentRef := r.comments(issueID).Doc(commentID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(commentRef); err != nil {
			return err
		}
		if err := tx.Delete(commentRef); err != nil {
			return err
		}
		return tx.Update(issueRef, []firestore.Update{
			{Path: "commentCount", Value: firestore.Increment(-1)},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Comment", err)
		}
		return errors.Internal("Failed to delete comment", err)
	}

	return nil
}

func (r *firestoreIssueRepository) GetComment(ctx context.Context, issueID, commentID string) (*entity.Comment, error) {
	doc, err := r.comments(issueID).Doc(commentID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Comment", err)
		}
		return nil, errors.Internal("Failed to get comment", err)
	}

	var comment entity.Comment
	if err := doc.DataTo(&comment); err != nil {
		return nil, errors.Internal("Failed to parse comment data", err)
	}

	return &comment, nil
}

// Upvote records one vote per (issue, user): the vote document id is the
// voter uid, so a second vote fails the transactional create.
func (r *firestoreIssueRepository) Upvote(ctx context.Context, issueID, userID string) error {
	issueRef := r.issues().Doc(issueID)
	voteRef := r.votes(issueID).Doc(userID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(issueRef); err != nil {
			return err
		}
		if err := tx.Create(voteRef, &entity.Vote{UserID: userID, CreatedAt: time.Now()}); err != nil {
			return err
		}
		return tx.Update(issueRef, []firestore.Update{
			{Path: "upvotes", Value: firestore.Increment(1)},
			{Path: "updatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		switch status.Code(err) {
		case codes.NotFound:
			return errors.NotFound("Issue", err)
		case codes.AlreadyExists:
			return errors.Conflict("Issue already upvoted", err)
		}
		return errors.Internal("Failed to upvote issue", err)
	}

	return nil
}

// Listen mirrors the remote issue collection: every snapshot the backend
// emits is decoded into a full newest-first list and handed to fn. Comment
// writes bump the parent document, so they surface here as well.
func (r *firestoreIssueRepository) Listen(ctx context.Context, fn func(issues []*entity.Issue)) error {
	snapshots := r.issues().Query.OrderBy("reportedAt", firestore.Desc).Snapshots(ctx)
	defer snapshots.Stop()

	for {
		snap, err := snapshots.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled || ctx.Err() != nil {
				return nil
			}
			return errors.Internal("Issue listener failed", err)
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			logger.Error("Failed to read issue snapshot: %v", err)
			continue
		}

		issues := make([]*entity.Issue, 0, len(docs))
		for _, doc := range docs {
			var data issueDoc
			if err := doc.DataTo(&data); err != nil {
				logger.Error("Failed to parse issue %s in snapshot: %v", doc.Ref.ID, err)
				continue
			}
			issue := decodeIssue(&data)
			if err := r.loadComments(ctx, issue); err != nil {
				logger.Error("Failed to load comments for issue %s: %v", issue.ID, err)
			}
			issues = append(issues, issue)
		}

		fn(issues)
	}
}
