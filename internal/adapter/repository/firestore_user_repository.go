package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"cidadealerta/internal/domain/entity"
	"cidadealerta/internal/domain/repository"
	"cidadealerta/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) users() *firestore.CollectionRef {
	return r.client.Collection("users")
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.AppUser) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := r.users().Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user profile", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.AppUser, error) {
	doc, err := r.users().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user profile", err)
	}

	var user entity.AppUser
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.AppUser, error) {
	iter := r.users().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("User", err)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query user by email", err)
	}

	var user entity.AppUser
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

// Update merges the mutable profile fields, leaving counters and role alone.
// Empty values are skipped so partial updates never blank existing data.
func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.AppUser) error {
	updateData := map[string]interface{}{
		"name":      user.Name,
		"photoURL":  user.PhotoURL,
		"updatedAt": time.Now(),
	}

	cleanUpdateData := make(map[string]interface{})
	for key, value := range updateData {
		if strVal, ok := value.(string); ok && strVal == "" {
			continue
		}
		cleanUpdateData[key] = value
	}

	_, err := r.users().Doc(user.ID).Set(ctx, cleanUpdateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update user profile", err)
	}
	return nil
}

func (r *firestoreUserRepository) SetRole(ctx context.Context, id, role string) error {
	_, err := r.users().Doc(id).Update(ctx, []firestore.Update{
		{Path: "role", Value: role},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to update user role", err)
	}
	return nil
}

func (r *firestoreUserRepository) SetTutorialSeen(ctx context.Context, id string) error {
	_, err := r.users().Doc(id).Update(ctx, []firestore.Update{
		{Path: "tutorialSeen", Value: true},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to mark tutorial as seen", err)
	}
	return nil
}

func (r *firestoreUserRepository) IncrementIssuesReported(ctx context.Context, id string) error {
	_, err := r.users().Doc(id).Update(ctx, []firestore.Update{
		{Path: "issuesReported", Value: firestore.Increment(1)},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to increment reported issues counter", err)
	}
	return nil
}

func (r *firestoreUserRepository) List(ctx context.Context, role string, limit, offset int) ([]*entity.AppUser, int64, error) {
	query := r.users().Query
	if role != "" {
		query = query.Where("role", "==", role)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count users", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var users []*entity.AppUser
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate users", err)
		}

		var user entity.AppUser
		if err := doc.DataTo(&user); err != nil {
			return nil, 0, errors.Internal("Failed to parse user data", err)
		}
		users = append(users, &user)
	}

	return users, total, nil
}

func (r *firestoreUserRepository) TopReporters(ctx context.Context, limit int) ([]*entity.AppUser, error) {
	if limit <= 0 {
		limit = 10
	}

	iter := r.users().OrderBy("issuesReported", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var users []*entity.AppUser
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate top reporters", err)
		}

		var user entity.AppUser
		if err := doc.DataTo(&user); err != nil {
			return nil, errors.Internal("Failed to parse user data", err)
		}
		users = append(users, &user)
	}

	return users, nil
}
