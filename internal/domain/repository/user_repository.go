package repository

import (
	"context"

	"cidadealerta/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.AppUser) error
	GetByID(ctx context.Context, id string) (*entity.AppUser, error)
	GetByEmail(ctx context.Context, email string) (*entity.AppUser, error)
	Update(ctx context.Context, user *entity.AppUser) error
	SetRole(ctx context.Context, id, role string) error
	SetTutorialSeen(ctx context.Context, id string) error
	IncrementIssuesReported(ctx context.Context, id string) error
	List(ctx context.Context, role string, limit, offset int) ([]*entity.AppUser, int64, error)
	TopReporters(ctx context.Context, limit int) ([]*entity.AppUser, error)
}
