package usecase

import (
	"context"

	"cidadealerta/internal/domain/entity"
	"cidadealerta/internal/domain/repository"
	"cidadealerta/pkg/errors"
)

type AdminUseCase struct {
	userRepo repository.UserRepository
	auth     AuthProvider
}

func NewAdminUseCase(userRepo repository.UserRepository, auth AuthProvider) *AdminUseCase {
	return &AdminUseCase{
		userRepo: userRepo,
		auth:     auth,
	}
}

// PromoteToAdmin sets the admin custom claim for the user behind email and
// mirrors the role onto the profile document in the same flow, so the claim
// and the displayed role cannot drift apart. The caller's next token refresh
// picks the claim up.
func (uc *AdminUseCase) PromoteToAdmin(ctx context.Context, email string) (*entity.AppUser, error) {
	uid, err := uc.auth.GetUIDByEmail(ctx, email)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if err := uc.auth.SetAdminClaim(ctx, uid); err != nil {
		return nil, errors.Internal("Failed to set admin claim", err)
	}

	if err := uc.userRepo.SetRole(ctx, uid, "admin"); err != nil {
		return nil, err
	}

	return uc.userRepo.GetByID(ctx, uid)
}

func (uc *AdminUseCase) ListUsers(ctx context.Context, role string, limit, offset int) ([]*entity.AppUser, int64, error) {
	return uc.userRepo.List(ctx, role, limit, offset)
}
