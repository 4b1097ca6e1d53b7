package usecase

import (
	"context"

	"cidadealerta/internal/infrastructure/firebase"
)

// AuthProvider is the slice of the identity provider the use cases need.
// Satisfied by infrastructure/firebase.AuthClient; tests supply fakes.
type AuthProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, idToken string) (*firebase.Identity, error)
	GetUIDByEmail(ctx context.Context, email string) (string, error)
	SetAdminClaim(ctx context.Context, uid string) error
	RevokeTokens(ctx context.Context, uid string) error
	DeleteUser(ctx context.Context, uid string) error
	SignInWithEmailPassword(ctx context.Context, email, password string) (*firebase.SignInResult, error)
	SignInWithCustomToken(ctx context.Context, uid string) (*firebase.SignInResult, error)
}
