package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cidadealerta/internal/infrastructure/firebase"
	"cidadealerta/pkg/errors"
)

func TestRegisterCreatesProfileWithDefaults(t *testing.T) {
	userRepo := newFakeUserRepo()
	auth := newFakeAuth()
	uc := NewAuthUseCase(userRepo, auth)

	result, err := uc.Register(context.Background(), RegisterInput{
		Email:    "maria@example.com",
		Password: "s3cret-pass",
		Name:     "Maria Silva",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "maria@example.com", result.User.Email)
	assert.Equal(t, "user", result.User.Role)
	assert.Equal(t, int64(0), result.User.IssuesReported)
	assert.False(t, result.IsAdmin)

	stored, err := userRepo.GetByID(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", stored.Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	auth := newFakeAuth()
	uc := NewAuthUseCase(userRepo, auth)

	_, err := uc.Register(context.Background(), RegisterInput{Email: "maria@example.com", Password: "s3cret-pass", Name: "Maria"})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), RegisterInput{Email: "maria@example.com", Password: "other-pass", Name: "Other"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestLoginInvalidCredentials(t *testing.T) {
	userRepo := newFakeUserRepo()
	auth := newFakeAuth()
	auth.signInErr = &firebase.ProviderError{Code: "INVALID_LOGIN_CREDENTIALS"}
	uc := NewAuthUseCase(userRepo, auth)

	_, err := uc.Login(context.Background(), "maria@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Invalid credentials", appErr.Message)
}

func TestLoginReconcilesMissingProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	auth := newFakeAuth()
	uid, err := auth.CreateUser(context.Background(), "joao@example.com", "s3cret-pass", "João")
	require.NoError(t, err)
	uc := NewAuthUseCase(userRepo, auth)

	// The auth account exists but no profile document does yet.
	result, err := uc.Login(context.Background(), "joao@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, uid, result.User.ID)
	assert.Equal(t, "user", result.User.Role)

	stored, err := userRepo.GetByID(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "joao@example.com", stored.Email)
}

func TestLoginCarriesAdminClaim(t *testing.T) {
	userRepo := newFakeUserRepo()
	auth := newFakeAuth()
	uid, err := auth.CreateUser(context.Background(), "gestora@example.com", "s3cret-pass", "Gestora")
	require.NoError(t, err)
	auth.claims[uid] = true
	uc := NewAuthUseCase(userRepo, auth)

	result, err := uc.Login(context.Background(), "gestora@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, result.IsAdmin)

	regular, err := uc.Register(context.Background(), RegisterInput{Email: "maria@example.com", Password: "s3cret-pass", Name: "Maria"})
	require.NoError(t, err)
	login, err := uc.Login(context.Background(), "maria@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.False(t, login.IsAdmin)
	assert.Equal(t, regular.User.ID, login.User.ID)
}

func TestEstablishSessionCreatesSocialProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	auth := newFakeAuth()
	auth.accounts["uid-social"] = "ana@example.com"
	uc := NewAuthUseCase(userRepo, auth)

	session, err := uc.EstablishSession(context.Background(), "token:uid-social")
	require.NoError(t, err)
	assert.Equal(t, "uid-social", session.User.ID)
	assert.Equal(t, "ana@example.com", session.User.Email)
	assert.Equal(t, "google.com", session.User.Provider)
	assert.False(t, session.IsAdmin)
}

func TestEstablishSessionTutorialShownOnce(t *testing.T) {
	userRepo := newFakeUserRepo()
	auth := newFakeAuth()
	auth.accounts["uid-social"] = "ana@example.com"
	uc := NewAuthUseCase(userRepo, auth)

	first, err := uc.EstablishSession(context.Background(), "token:uid-social")
	require.NoError(t, err)
	assert.True(t, first.ShowTutorial)

	second, err := uc.EstablishSession(context.Background(), "token:uid-social")
	require.NoError(t, err)
	assert.False(t, second.ShowTutorial)
}

func TestEstablishSessionInvalidToken(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), newFakeAuth())

	_, err := uc.EstablishSession(context.Background(), "garbage")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestEstablishSessionCarriesAdminClaim(t *testing.T) {
	userRepo := newFakeUserRepo()
	auth := newFakeAuth()
	auth.accounts["uid-admin"] = "prefeitura@example.com"
	auth.claims["uid-admin"] = true
	uc := NewAuthUseCase(userRepo, auth)

	session, err := uc.EstablishSession(context.Background(), "token:uid-admin")
	require.NoError(t, err)
	assert.True(t, session.IsAdmin)
}

func TestUpdateProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	auth := newFakeAuth()
	uc := NewAuthUseCase(userRepo, auth)

	result, err := uc.Register(context.Background(), RegisterInput{Email: "maria@example.com", Password: "s3cret-pass", Name: "Maria"})
	require.NoError(t, err)

	updated, err := uc.UpdateProfile(context.Background(), result.User.ID, "Maria S.", "https://example.com/avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "Maria S.", updated.Name)
	assert.Equal(t, "https://example.com/avatar.png", updated.PhotoURL)
}
