package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"cidadealerta/internal/domain/entity"
	"cidadealerta/internal/domain/repository"
	"cidadealerta/internal/infrastructure/firebase"
	"cidadealerta/pkg/errors"
	"cidadealerta/pkg/logger"
)

type AuthUseCase struct {
	userRepo repository.UserRepository
	auth     AuthProvider
}

func NewAuthUseCase(userRepo repository.UserRepository, auth AuthProvider) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		auth:     auth,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type AuthResult struct {
	User         *entity.AppUser
	Token        string
	RefreshToken string
	IsAdmin      bool
}

// Session is what a client learns when it presents an ID token: the profile,
// the claim-derived admin flag, and whether to show the first-login tutorial.
type Session struct {
	User         *entity.AppUser
	IsAdmin      bool
	ShowTutorial bool
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	uid, err := uc.auth.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, mapProviderError(err)
	}

	user := &entity.AppUser{
		ID:             uid,
		Email:          input.Email,
		Name:           input.Name,
		Role:           "user",
		Provider:       "password",
		IssuesReported: 0,
		CreatedAt:      time.Now(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Roll the auth account back so the email is not left orphaned.
		if delErr := uc.auth.DeleteUser(ctx, uid); delErr != nil {
			logger.Error("Failed to clean up auth user %s after profile failure: %v", uid, delErr)
		}
		return nil, errors.Internal("Failed to create user profile", err)
	}

	signIn, err := uc.auth.SignInWithCustomToken(ctx, uid)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{
		User:         user,
		Token:        signIn.IDToken,
		RefreshToken: signIn.RefreshToken,
	}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	signIn, err := uc.auth.SignInWithEmailPassword(ctx, email, password)
	if err != nil {
		return nil, mapProviderError(err)
	}

	user, err := uc.reconcileProfile(ctx, &entity.AppUser{
		ID:       signIn.UID,
		Email:    email,
		Provider: "password",
		Role:     "user",
	})
	if err != nil {
		return nil, err
	}

	result := &AuthResult{
		User:         user,
		Token:        signIn.IDToken,
		RefreshToken: signIn.RefreshToken,
	}

	// The admin claim rides inside the freshly minted token.
	if identity, err := uc.auth.VerifyToken(ctx, signIn.IDToken); err == nil {
		result.IsAdmin = identity.Admin
	}

	return result, nil
}

// EstablishSession verifies an ID token and reconciles the profile, creating
// it on first sight so social sign-ins get a profile transparently. The
// tutorial flag flips on the first session only.
func (uc *AuthUseCase) EstablishSession(ctx context.Context, idToken string) (*Session, error) {
	identity, err := uc.auth.VerifyToken(ctx, idToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}

	user, err := uc.reconcileProfile(ctx, &entity.AppUser{
		ID:       identity.UID,
		Email:    identity.Email,
		Name:     identity.Name,
		PhotoURL: identity.Picture,
		Provider: identity.Provider,
		Role:     "user",
	})
	if err != nil {
		return nil, err
	}

	showTutorial := !user.TutorialSeen
	if showTutorial {
		if err := uc.userRepo.SetTutorialSeen(ctx, user.ID); err != nil {
			logger.Warn("Failed to persist tutorial marker for %s: %v", user.ID, err)
		}
		user.TutorialSeen = true
	}

	return &Session{
		User:         user,
		IsAdmin:      identity.Admin,
		ShowTutorial: showTutorial,
	}, nil
}

func (uc *AuthUseCase) reconcileProfile(ctx context.Context, candidate *entity.AppUser) (*entity.AppUser, error) {
	user, err := uc.userRepo.GetByID(ctx, candidate.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	candidate.IssuesReported = 0
	candidate.CreatedAt = time.Now()
	if err := uc.userRepo.Create(ctx, candidate); err != nil {
		return nil, errors.Internal("Failed to create user profile", err)
	}

	return candidate, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, uid string) error {
	if err := uc.auth.RevokeTokens(ctx, uid); err != nil {
		return errors.Internal("Failed to revoke session", err)
	}
	return nil
}

func (uc *AuthUseCase) GetUserByID(ctx context.Context, id string) (*entity.AppUser, error) {
	return uc.userRepo.GetByID(ctx, id)
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, uid, name, photoURL string) (*entity.AppUser, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	user.Name = name
	user.PhotoURL = photoURL
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return uc.userRepo.GetByID(ctx, uid)
}

// mapProviderError translates identity toolkit error codes into user-facing
// failures. Unknown codes surface as internal errors.
func mapProviderError(err error) error {
	var provErr *firebase.ProviderError
	if !stderrors.As(err, &provErr) {
		return errors.Internal("Identity provider request failed", err)
	}

	switch provErr.Code {
	case "EMAIL_EXISTS":
		return errors.Conflict("Email already in use", err)
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return errors.Unauthorized("Invalid credentials", err)
	case "USER_DISABLED":
		return errors.Forbidden("Account is disabled", err)
	case "WEAK_PASSWORD":
		return errors.BadRequest("Password is too weak", err)
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return errors.TooManyRequests("Too many attempts, try again later", err)
	default:
		return errors.Internal("Identity provider request failed", err)
	}
}
