package firebase

import (
	"context"
	"fmt"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// ProviderError carries the identity provider's error code (EMAIL_EXISTS,
// EMAIL_NOT_FOUND, INVALID_PASSWORD, WEAK_PASSWORD, ...) so callers can map
// it to a user-facing failure.
type ProviderError struct {
	Code string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("identity provider error: %s", e.Code)
}

type SignInResult struct {
	UID          string
	IDToken      string
	RefreshToken string
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

type providerErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithEmailPassword exchanges credentials for an ID token through the
// identity toolkit REST API. The admin SDK cannot mint ID tokens itself.
func (f *AuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (*SignInResult, error) {
	return f.exchange(ctx, "accounts:signInWithPassword", map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

// SignInWithCustomToken mints a custom token for uid and exchanges it for an
// ID token, used right after registration.
func (f *AuthClient) SignInWithCustomToken(ctx context.Context, uid string) (*SignInResult, error) {
	customToken, err := f.client.CustomToken(ctx, uid)
	if err != nil {
		return nil, err
	}

	return f.exchange(ctx, "accounts:signInWithCustomToken", map[string]interface{}{
		"token":             customToken,
		"returnSecureToken": true,
	})
}

func (f *AuthClient) exchange(ctx context.Context, endpoint string, body map[string]interface{}) (*SignInResult, error) {
	var result signInResponse
	var provErr providerErrorResponse

	resp, err := f.http.R().
		SetContext(ctx).
		SetQueryParam("key", f.apiKey).
		SetBody(body).
		SetResult(&result).
		SetError(&provErr).
		Post(fmt.Sprintf("%s/%s", identityToolkitURL, endpoint))
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		if provErr.Error.Message != "" {
			return nil, &ProviderError{Code: provErr.Error.Message}
		}
		return nil, fmt.Errorf("token exchange failed with status %d", resp.StatusCode())
	}

	return &SignInResult{
		UID:          result.LocalID,
		IDToken:      result.IDToken,
		RefreshToken: result.RefreshToken,
	}, nil
}
