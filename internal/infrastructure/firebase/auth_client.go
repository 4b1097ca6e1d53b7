package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/go-resty/resty/v2"
)

// Identity is the verified session: the uid plus the token attributes the
// rest of the application cares about. Admin comes from the custom claim,
// which is the canonical authorization signal.
type Identity struct {
	UID      string
	Email    string
	Name     string
	Picture  string
	Provider string
	Admin    bool
}

type AuthClient struct {
	client *auth.Client
	http   *resty.Client
	apiKey string
}

func NewAuthClient(client *auth.Client, apiKey string) *AuthClient {
	return &AuthClient{
		client: client,
		http:   resty.New(),
		apiKey: apiKey,
	}
}

func (f *AuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", &ProviderError{Code: "EMAIL_EXISTS"}
		}
		return "", err
	}

	return user.UID, nil
}

func (f *AuthClient) VerifyToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	return identityFromToken(token), nil
}

func identityFromToken(token *auth.Token) *Identity {
	identity := &Identity{
		UID:      token.UID,
		Provider: token.Firebase.SignInProvider,
	}

	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.Picture = picture
	}
	if admin, ok := token.Claims["admin"].(bool); ok {
		identity.Admin = admin
	}

	return identity
}

func (f *AuthClient) GetUIDByEmail(ctx context.Context, email string) (string, error) {
	user, err := f.client.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.UID, nil
}

// SetAdminClaim grants the admin custom claim. The claim takes effect on the
// user's next token refresh.
func (f *AuthClient) SetAdminClaim(ctx context.Context, uid string) error {
	user, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return err
	}

	claims := map[string]interface{}{}
	for k, v := range user.CustomClaims {
		claims[k] = v
	}
	claims["admin"] = true

	return f.client.SetCustomUserClaims(ctx, uid, claims)
}

func (f *AuthClient) RevokeTokens(ctx context.Context, uid string) error {
	return f.client.RevokeRefreshTokens(ctx, uid)
}

func (f *AuthClient) DeleteUser(ctx context.Context, uid string) error {
	return f.client.DeleteUser(ctx, uid)
}
