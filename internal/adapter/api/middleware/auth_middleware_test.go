package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cidadealerta/internal/infrastructure/firebase"
	"cidadealerta/pkg/errors"
)

// fakeVerifier accepts tokens of the form "token:<uid>".
type fakeVerifier struct {
	admins map[string]bool
}

func (f *fakeVerifier) VerifyToken(_ context.Context, idToken string) (*firebase.Identity, error) {
	uid, ok := strings.CutPrefix(idToken, "token:")
	if !ok {
		return nil, errors.Unauthorized("Invalid token", nil)
	}
	return &firebase.Identity{UID: uid, Admin: f.admins[uid]}, nil
}

func authContext(e *echo.Echo, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthenticate(t *testing.T) {
	e := echo.New()
	m := NewAuthMiddleware(&fakeVerifier{admins: map[string]bool{"uid-admin": true}})
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("missing header", func(t *testing.T) {
		c, _ := authContext(e, "")

		err := m.Authenticate(next)(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		c, _ := authContext(e, "Bearer garbage")

		err := m.Authenticate(next)(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		c, rec := authContext(e, "Bearer token:uid-admin")

		require.NoError(t, m.Authenticate(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "uid-admin", c.Get("uid"))
		assert.Equal(t, true, c.Get("isAdmin"))
	})
}

func TestOptionalAuthenticate(t *testing.T) {
	e := echo.New()
	m := NewAuthMiddleware(&fakeVerifier{})
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("anonymous passes through", func(t *testing.T) {
		c, rec := authContext(e, "")

		require.NoError(t, m.OptionalAuthenticate(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, c.Get("uid"))
	})

	t.Run("invalid token stays anonymous", func(t *testing.T) {
		c, rec := authContext(e, "Bearer garbage")

		require.NoError(t, m.OptionalAuthenticate(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, c.Get("uid"))
	})

	t.Run("valid token sets uid", func(t *testing.T) {
		c, rec := authContext(e, "Bearer token:uid-1")

		require.NoError(t, m.OptionalAuthenticate(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "uid-1", c.Get("uid"))
	})
}
