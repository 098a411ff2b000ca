package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sociallink-app/backend/internal/apperr"
	"github.com/sociallink-app/backend/internal/middleware"
	"github.com/sociallink-app/backend/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID uint, ttl time.Duration) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func invoke(t *testing.T, authHeader string) (uint, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var gotID uint
	handler := middleware.JWTAuth(testSecret)(func(c echo.Context) error {
		id, err := middleware.CurrentUserID(c)
		if err != nil {
			return err
		}
		gotID = id
		return nil
	})
	return gotID, handler(c)
}

func TestJWTAuthValidToken(t *testing.T) {
	token := signToken(t, testSecret, 42, time.Hour)
	id, err := invoke(t, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestJWTAuthMissingHeader(t *testing.T) {
	_, err := invoke(t, "")
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Token abc", "Bearer a b c"} {
		_, err := invoke(t, header)
		require.Error(t, err, header)
		assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err), header)
	}
}

func TestJWTAuthWrongSignature(t *testing.T) {
	token := signToken(t, "other-secret", 42, time.Hour)
	_, err := invoke(t, "Bearer "+token)
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestJWTAuthExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, 42, -time.Hour)
	_, err := invoke(t, "Bearer "+token)
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}

func TestJWTAuthGarbageToken(t *testing.T) {
	_, err := invoke(t, "Bearer not.a.jwt")
	require.Error(t, err)
	assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
}
