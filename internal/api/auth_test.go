package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stayhaven/internal/config"
	"stayhaven/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuth(config.APIAuthConfig{JWTSecret: "secret", TokenTTL: 1})
	user := &models.User{ID: 7, Email: "host@example.com", Role: models.RoleHost}

	token, expiresAt, err := auth.IssueToken(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	identity, err := auth.parseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), identity.UserID)
	assert.Equal(t, "host@example.com", identity.Email)
	assert.Equal(t, models.RoleHost, identity.Role)
}

func TestParseTokenRejections(t *testing.T) {
	auth := NewAuth(config.APIAuthConfig{JWTSecret: "secret", TokenTTL: 1})

	t.Run("Garbage", func(t *testing.T) {
		_, err := auth.parseToken("garbage")
		assert.Error(t, err)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewAuth(config.APIAuthConfig{JWTSecret: "different", TokenTTL: 1})
		token, _, err := other.IssueToken(&models.User{ID: 1, Role: models.RoleGuest})
		require.NoError(t, err)

		_, err = auth.parseToken(token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		claims := jwt.MapClaims{
			"sub":  "1",
			"role": models.RoleGuest,
			"exp":  time.Now().Add(-time.Hour).Unix(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = auth.parseToken(signed)
		assert.Error(t, err)
	})

	t.Run("WrongAlgorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1"})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = auth.parseToken(signed)
		assert.Error(t, err)
	})

	t.Run("MissingSubject", func(t *testing.T) {
		claims := jwt.MapClaims{
			"role": models.RoleGuest,
			"exp":  time.Now().Add(time.Hour).Unix(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = auth.parseToken(signed)
		assert.Error(t, err)
	})
}

func TestRequireAuthInjectsIdentity(t *testing.T) {
	auth := NewAuth(config.APIAuthConfig{JWTSecret: "secret", TokenTTL: 1})
	token, _, err := auth.IssueToken(&models.User{ID: 9, Email: "g@example.com", Role: models.RoleGuest})
	require.NoError(t, err)

	var got Identity
	handler := auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), got.UserID)
}
