package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAccessToken(t *testing.T) {
	t.Run("Cookie Preferred", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie_token"})
		// Add header as well to ensure cookie takes precedence
		req.Header.Set("Authorization", "Bearer header_token")

		token := ExtractAccessToken(req)
		assert.Equal(t, "cookie_token", token)
	})

	t.Run("Header Fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header_token")

		token := ExtractAccessToken(req)
		assert.Equal(t, "header_token", token)
	})

	t.Run("Empty Cookie Falls Back to Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: ""})
		req.Header.Set("Authorization", "Bearer header_token")

		token := ExtractAccessToken(req)
		assert.Equal(t, "header_token", token)
	})

	t.Run("No Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		token := ExtractAccessToken(req)
		assert.Empty(t, token)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic user:pass")

		token := ExtractAccessToken(req)
		assert.Empty(t, token)
	})
}

func TestIssuer_GenerateAndParse(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := issuer.Generate(42, "ana@example.com", "ADMIN")
		require.NoError(t, err)

		claims, err := issuer.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "ana@example.com", claims.Email)
		assert.Equal(t, "ADMIN", claims.Role)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := NewIssuer("other", time.Hour).Generate(1, "a@b.c", "USER")
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		claims := Claims{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.Error(t, err)
	})

	t.Run("MissingSecret", func(t *testing.T) {
		empty := NewIssuer("", 0)
		_, err := empty.Generate(1, "a@b.c", "USER")
		assert.ErrorIs(t, err, ErrMissingSecret)
		_, err = empty.Parse("x")
		assert.ErrorIs(t, err, ErrMissingSecret)
		assert.Equal(t, 24*time.Hour, empty.TTL())
	})
}

func TestAccessTokenCookie(t *testing.T) {
	w := httptest.NewRecorder()
	SetAccessTokenCookie(w, "tok", time.Hour, true)

	cookie := w.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(cookie, AccessTokenCookie+"=tok"))
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Secure")

	w = httptest.NewRecorder()
	ClearAccessTokenCookie(w)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}
