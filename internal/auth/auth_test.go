package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var key = []byte("test-key")

func protected(env *Authenv) (http.Handler, *string) {
	var seen string
	return env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = Subject(r.Context())
	})), &seen
}

func TestAuthMiddlewareBearer(t *testing.T) {
	tok, err := IssueToken(key, "operator", time.Hour)
	require.NoError(t, err)

	h, seen := protected(&Authenv{JWTkey: key})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "operator", *seen)
}

func TestAuthMiddlewareCookie(t *testing.T) {
	tok, err := IssueToken(key, "dashboard", time.Hour)
	require.NoError(t, err)

	h, seen := protected(&Authenv{JWTkey: key})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dashboard", *seen)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	expired, err := IssueToken(key, "operator", -time.Minute)
	require.NoError(t, err)
	wrongKey, err := IssueToken([]byte("other"), "operator", time.Hour)
	require.NoError(t, err)
	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	h, _ := protected(&Authenv{JWTkey: key})
	for name, header := range map[string]string{
		"missing":   "",
		"malformed": "Bearer abc",
		"expired":   "Bearer " + expired,
		"wrong key": "Bearer " + wrongKey,
		"alg none":  "Bearer " + unsigned,
		"no scheme": expired,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, name)
	}
}

func TestLimitMiddleware(t *testing.T) {
	l := NewIPRateLimiter(0.001, 2)
	h := l.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:" + []string{"1000", "1001", "1002"}[i]
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{200, 200, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
