package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
    t.Helper()
    tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    s, err := tok.SignedString([]byte(secret))
    require.NoError(t, err)
    return s
}

func runRequest(auth string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
    e := echo.New()
    h := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
    for i := len(mws) - 1; i >= 0; i-- {
        h = mws[i](h)
    }
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    if auth != "" {
        req.Header.Set("Authorization", auth)
    }
    rec := httptest.NewRecorder()
    _ = h(e.NewContext(req, rec))
    return rec
}

func TestJWTAuth(t *testing.T) {
    t.Run("missing header", func(t *testing.T) {
        rec := runRequest("", JWTAuth(testSecret))
        assert.Equal(t, http.StatusUnauthorized, rec.Code)
    })

    t.Run("garbage token", func(t *testing.T) {
        rec := runRequest("Bearer not-a-jwt", JWTAuth(testSecret))
        assert.Equal(t, http.StatusUnauthorized, rec.Code)
    })

    t.Run("wrong secret", func(t *testing.T) {
        tok := signToken(t, "other-secret", jwt.MapClaims{
            "sub": 7, "role": "USER", "exp": time.Now().Add(time.Hour).Unix(),
        })
        rec := runRequest("Bearer "+tok, JWTAuth(testSecret))
        assert.Equal(t, http.StatusUnauthorized, rec.Code)
    })

    t.Run("expired token", func(t *testing.T) {
        tok := signToken(t, testSecret, jwt.MapClaims{
            "sub": 7, "role": "USER", "exp": time.Now().Add(-time.Hour).Unix(),
        })
        rec := runRequest("Bearer "+tok, JWTAuth(testSecret))
        assert.Equal(t, http.StatusUnauthorized, rec.Code)
    })

    t.Run("valid token passes claims through", func(t *testing.T) {
        tok := signToken(t, testSecret, jwt.MapClaims{
            "sub": 7, "role": "USER", "exp": time.Now().Add(time.Hour).Unix(),
        })
        rec := runRequest("Bearer "+tok, JWTAuth(testSecret))
        assert.Equal(t, http.StatusOK, rec.Code)
    })
}

func TestRequireRole(t *testing.T) {
    token := func(role string) string {
        return "Bearer " + signToken(t, testSecret, jwt.MapClaims{
            "sub": 7, "role": role, "exp": time.Now().Add(time.Hour).Unix(),
        })
    }

    t.Run("allowed role", func(t *testing.T) {
        rec := runRequest(token("ADMIN"), JWTAuth(testSecret), RequireRole("ADMIN"))
        assert.Equal(t, http.StatusOK, rec.Code)
    })

    t.Run("role not in set", func(t *testing.T) {
        rec := runRequest(token("USER"), JWTAuth(testSecret), RequireRole("ADMIN"))
        assert.Equal(t, http.StatusForbidden, rec.Code)
    })

    t.Run("multiple allowed roles", func(t *testing.T) {
        rec := runRequest(token("USER"), JWTAuth(testSecret), RequireRole("USER", "ADMIN"))
        assert.Equal(t, http.StatusOK, rec.Code)
    })

    t.Run("no role in context", func(t *testing.T) {
        rec := runRequest("", RequireRole("USER"))
        assert.Equal(t, http.StatusForbidden, rec.Code)
    })
}

func TestCurrentUserID(t *testing.T) {
    e := echo.New()
    c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

    assert.Equal(t, "anon", currentUserID(c))

    c.Set("user_id", float64(42)) // decoded JWT numeric claim
    assert.Equal(t, "42", currentUserID(c))

    c.Set("user_id", "77")
    assert.Equal(t, "77", currentUserID(c))
}
