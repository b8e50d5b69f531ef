package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, VerifyPassword(hash, "Sup3rSecret"))
	assert.False(t, VerifyPassword(hash, "wrong"))
	assert.False(t, VerifyPassword("", "anything"), "OAuth-only accounts have no password")
}

func TestNewAccessToken(t *testing.T) {
	const secret = "test-secret"
	at, err := NewAccessToken(secret, 42, "USER", 15)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "USER", claims["role"])
}

func TestRefreshTokenHashing(t *testing.T) {
	rt, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96)

	h1 := HashRefreshRaw(rt.Raw)
	h2 := HashRefreshRaw(rt.Raw)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, rt.Raw, h1)
	assert.Len(t, h1, 64)

	other, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.NotEqual(t, HashRefreshRaw(other.Raw), h1)
}

func TestNewCode(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		code, err := NewCode("order", 8)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(code, "ORDER-"))
		suffix := strings.TrimPrefix(code, "ORDER-")
		assert.Len(t, suffix, 8)
		for _, r := range suffix {
			assert.Contains(t, codeAlphabet, string(r))
		}
	})

	t.Run("codes differ across calls", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			code, err := NewCode("order", 8)
			require.NoError(t, err)
			assert.False(t, seen[code], "duplicate code %s", code)
			seen[code] = true
		}
	})

	t.Run("non-positive length rejected", func(t *testing.T) {
		_, err := NewCode("order", 0)
		assert.Error(t, err)
	})
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Bali Sunrise Trek":     "bali-sunrise-trek",
		"  Komodo  Island 3D2N": "komodo-island-3d2n",
		"ÜberTour!":             "bertour",
		"":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}
