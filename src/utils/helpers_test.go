package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"usatag/src/types"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("admin@usatag.us", "admin")
	require.NoError(t, err)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@usatag.us", claims.Email)
	assert.Equal(t, "admin", claims.Name)
	assert.WithinDuration(t, claims.IssuedAt.Add(24*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestVerifyJWTRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := VerifyJWT("")
	assert.ErrorIs(t, err, types.ErrInvalidToken)

	_, err = VerifyJWT("not-a-token")
	assert.ErrorIs(t, err, types.ErrInvalidToken)

	t.Setenv("JWT_SECRET", "other-secret")
	other, err := GenerateJWT("a@b.c", "x")
	require.NoError(t, err)
	t.Setenv("JWT_SECRET", "test-secret")
	_, err = VerifyJWT(other)
	assert.ErrorIs(t, err, types.ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &types.Claims{
		Email: "a@b.c",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = VerifyJWT(signed)
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret"))
}

func TestBindError(t *testing.T) {
	body := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(strings.NewReader(`{"token":"`+strings.Repeat("x", 64)+`"}`)), 16)
	var v types.TokenRequestBody
	err := json.NewDecoder(body).Decode(&v)
	require.Error(t, err)

	status, mapped := BindError(err)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	assert.ErrorIs(t, mapped, types.ErrBodyTooLarge)

	plain := errors.New("EOF")
	status, mapped = BindError(plain)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Same(t, plain, mapped)
}
