package utils

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
	"usatag/src/config"
	"usatag/src/types"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func GenerateJWT(email, name string) (string, error) {
	now := time.Now()
	claims := types.Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.TOKEN_TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString(config.JWTSecret())
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyJWT checks signature and expiry and returns the embedded claims.
func VerifyJWT(reqToken string) (*types.Claims, error) {
	if reqToken == "" {
		return nil, types.ErrInvalidToken
	}
	claims := &types.Claims{}
	tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
		return config.JWTSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenMalformed) {
			log.Printf("[Token] verify error: %s\n", err.Error())
		}
		return nil, types.ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, types.ErrInvalidToken
	}
	return claims, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BindError maps a request binding error to a response status. Bodies cut off
// by the size limit get 413 instead of the reader's message.
func BindError(err error) (int, error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, types.ErrBodyTooLarge
	}
	return http.StatusBadRequest, err
}
