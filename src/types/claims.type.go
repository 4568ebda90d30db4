package types

import "github.com/golang-jwt/jwt/v5"

// Claims carries only the login email and username; there are no roles.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}
