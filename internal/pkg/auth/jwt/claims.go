package jwt

import "github.com/golang-jwt/jwt"

// Claims defines the JWT payload issued to authenticated accounts.
// The account email is the subject identity; it is the single key used to
// resolve the account and its character everywhere in the system.
type Claims struct {
	// StandardClaims embeds the JWT standard fields (Exp, Iat, Iss) used
	// for validity checks.
	jwt.StandardClaims

	// Email is the unique identity of the account holding the token.
	Email string `json:"email"`
}
