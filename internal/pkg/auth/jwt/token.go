package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/Talibis/jug-classic/internal/pkg/errs"
)

const (
	// IdentityExpiration defines how long an issued identity token stays valid.
	IdentityExpiration = 24 * time.Hour

	// TokenIssuer identifies the issuer of the token.
	TokenIssuer = "jug-classic"
)

// TokenService issues and validates signed bearer tokens for account
// identities. It wraps the HS256 signing library; callers treat tokens as
// opaque strings.
type TokenService struct {
	secret   []byte
	duration time.Duration
}

// NewTokenService builds a TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		duration: IdentityExpiration,
	}
}

// Issue creates and signs a token whose subject is the given account email.
func (s *TokenService) Issue(email string) (string, error) {
	now := time.Now()

	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(s.duration).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    TokenIssuer,
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// Validate parses and verifies the token string and returns the embedded
// account email. Any failure (expiry, signature mismatch, malformed input)
// is reported as an authentication error.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return "", errs.Authentication("Invalid or expired token.")
	}

	if !token.Valid || claims.Email == "" {
		return "", errs.Authentication("Invalid or expired token.")
	}

	return claims.Email, nil
}
