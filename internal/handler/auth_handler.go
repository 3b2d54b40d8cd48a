/*
Package handler provides the HTTP handlers and routing setup for the game backend.

This file contains registration and login: account creation with credential
hashing, and credential verification with JWT issuance.
*/
package handler

import (
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/Talibis/jug-classic/internal/pkg/errs"
	"github.com/Talibis/jug-classic/internal/pkg/logx"
	"github.com/Talibis/jug-classic/internal/pkg/req"
	"github.com/Talibis/jug-classic/internal/pkg/resp"
)

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

const (
	maxEmailLength    = 100
	minPasswordLength = 8
	maxPasswordLength = 255
)

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the body returned by register and login. Token is present
// only on login.
type AuthResponse struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	Token         string `json:"token,omitempty"`
	HaveCharacter bool   `json:"haveCharacter"`
}

// normalizeEmail trims and lowercases the email and validates its shape.
func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))

	if normalized == "" || len(normalized) > maxEmailLength || !emailRegex.MatchString(normalized) {
		return "", errs.Validation("Invalid email format.")
	}

	return normalized, nil
}

func validPassword(password string) error {
	length := utf8.RuneCountInString(password)
	if length < minPasswordLength || length > maxPasswordLength {
		return errs.Validation("Password must be between 8 and 255 characters.")
	}
	return nil
}

// HandleRegister processes the request to create a new account.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if err := req.BindJSON(r, &input); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		email, err := normalizeEmail(input.Email)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		if err := validPassword(input.Password); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		acct, err := deps.Accounts.Create(r.Context(), email, string(hashed))
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		logx.Info("Account registered", "email", email)
		deps.Metrics.RecordRegistration()

		resp.RespondSuccess(w, r, AuthResponse{
			ID:            acct.ID,
			Email:         acct.Email,
			HaveCharacter: acct.HaveCharacter,
		})
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and issues a bearer token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if err := req.BindJSON(r, &input); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(input.Email))

		acct, err := deps.Accounts.FindByEmail(r.Context(), email)
		if err != nil {
			// Do not reveal whether the account exists.
			logx.Warn("Login failed: account fetch", "email", email)
			resp.RespondError(w, r, errs.Validation("Invalid credentials."))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(input.Password)); err != nil {
			logx.Warn("Login failed: password mismatch", "email", email)
			resp.RespondError(w, r, errs.Validation("Invalid credentials."))
			return
		}

		token, err := deps.Tokens.Issue(acct.Email)
		if err != nil {
			resp.RespondError(w, r, errs.Internal(err))
			return
		}

		logx.Info("Login successful", "email", email)
		deps.Metrics.RecordLogin()

		resp.RespondSuccess(w, r, AuthResponse{
			ID:            acct.ID,
			Email:         acct.Email,
			Token:         token,
			HaveCharacter: acct.HaveCharacter,
		})
	}
}
