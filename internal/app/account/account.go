/*
Package account contains the persisted account entity and its storage access.

An account is identified by its email, which is unique and immutable after
creation. The HaveCharacter flag is a denormalized cache flipped to true
exactly once, when the account's character is created, and never reverted.
*/
package account

import (
	"context"
	"time"
)

// Account represents a registered user account.
type Account struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	HaveCharacter bool      `json:"haveCharacter"`
	CreatedAt     time.Time `json:"-"`
}

// Store is the persistence contract for accounts.
type Store interface {
	// FindByEmail returns the account for the given email, or a not-found
	// error when absent.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// ExistsByEmail reports whether an account with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create inserts a new account and returns it with its assigned ID.
	// A duplicate email is reported as a conflict error.
	Create(ctx context.Context, email, passwordHash string) (*Account, error)
}
