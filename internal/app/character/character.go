/*
Package character contains the persisted character entity and its storage access.

A character is one-to-one with an account, keyed by the owning account's
email. Creation flips the account's have_character flag inside the same
transaction that inserts the character row.
*/
package character

import (
	"context"
	"strings"
	"time"

	"github.com/Talibis/jug-classic/internal/pkg/errs"
)

// Class is the fixed character class enum.
type Class string

const (
	ClassPerun   Class = "PERUN"
	ClassSwarog  Class = "SWAROG"
	ClassStribog Class = "STRIBOG"
	ClassVeles   Class = "VELES"
)

// ParseClass resolves a class name case-insensitively.
func ParseClass(value string) (Class, error) {
	switch Class(strings.ToUpper(strings.TrimSpace(value))) {
	case ClassPerun:
		return ClassPerun, nil
	case ClassSwarog:
		return ClassSwarog, nil
	case ClassStribog:
		return ClassStribog, nil
	case ClassVeles:
		return ClassVeles, nil
	default:
		return "", errs.Validation("Unknown character class.")
	}
}

// New-character defaults.
const (
	DefaultLevel  = 1
	DefaultHealth = 100
	DefaultMana   = 50
)

// Character represents a playable character bound to an account.
type Character struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"characterName"`
	Class      Class     `json:"characterClass"`
	Level      int       `json:"level"`
	Health     int       `json:"health"`
	Mana       int       `json:"mana"`
	Experience int64     `json:"experience"`
	LocationID *int64    `json:"locationId"`
	Banned     bool      `json:"banned"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

// CreateParams carries the caller-supplied fields for a new character.
type CreateParams struct {
	Email      string
	Name       string
	Class      Class
	LocationID *int64
}

// Store is the persistence contract for characters.
type Store interface {
	// FindByEmail returns the character owned by the given account email,
	// or a not-found error when absent.
	FindByEmail(ctx context.Context, email string) (*Character, error)

	// ExistsByEmail reports whether the account already owns a character.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create inserts the character and marks the owning account as having
	// one, atomically. A second character for the same email is reported
	// as a conflict error.
	Create(ctx context.Context, params CreateParams) (*Character, error)
}
