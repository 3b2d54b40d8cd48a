/*
Package handler provides the HTTP handlers and routing setup for the game backend.

This file contains character creation and lookup for the authenticated account.
*/
package handler

import (
	"net/http"
	"strings"

	"github.com/Talibis/jug-classic/internal/app/character"
	"github.com/Talibis/jug-classic/internal/pkg/auth/jwt"
	"github.com/Talibis/jug-classic/internal/pkg/errs"
	"github.com/Talibis/jug-classic/internal/pkg/logx"
	"github.com/Talibis/jug-classic/internal/pkg/req"
	"github.com/Talibis/jug-classic/internal/pkg/resp"
)

const maxCharacterNameLength = 50

type CreateCharacterInput struct {
	CharacterClass  string `json:"characterClass"`
	CharacterName   string `json:"characterName"`
	InitialLocation *int64 `json:"initialLocation,omitempty"`
}

// HandleCreateCharacter creates the one character allowed per account.
// The existence pre-check is a fast path; the storage-level unique key is
// the authoritative duplicate signal under concurrency.
func HandleCreateCharacter(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := jwt.EmailFromContext(r)

		var input CreateCharacterInput
		if err := req.BindJSON(r, &input); err != nil {
			resp.RespondError(w, r, err)
			return
		}

		class, err := character.ParseClass(input.CharacterClass)
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		name := strings.TrimSpace(input.CharacterName)
		if name == "" || len(name) > maxCharacterNameLength {
			resp.RespondError(w, r, errs.Validation("Invalid character name."))
			return
		}

		if exists, err := deps.Characters.ExistsByEmail(r.Context(), email); err != nil {
			resp.RespondError(w, r, err)
			return
		} else if exists {
			resp.RespondError(w, r, errs.Conflict("User already has a character."))
			return
		}

		ch, err := deps.Characters.Create(r.Context(), character.CreateParams{
			Email:      email,
			Name:       name,
			Class:      class,
			LocationID: input.InitialLocation,
		})
		if err != nil {
			resp.RespondError(w, r, err)
			return
		}

		logx.Info("Character created", "email", email, "class", string(class))

		resp.RespondSuccess(w, r, ch)
	}
}

// HandleCheckCharacter reports whether the authenticated account has a
// character, including its fields when present.
func HandleCheckCharacter(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := jwt.EmailFromContext(r)

		ch, err := deps.Characters.FindByEmail(r.Context(), email)
		if err != nil {
			if errs.KindOf(err) == errs.KindNotFound {
				resp.RespondSuccess(w, r, map[string]any{"hasCharacter": false})
				return
			}
			resp.RespondError(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"hasCharacter":   true,
			"id":             ch.ID,
			"email":          ch.Email,
			"characterName":  ch.Name,
			"characterClass": ch.Class,
			"level":          ch.Level,
			"health":         ch.Health,
			"mana":           ch.Mana,
			"experience":     ch.Experience,
			"locationId":     ch.LocationID,
			"banned":         ch.Banned,
		})
	}
}
