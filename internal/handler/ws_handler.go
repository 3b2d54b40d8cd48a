/*
Package handler provides the HTTP handlers and routing setup for the game backend.

This file contains the WebSocket entry point: handshake authentication,
connection upgrading, and handoff to the chat client lifecycle. A handshake
without a valid token is rejected before any registry interaction.
*/
package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Talibis/jug-classic/internal/app/chat"
	"github.com/Talibis/jug-classic/internal/pkg/auth/jwt"
	"github.com/Talibis/jug-classic/internal/pkg/errs"
	"github.com/Talibis/jug-classic/internal/pkg/limiter"
	"github.com/Talibis/jug-classic/internal/pkg/logx"
	"github.com/Talibis/jug-classic/internal/pkg/resp"
)

// handshakeToken extracts the bearer token from the Authorization header,
// falling back to the token query parameter for clients that cannot set
// headers on the WebSocket handshake.
func handshakeToken(r *http.Request) (string, bool) {
	if token, ok := jwt.BearerToken(r); ok {
		return token, true
	}

	token := r.URL.Query().Get("token")
	if token != "" {
		return token, true
	}

	return "", false
}

// HandleWebSocket creates the HandlerFunc for chat connections. The token is
// validated before the upgrade so a failed handshake never produces a
// Connection object.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: rate limit exceeded", "ip", ip)
			resp.RespondJSON(w, r, http.StatusTooManyRequests, resp.ErrorResponse{
				Status:  http.StatusTooManyRequests,
				Message: "rate_limit error",
				Errors:  []string{"Too many requests. Please try again later."},
			})
			return
		}

		token, ok := handshakeToken(r)
		if !ok {
			logx.Warn("WebSocket connection rejected: no token provided")
			resp.RespondError(w, r, errs.Authentication("Missing bearer token."))
			return
		}

		email, err := deps.Tokens.Validate(token)
		if err != nil {
			logx.Warn("WebSocket connection rejected: invalid token")
			resp.RespondError(w, r, err)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		logx.Info("WebSocket connection established", "email", email)

		deps.Metrics.ConnectionOpened()
		defer deps.Metrics.ConnectionClosed()

		client := chat.NewClient(conn, deps.ChatRouter, email)
		client.Run(r.Context())
	}
}
