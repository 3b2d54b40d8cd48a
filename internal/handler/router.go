/*
Package handler provides the HTTP handlers and routing setup for the game backend.

This file defines the main Router, applying logging, CORS, and IP-based rate
limiting before delegating to the auth, character, and WebSocket handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/Talibis/jug-classic/internal/pkg/auth/jwt"
	"github.com/Talibis/jug-classic/internal/pkg/limiter"
	"github.com/Talibis/jug-classic/internal/pkg/logx"
	"github.com/Talibis/jug-classic/internal/pkg/metrics"
	"github.com/Talibis/jug-classic/internal/pkg/resp"
)

const (
	// AuthRate limits registration/login attempts per IP.
	AuthRate  = 0.2
	AuthBurst = 5

	// ConnectRate limits WebSocket handshakes per IP.
	ConnectRate  = 0.2
	ConnectBurst = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": "jug-classic",
		})
	})

	r.Handle("/metrics", metrics.Handler(deps.Gatherer))

	r.Route("/api/auth", func(auth chi.Router) {
		auth.Use(authLimiter.Middleware)
		auth.Post("/register", HandleRegister(deps))
		auth.Post("/login", HandleLogin(deps))
	})

	r.Route("/character", func(ch chi.Router) {
		ch.Use(jwt.RequireAuth(deps.Tokens))
		ch.Post("/create", HandleCreateCharacter(deps))
		ch.Get("/check-character", HandleCheckCharacter(deps))
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, connectLimiter, deps))

	return r
}
