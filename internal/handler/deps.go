package handler

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Talibis/jug-classic/internal/app/account"
	"github.com/Talibis/jug-classic/internal/app/character"
	"github.com/Talibis/jug-classic/internal/app/chat"
	"github.com/Talibis/jug-classic/internal/configs"
	"github.com/Talibis/jug-classic/internal/pkg/auth/jwt"
	"github.com/Talibis/jug-classic/internal/pkg/metrics"
)

// AppDeps bundles the collaborators handlers need. Everything is an injected
// instance so tests can swap in fakes.
type AppDeps struct {
	Config     *configs.AppConfig
	Tokens     *jwt.TokenService
	Accounts   account.Store
	Characters character.Store
	ChatRouter *chat.Router
	Metrics    metrics.Recorder
	Gatherer   prometheus.Gatherer
}
