/*
Package chat contains the location-scoped real-time chat subsystem.

This file defines the Registry, the in-memory mapping from a location to the
set of live sessions present there. It is the only state shared across
connection goroutines.
*/
package chat

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/Talibis/jug-classic/internal/pkg/logx"
)

// Session is a live connection the registry can deliver payloads to.
type Session interface {
	// ID returns the transport-level session identifier.
	ID() string

	// Send enqueues a payload for delivery to the client.
	Send(payload []byte) error
}

// Registry maps location IDs to the sets of sessions present there.
type Registry struct {
	// mu protects the locations map and every membership set.
	mu sync.RWMutex

	locations map[int64]map[Session]struct{}

	logger zerolog.Logger
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		locations: make(map[int64]map[Session]struct{}),
		logger:    logx.Logger().With().Str("component", "Registry").Logger(),
	}
}

// Register adds the session to the set for locationID, creating the set on
// first use.
func (r *Registry) Register(locationID int64, sess Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.locations[locationID]
	if !ok {
		set = make(map[Session]struct{})
		r.locations[locationID] = set
	}
	set[sess] = struct{}{}

	r.logger.Info().
		Str("session_id", sess.ID()).
		Int64("location_id", locationID).
		Int("location_sessions", len(set)).
		Msg("Session registered.")
}

// Unregister removes the session from every location set it belongs to.
// The scan is defensive: a session's recorded location can be stale or unset
// when the handshake failed partway. Removing an absent session is a no-op.
func (r *Registry) Unregister(sess Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for locationID, set := range r.locations {
		if _, ok := set[sess]; ok {
			delete(set, sess)
			if len(set) == 0 {
				delete(r.locations, locationID)
			}

			r.logger.Info().
				Str("session_id", sess.ID()).
				Int64("location_id", locationID).
				Msg("Session unregistered.")
		}
	}
}

// Count returns the number of sessions currently registered at the location.
func (r *Registry) Count(locationID int64) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.locations[locationID])
}

// Contains reports whether the session is registered at the location.
func (r *Registry) Contains(locationID int64, sess Session) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.locations[locationID][sess]
	return ok
}

// Broadcast delivers the payload to every session registered at the location
// at snapshot time. A send failure on one session is logged and does not
// suppress delivery to the rest. Sessions registering during an in-flight
// broadcast may miss it; that is acceptable and never a data race.
func (r *Registry) Broadcast(locationID int64, payload []byte) {
	r.mu.RLock()
	set := r.locations[locationID]
	snapshot := make([]Session, 0, len(set))
	for sess := range set {
		snapshot = append(snapshot, sess)
	}
	r.mu.RUnlock()

	for _, sess := range snapshot {
		if err := sess.Send(payload); err != nil {
			r.logger.Warn().
				Err(err).
				Str("session_id", sess.ID()).
				Int64("location_id", locationID).
				Msg("Broadcast delivery failed for session.")
		}
	}
}
