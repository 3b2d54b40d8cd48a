/*
Package chat contains the location-scoped real-time chat subsystem.

This file defines the Router, which mediates between connection lifecycle
events, the session registry, and the persisted message log. A connection
moves Connecting → Authenticated → Located → Active → Closed; the Router
owns every transition after authentication.
*/
package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/Talibis/jug-classic/internal/app/account"
	"github.com/Talibis/jug-classic/internal/app/character"
	"github.com/Talibis/jug-classic/internal/pkg/errs"
	"github.com/Talibis/jug-classic/internal/pkg/logx"
	"github.com/Talibis/jug-classic/internal/pkg/metrics"
)

// HistoryLimit is the number of persisted messages replayed to a connection
// at connect time.
const HistoryLimit = 50

// Binding is the resolved identity of an active connection: the sending
// account and the location its character occupies.
type Binding struct {
	AccountID  int64
	LocationID int64
}

// Router is the chat core. It resolves identities to locations, keeps the
// registry membership in step with connection lifecycle, and runs the
// persist-then-broadcast pipeline for inbound frames.
type Router struct {
	registry   *Registry
	accounts   account.Store
	characters character.Store
	messages   MessageLog
	metrics    metrics.Recorder
	logger     zerolog.Logger
}

// NewRouter constructs a Router over its collaborators.
func NewRouter(registry *Registry, accounts account.Store, characters character.Store, messages MessageLog, rec metrics.Recorder) *Router {
	return &Router{
		registry:   registry,
		accounts:   accounts,
		characters: characters,
		messages:   messages,
		metrics:    rec,
		logger:     logx.Logger().With().Str("component", "ChatRouter").Logger(),
	}
}

// Connect takes an authenticated session to Active: it resolves the
// identity's character and location, registers the session there, and
// replays recent history as a one-time burst. A missing character or a
// character without a location is fatal to this connection; the session is
// never registered in that case.
func (rt *Router) Connect(ctx context.Context, sess Session, email string) (*Binding, error) {
	acct, err := rt.accounts.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ch, err := rt.characters.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if ch.LocationID == nil {
		return nil, errs.NotFound("Character has no location.")
	}
	locationID := *ch.LocationID

	binding := &Binding{
		AccountID:  acct.ID,
		LocationID: locationID,
	}

	rt.registry.Register(locationID, sess)

	rt.replayHistory(ctx, sess, locationID)

	rt.logger.Info().
		Str("session_id", sess.ID()).
		Int64("account_id", acct.ID).
		Int64("location_id", locationID).
		Msg("Connection active.")

	return binding, nil
}

// replayHistory sends the most recent persisted messages for the location to
// the single session, newest first. Failures affect only this replay.
func (rt *Router) replayHistory(ctx context.Context, sess Session, locationID int64) {
	history, err := rt.messages.RecentByLocation(ctx, locationID, HistoryLimit)
	if err != nil {
		rt.logger.Error().
			Err(err).
			Int64("location_id", locationID).
			Msg("Failed to load message history for replay.")
		return
	}

	rt.metrics.RecordHistoryReplayed(len(history))

	for _, msg := range history {
		payload, err := json.Marshal(msg)
		if err != nil {
			rt.logger.Error().Err(err).Int64("message_id", msg.ID).Msg("Failed to marshal history message.")
			continue
		}

		if err := sess.Send(payload); err != nil {
			rt.logger.Warn().
				Err(err).
				Str("session_id", sess.ID()).
				Msg("Failed to deliver history message.")
		}
	}
}

// HandleFrame processes one inbound text frame from an Active connection:
// normalize, persist, broadcast to the full location set (sender included).
// Any failure is reported back to the sending session only; the connection
// stays open and other sessions are unaffected.
func (rt *Router) HandleFrame(ctx context.Context, sess Session, binding *Binding, raw []byte) {
	frame, err := NormalizeFrame(raw, time.Now())
	if err != nil {
		rt.reportFrameError(sess, err)
		return
	}

	msg := Message{
		Type:       frame.Type,
		LocationID: binding.LocationID,
		SenderID:   binding.AccountID,
		Content:    frame.Content,
		Timestamp:  frame.Timestamp,
	}

	saved, err := rt.messages.Insert(ctx, msg)
	if err != nil {
		rt.reportFrameError(sess, err)
		return
	}

	payload, err := json.Marshal(saved)
	if err != nil {
		rt.reportFrameError(sess, errs.Internal(err))
		return
	}

	rt.registry.Broadcast(binding.LocationID, payload)
	rt.metrics.RecordChatMessage()
}

// Disconnect releases the session's registry membership. It is the only
// release point and is safe to call for sessions that never reached Active.
func (rt *Router) Disconnect(sess Session) {
	rt.registry.Unregister(sess)
}

// reportFrameError sends an ERROR frame to the offending session and logs
// internal causes.
func (rt *Router) reportFrameError(sess Session, err error) {
	if errs.KindOf(err) == errs.KindInternal {
		rt.logger.Error().Err(err).Str("session_id", sess.ID()).Msg("Frame processing failed.")
	} else {
		rt.logger.Warn().Err(err).Str("session_id", sess.ID()).Msg("Rejected inbound frame.")
	}

	if sendErr := sess.Send(NewErrorFrame(err)); sendErr != nil {
		rt.logger.Warn().Err(sendErr).Str("session_id", sess.ID()).Msg("Failed to deliver error frame.")
	}
}
