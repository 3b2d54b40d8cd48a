/*
Package chat contains the location-scoped real-time chat subsystem: message
normalization, the session registry, the persisted message log, and the
router tying connection lifecycle to broadcast delivery.

This file defines the persisted chat message record and the normalization of
raw inbound frames into it.
*/
package chat

import (
	"encoding/json"
	"time"

	"github.com/Talibis/jug-classic/internal/pkg/errs"
)

// MessageType enumerates the kinds of persisted chat messages.
type MessageType string

const (
	TypeText   MessageType = "TEXT"
	TypeSystem MessageType = "SYSTEM"
	TypeJoin   MessageType = "JOIN"
	TypeLeave  MessageType = "LEAVE"
)

// ParseMessageType resolves a type string, reporting whether it is known.
func ParseMessageType(value string) (MessageType, bool) {
	switch MessageType(value) {
	case TypeText, TypeSystem, TypeJoin, TypeLeave:
		return MessageType(value), true
	default:
		return "", false
	}
}

// MaxContentBytes caps the length of message content.
const MaxContentBytes = 1000

// Message is a persisted chat message. Immutable once inserted; ordering key
// is Timestamp with ties broken by ID.
type Message struct {
	ID         int64       `json:"id"`
	Type       MessageType `json:"type"`
	LocationID int64       `json:"locationId"`
	SenderID   int64       `json:"senderId"`
	Content    string      `json:"content"`
	Timestamp  int64       `json:"timestamp"`
}

// Frame is a normalized inbound frame: one of the known kinds with content
// and a resolved timestamp.
type Frame struct {
	Type      MessageType
	Content   string
	Timestamp int64
}

// ErrorFrame is the outbound frame reporting a per-message failure to the
// sending connection only.
type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewErrorFrame builds the serialized ERROR frame for the given failure.
func NewErrorFrame(err error) []byte {
	payload, marshalErr := json.Marshal(ErrorFrame{
		Type:    "ERROR",
		Message: errs.MessageOf(err),
	})
	if marshalErr != nil {
		return []byte(`{"type":"ERROR","message":"Something went wrong. Please try again."}`)
	}
	return payload
}

// inboundFrame mirrors the recognized keys of a structured client frame.
// Pointers distinguish absent keys from zero values.
type inboundFrame struct {
	Type      *string `json:"type"`
	Content   *string `json:"content"`
	Timestamp *int64  `json:"timestamp"`
}

// NormalizeFrame turns a raw text frame into a Frame.
//
// A frame that does not parse as structured data is wrapped verbatim as TEXT
// with a server-assigned timestamp, never rejected. In a structured frame, a
// missing type defaults to TEXT and a missing timestamp to the receipt time.
// An unknown type value, missing content, or over-long content is a
// validation error reported to the sender.
func NormalizeFrame(raw []byte, receivedAt time.Time) (Frame, error) {
	receivedMillis := receivedAt.UnixMilli()

	var inbound inboundFrame
	if err := json.Unmarshal(raw, &inbound); err != nil {
		if len(raw) > MaxContentBytes {
			return Frame{}, errs.Validation("Message is too long.")
		}
		return Frame{
			Type:      TypeText,
			Content:   string(raw),
			Timestamp: receivedMillis,
		}, nil
	}

	msgType := TypeText
	if inbound.Type != nil {
		parsed, ok := ParseMessageType(*inbound.Type)
		if !ok {
			return Frame{}, errs.Validation("Unknown message type.")
		}
		msgType = parsed
	}

	if inbound.Content == nil {
		return Frame{}, errs.Validation("Message content is required.")
	}
	if len(*inbound.Content) > MaxContentBytes {
		return Frame{}, errs.Validation("Message is too long.")
	}

	timestamp := receivedMillis
	if inbound.Timestamp != nil {
		timestamp = *inbound.Timestamp
	}

	return Frame{
		Type:      msgType,
		Content:   *inbound.Content,
		Timestamp: timestamp,
	}, nil
}
