package chat_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talibis/jug-classic/internal/app/chat"
	"github.com/Talibis/jug-classic/internal/pkg/errs"
)

func TestNormalizeFrameUnparseable(t *testing.T) {
	now := time.Now()

	frame, err := chat.NormalizeFrame([]byte("hello"), now)
	require.NoError(t, err, "an unparseable frame is wrapped, never rejected")

	assert.Equal(t, chat.TypeText, frame.Type)
	assert.Equal(t, "hello", frame.Content)
	assert.Equal(t, now.UnixMilli(), frame.Timestamp)
}

func TestNormalizeFrameStructured(t *testing.T) {
	now := time.Now()

	frame, err := chat.NormalizeFrame([]byte(`{"type":"SYSTEM","content":"maintenance","timestamp":1234}`), now)
	require.NoError(t, err)

	assert.Equal(t, chat.TypeSystem, frame.Type)
	assert.Equal(t, "maintenance", frame.Content)
	assert.Equal(t, int64(1234), frame.Timestamp)
}

func TestNormalizeFrameDefaults(t *testing.T) {
	now := time.Now()

	// Missing type defaults to TEXT, missing timestamp to receipt time.
	frame, err := chat.NormalizeFrame([]byte(`{"content":"hi"}`), now)
	require.NoError(t, err)

	assert.Equal(t, chat.TypeText, frame.Type)
	assert.Equal(t, "hi", frame.Content)
	assert.Equal(t, now.UnixMilli(), frame.Timestamp)
}

func TestNormalizeFrameUnknownType(t *testing.T) {
	_, err := chat.NormalizeFrame([]byte(`{"type":"SHOUT","content":"hi"}`), time.Now())
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestNormalizeFrameMissingContent(t *testing.T) {
	_, err := chat.NormalizeFrame([]byte(`{"type":"TEXT"}`), time.Now())
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestNormalizeFrameContentTooLong(t *testing.T) {
	long := make([]byte, chat.MaxContentBytes+1)
	for i := range long {
		long[i] = 'x'
	}

	_, err := chat.NormalizeFrame([]byte(`{"content":"`+string(long)+`"}`), time.Now())
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))

	// The verbatim path is bounded as well.
	_, err = chat.NormalizeFrame(long, time.Now())
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestNewErrorFrame(t *testing.T) {
	payload := chat.NewErrorFrame(errs.Validation("Unknown message type."))

	var decoded struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, "ERROR", decoded.Type)
	assert.Equal(t, "Unknown message type.", decoded.Message)
}

func TestParseMessageType(t *testing.T) {
	for _, known := range []string{"TEXT", "SYSTEM", "JOIN", "LEAVE"} {
		parsed, ok := chat.ParseMessageType(known)
		assert.True(t, ok)
		assert.Equal(t, chat.MessageType(known), parsed)
	}

	_, ok := chat.ParseMessageType("text")
	assert.False(t, ok, "message types are case-sensitive on the wire")
}
