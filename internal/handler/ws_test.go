package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Talibis/jug-classic/internal/app/character"
	"github.com/Talibis/jug-classic/internal/app/chat"
	"github.com/Talibis/jug-classic/internal/pkg/auth/jwt"
)

// seedIdentity inserts an account directly into the fakes and returns a valid
// token for it, skipping the HTTP registration round trip.
func seedIdentity(t *testing.T, app *testApp, email string, locationID *int64) string {
	t.Helper()

	_, err := app.accounts.Create(context.Background(), email, "unused-hash")
	require.NoError(t, err)

	if locationID != nil {
		_, err = app.characters.Create(context.Background(), character.CreateParams{
			Email:      email,
			Name:       "hero",
			Class:      character.ClassPerun,
			LocationID: locationID,
		})
		require.NoError(t, err)
	}

	token, err := jwt.NewTokenService("test-secret").Issue(email)
	require.NoError(t, err)
	return token
}

func wsURL(app *testApp, token string) string {
	url := "ws" + strings.TrimPrefix(app.server.URL, "http") + "/ws"
	if token != "" {
		url += "?token=" + token
	}
	return url
}

func dialWS(t *testing.T, app *testApp, token string) *websocket.Conn {
	t.Helper()

	conn, res, err := websocket.DefaultDialer.Dial(wsURL(app, token), nil)
	require.NoError(t, err)
	if res != nil {
		res.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitForCount polls the registry until the location holds want sessions.
func waitForCount(t *testing.T, app *testApp, locationID int64, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if app.registry.Count(locationID) == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("location %d never reached %d sessions", locationID, want)
}

func readMessage(t *testing.T, conn *websocket.Conn) chat.Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg chat.Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestWebSocketRejectsMissingToken(t *testing.T) {
	app := newTestApp(t)

	res, err := app.server.Client().Get(app.server.URL + "/ws")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestWebSocketRejectsInvalidToken(t *testing.T) {
	app := newTestApp(t)

	conn, res, err := websocket.DefaultDialer.Dial(wsURL(app, "garbage"), nil)
	require.Error(t, err)
	require.Nil(t, conn)
	require.NotNil(t, res)
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestWebSocketClosesWithoutCharacter(t *testing.T) {
	app := newTestApp(t)
	token := seedIdentity(t, app, "a@b.com", nil)

	conn := dialWS(t, app, token)

	// The server resolves the identity after the upgrade and closes the
	// connection when no character exists; the session is never registered.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)

	assert.Equal(t, 0, app.registry.Count(7))
}

func TestWebSocketChatExchange(t *testing.T) {
	app := newTestApp(t)

	loc := int64(7)
	tokenA := seedIdentity(t, app, "a@b.com", &loc)
	tokenB := seedIdentity(t, app, "c@d.com", &loc)

	connA := dialWS(t, app, tokenA)
	waitForCount(t, app, loc, 1)

	connB := dialWS(t, app, tokenB)
	waitForCount(t, app, loc, 2)

	require.NoError(t, connA.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"TEXT","content":"hello"}`)))

	got := readMessage(t, connA)
	assert.Equal(t, chat.TypeText, got.Type)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, loc, got.LocationID)
	assert.Equal(t, int64(1), got.SenderID)

	got = readMessage(t, connB)
	assert.Equal(t, "hello", got.Content)

	// The message is in the log, so a late joiner replays it.
	messages, err := app.log.RecentByLocation(context.Background(), loc, chat.HistoryLimit)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Content)

	connB.Close()
	waitForCount(t, app, loc, 1)
}

func TestWebSocketHistoryReplay(t *testing.T) {
	app := newTestApp(t)

	loc := int64(9)
	token := seedIdentity(t, app, "a@b.com", &loc)

	for _, content := range []string{"first", "second"} {
		_, err := app.log.Insert(context.Background(), chat.Message{
			Type:       chat.TypeText,
			LocationID: loc,
			SenderID:   42,
			Content:    content,
			Timestamp:  time.Now().UnixMilli(),
		})
		require.NoError(t, err)
	}

	conn := dialWS(t, app, token)

	// Replay arrives newest first.
	assert.Equal(t, "second", readMessage(t, conn).Content)
	assert.Equal(t, "first", readMessage(t, conn).Content)
}
