package httpadapter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/rivercrossing/internal/playback"
)

type inbound struct {
	Type      string         `json:"type"`
	SessionID string         `json:"sessionId"`
	Found     bool           `json:"found"`
	Moves     int            `json:"moves"`
	Frame     playback.Frame `json:"frame"`
	Error     string         `json:"error"`
}

func dialPlay(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	h := newHandler()
	h.PlayStep = 5 * time.Millisecond
	h.PlayInterval = time.Millisecond
	srv := httptest.NewServer(RequestLogger(h.Logger, newMux(h)))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/play?" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) inbound {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg inbound
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestPlayStreamsToCompletion(t *testing.T) {
	conn := dialPlay(t, "variant=missionaries&strategy=bfs&speed=3")

	first := read(t, conn)
	require.Equal(t, "session", first.Type)
	assert.NotEmpty(t, first.SessionID)
	assert.True(t, first.Found)
	assert.Equal(t, 5, first.Moves)

	var last inbound
	for {
		last = read(t, conn)
		require.Equal(t, "frame", last.Type)
		if last.Frame.Done {
			break
		}
	}
	assert.Equal(t, 5, last.Frame.Index)
	assert.True(t, last.Frame.State.IsGoal())
	assert.Equal(t, 3.0, last.Frame.Speed)

	require.NoError(t, conn.WriteJSON(controlMsg{Action: "jump", Index: 2}))
	msg := read(t, conn)
	assert.Equal(t, "frame", msg.Type)
	assert.Equal(t, 2, msg.Frame.Index)

	require.NoError(t, conn.WriteJSON(controlMsg{Action: "fly"}))
	msg = read(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Error, "fly")
}

func TestPlayRejectsBadRequests(t *testing.T) {
	mux := newMux(newHandler())
	assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodGet, "/api/play?variant=ferry", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodGet, "/api/play?speed=fast", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, mux, http.MethodGet, "/api/play?strategy=astar", "").Code)
}
