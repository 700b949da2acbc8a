package net

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InkBoard/internal/state"
)

func dialHub(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Give the hub a moment to register the connection.
	time.Sleep(50 * time.Millisecond)
	return conn
}

func TestHubBroadcastsCommittedPath(t *testing.T) {
	h := NewHub()
	conn := dialHub(t, h)

	p := state.NewPath("id-1", "pencil", "black", 2, []state.Point{{X: 0, Y: 0}, {X: 10, Y: 10}})
	h.BroadcastPath(p)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "path", msg.Type)
	require.NotNil(t, msg.Path)
	assert.Equal(t, "pencil", msg.Path.Tool)
	assert.Equal(t, "0.00,0.00|10.00,10.00", msg.Path.Points)
}

func TestHubBroadcastsClearAndPointer(t *testing.T) {
	h := NewHub()
	conn := dialHub(t, h)

	h.BroadcastClear()
	h.BroadcastPointer("down", &state.Point{X: 3, Y: 4})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg Message
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "clear", msg.Type)

	_, data, err = conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "down", msg.Type)
	require.NotNil(t, msg.Point)
	assert.Equal(t, 3.0, msg.Point.X)
}
