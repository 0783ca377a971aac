package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"pong3d/protocol"
)

const readTimeout = 2 * time.Second

// StartTestServer serves srv on a loopback listener for the duration of the test.
func StartTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(cfg)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return srv, ts
}

// ConnectToServer opens a websocket to the test server's /ws route.
func ConnectToServer(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal("Failed to connect to WebSocket server:", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// SendMessage sends a Message over the WebSocket connection.
func SendMessage(t *testing.T, conn *websocket.Conn, msg protocol.Message) {
	t.Helper()
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal("Failed to marshal message:", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		t.Fatal("Failed to send message:", err)
	}
}

// ReadMessage reads the next Message, skipping any of the ignored types.
func ReadMessage(t *testing.T, conn *websocket.Conn, ignoreTypes ...string) protocol.Message {
	t.Helper()
	return ReadUntil(t, conn, func(msg protocol.Message) bool {
		for _, ignoreType := range ignoreTypes {
			if msg.Type == ignoreType {
				return false
			}
		}
		return true
	})
}

// ReadUntil reads messages until match accepts one or the read deadline passes.
func ReadUntil(t *testing.T, conn *websocket.Conn, match func(protocol.Message) bool) protocol.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	defer conn.SetReadDeadline(time.Time{})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatal("Failed to read message from WebSocket:", err)
		}
		var msg protocol.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatal("Failed to unmarshal message:", err)
		}
		if match(msg) {
			return msg
		}
	}
}

// stateField digs a value out of a decoded state message.
func stateField(msg protocol.Message, path ...string) interface{} {
	var v interface{} = msg.Data
	for _, key := range path {
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil
		}
		v = m[key]
	}
	return v
}
