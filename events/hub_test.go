package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	baseline := ClientCount()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		RegisterClient(conn, "staff")
		serverConns <- conn
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	defer client.Close()

	assert.Eventually(t, func() bool {
		return ClientCount() == baseline+1
	}, time.Second, 10*time.Millisecond)

	BroadcastMessage(Message{Event: EventStaffNotif, Data: "dapur penuh"})

	client.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := client.ReadMessage()
	assert.NoError(t, err)

	var msg Message
	assert.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, EventStaffNotif, msg.Event)
	assert.Equal(t, "dapur penuh", msg.Data)

	UnregisterClient(<-serverConns)
	assert.Equal(t, baseline, ClientCount())
}
