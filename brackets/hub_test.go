package brackets

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(h *Hub, room string) *Client {
	return &Client{Hub: h, Send: make(chan []byte, 4), Room: room}
}

func TestHub_BroadcastToRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)

	room := TournamentRoom("T1")
	inRoom := newTestClient(hub, room)
	elsewhere := newTestClient(hub, TournamentRoom("T2"))
	require.True(t, hub.Join(inRoom))
	require.True(t, hub.Join(elsewhere))
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(room, WebSocketMessage{Type: EventMatchCreated, Payload: map[string]string{"id": "m1"}, RoomID: room})

	select {
	case raw := <-inRoom.Send:
		var msg map[string]any
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, EventMatchCreated, msg["type"])
		assert.Equal(t, "tournament_T1", msg["room_id"])
		assert.Equal(t, map[string]any{"id": "m1"}, msg["payload"])
	case <-time.After(time.Second):
		t.Fatal("message was not delivered")
	}
	assert.Empty(t, elsewhere.Send)
}

func TestHub_SkipsFullClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub(nil)
	go hub.Run(ctx)

	room := TournamentRoom("T1")
	client := &Client{Hub: hub, Send: make(chan []byte, 1), Room: room}
	require.True(t, hub.Join(client))
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(room, WebSocketMessage{Type: EventMatchUpdated})
	hub.BroadcastToRoom(room, WebSocketMessage{Type: EventMatchUpdated})
	assert.Len(t, client.Send, 1)
}

func TestHub_StopClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	go hub.Run(ctx)

	room := TournamentRoom("T1")
	client := newTestClient(hub, room)
	require.True(t, hub.Join(client))
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool { return hub.RoomSize(room) == 0 }, time.Second, 10*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open)

	// после остановки хаб не принимает новых клиентов и не блокирует
	assert.False(t, hub.Join(newTestClient(hub, room)))
}
