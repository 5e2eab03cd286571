package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func registeredClient(h *Hub, userID string, buffer int) *Client {
	c := NewClient(h, nil, userID, buffer)
	h.Register(c)
	return c
}

func drain(c *Client) []Envelope {
	var out []Envelope
	for {
		select {
		case data, ok := <-c.Send:
			if !ok {
				return out
			}
			var env Envelope
			if err := json.Unmarshal(data, &env); err == nil {
				out = append(out, env)
			}
		default:
			return out
		}
	}
}

func TestHub_JoinTwice_DeliversOnce(t *testing.T) {
	req := require.New(t)
	h := testHub()
	c := registeredClient(h, "U1", 8)

	// Given the same connection joins room U1 twice
	req.NoError(h.Join(c, "U1"))
	req.NoError(h.Join(c, "U1"))
	req.Equal(1, h.RoomSize("U1"))

	// When an event is pushed to U1
	h.Push("U1", "newNotification", map[string]string{"id": "n1"})

	// Then the connection receives it exactly once
	events := drain(c)
	req.Len(events, 1)
	req.Equal("newNotification", events[0].Event)
	req.JSONEq(`{"id":"n1"}`, string(events[0].Data))
}

func TestHub_Push_EmptyRoomIsSilent(t *testing.T) {
	h := testHub()
	c := registeredClient(h, "U1", 8)
	require.NoError(t, h.Join(c, "U1"))

	h.Push("nobody", "receiveMessage", map[string]string{"id": "m1"})

	require.Empty(t, drain(c))
}

func TestHub_Push_ReachesEveryConnectionOfRoom(t *testing.T) {
	req := require.New(t)
	h := testHub()
	phone := registeredClient(h, "b1", 8)
	laptop := registeredClient(h, "b1", 8)
	other := registeredClient(h, "a1", 8)
	req.NoError(h.Join(phone, "b1"))
	req.NoError(h.Join(laptop, "b1"))
	req.NoError(h.Join(other, "a1"))

	h.Push("b1", "receiveMessage", map[string]string{"id": "m1"})

	req.Len(drain(phone), 1)
	req.Len(drain(laptop), 1)
	req.Empty(drain(other))
}

func TestHub_Push_PreservesOrderWithinRoom(t *testing.T) {
	req := require.New(t)
	h := testHub()
	c := registeredClient(h, "U1", 16)
	req.NoError(h.Join(c, "U1"))

	for i := 0; i < 10; i++ {
		h.Push("U1", "receiveMessage", map[string]int{"seq": i})
	}

	events := drain(c)
	req.Len(events, 10)
	for i, env := range events {
		var payload map[string]int
		req.NoError(json.Unmarshal(env.Data, &payload))
		req.Equal(i, payload["seq"])
	}
}

func TestHub_Broadcast_ReachesClientsWithoutRoom(t *testing.T) {
	req := require.New(t)
	h := testHub()
	joined := registeredClient(h, "a1", 8)
	lurker := registeredClient(h, "b1", 8)
	req.NoError(h.Join(joined, "a1"))

	h.Broadcast("notificationDeleted", map[string]string{"notificationId": "n1"})

	req.Len(drain(joined), 1)
	events := drain(lurker)
	req.Len(events, 1)
	req.JSONEq(`{"notificationId":"n1"}`, string(events[0].Data))
}

func TestHub_Leave_RemovesFromAllRooms(t *testing.T) {
	req := require.New(t)
	h := testHub()
	c := registeredClient(h, "U1", 8)
	req.NoError(h.Join(c, "U1"))
	req.NoError(h.Join(c, "U2"))

	h.Leave(c)
	h.Leave(c)

	req.Zero(h.RoomSize("U1"))
	req.Zero(h.RoomSize("U2"))
	req.Empty(c.Rooms())

	h.Push("U1", "receiveMessage", nil)
	req.Empty(drain(c))
}

func TestHub_Unregister_ClosesQueueAndForgetsClient(t *testing.T) {
	req := require.New(t)
	h := testHub()
	c := registeredClient(h, "U1", 8)
	req.NoError(h.Join(c, "U1"))

	h.Unregister(c)
	h.Unregister(c)

	req.Zero(h.ConnectedClients())
	req.Zero(h.RoomSize("U1"))
	_, ok := <-c.Send
	req.False(ok)

	// Push after disconnect must not panic on the closed queue
	h.Push("U1", "receiveMessage", nil)
	h.Broadcast("notificationDeleted", nil)
	req.ErrorIs(h.SendToClient(c, EventError, nil), ErrClientNotRegistered)
}

func TestHub_Join_RequiresRegistration(t *testing.T) {
	h := testHub()
	c := NewClient(h, nil, "U1", 8)

	require.ErrorIs(t, h.Join(c, "U1"), ErrClientNotRegistered)
}

func TestHub_FullQueueDropsEvent(t *testing.T) {
	req := require.New(t)
	h := testHub()
	c := registeredClient(h, "U1", 1)
	req.NoError(h.Join(c, "U1"))

	h.Push("U1", "receiveMessage", map[string]int{"seq": 1})
	h.Push("U1", "receiveMessage", map[string]int{"seq": 2})

	req.Len(drain(c), 1)
	req.NoError(h.SendToClient(c, EventError, nil))
	req.ErrorIs(h.SendToClient(c, EventError, nil), ErrClientQueueFull)
}

func TestHub_ConcurrentJoinPushLeave(t *testing.T) {
	h := testHub()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := registeredClient(h, "U1", 64)
			_ = h.Join(c, "U1")
			h.Push("U1", "receiveMessage", nil)
			h.Broadcast("notificationDeleted", nil)
			h.Unregister(c)
		}()
	}
	wg.Wait()

	require.Zero(t, h.ConnectedClients())
	require.Zero(t, h.RoomSize("U1"))
}

func TestHub_Run_ClosesClientsOnCancel(t *testing.T) {
	h := testHub()
	c := registeredClient(h, "U1", 8)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	require.Zero(t, h.ConnectedClients())
	_, ok := <-c.Send
	require.False(t, ok)
}
