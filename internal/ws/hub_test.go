package ws

import (
	"context"
	"testing"

	"mentorhub-api/internal/model"
)

// testClient builds a client without a network connection; events land in
// the send buffer where the test can inspect them.
func testClient(userID string, buf int) *Client {
	return &Client{UserID: userID, send: make(chan Event, buf)}
}

func drain(c *Client) []Event {
	var out []Event
	for {
		select {
		case ev := <-c.send:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestJoinIdempotent(t *testing.T) {
	h := NewHub()
	c := testClient("alice", 4)

	h.Join(c, "conv-1")
	h.Join(c, "conv-1")
	if n := h.RoomSize("conv-1"); n != 1 {
		t.Errorf("room size after double join: got %d, want 1", n)
	}

	h.BroadcastMessage("conv-1", &model.Message{ID: 1, Body: "hi"})
	if got := drain(c); len(got) != 1 {
		t.Errorf("double join caused %d deliveries, want 1", len(got))
	}
}

func TestLeave(t *testing.T) {
	h := NewHub()
	c := testClient("alice", 4)

	// leaving a room never joined is a no-op
	h.Leave(c, "conv-1")

	h.Join(c, "conv-1")
	h.Leave(c, "conv-1")
	h.Leave(c, "conv-1")

	h.BroadcastMessage("conv-1", &model.Message{ID: 1, Body: "hi"})
	if got := drain(c); len(got) != 0 {
		t.Errorf("got %d deliveries after leave, want 0", len(got))
	}
}

func TestBroadcastRoomScoped(t *testing.T) {
	h := NewHub()
	a := testClient("alice", 4)
	b := testClient("bob", 4)
	c := testClient("carol", 4)

	h.Join(a, "conv-1")
	h.Join(b, "conv-1")
	h.Join(c, "conv-2")

	h.BroadcastMessage("conv-1", &model.Message{ID: 7, Body: "hello"})

	for _, tc := range []struct {
		client *Client
		want   int
	}{{a, 1}, {b, 1}, {c, 0}} {
		if got := drain(tc.client); len(got) != tc.want {
			t.Errorf("%s: got %d events, want %d", tc.client.UserID, len(got), tc.want)
		}
	}
}

func TestBroadcastOrderPerClient(t *testing.T) {
	h := NewHub()
	a := testClient("alice", 8)
	h.Join(a, "conv-1")

	for i := int64(1); i <= 3; i++ {
		h.BroadcastMessage("conv-1", &model.Message{ID: i})
	}

	got := drain(a)
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	for i, ev := range got {
		m := ev.Data.(*model.Message)
		if m.ID != int64(i+1) {
			t.Errorf("position %d: message id %d", i, m.ID)
		}
	}
}

func TestSlowClientDoesNotBlockRoom(t *testing.T) {
	h := NewHub()
	slow := testClient("slow", 1)
	fast := testClient("fast", 8)
	h.Join(slow, "conv-1")
	h.Join(fast, "conv-1")

	// second and third messages overflow the slow client's buffer;
	// broadcast must still complete and reach the fast client
	for i := int64(1); i <= 3; i++ {
		h.BroadcastMessage("conv-1", &model.Message{ID: i})
	}

	if got := drain(fast); len(got) != 3 {
		t.Errorf("fast client got %d events, want 3", len(got))
	}
	if got := drain(slow); len(got) != 1 {
		t.Errorf("slow client got %d events, want 1 (overflow dropped)", len(got))
	}
}

func TestDetachRemovesFromAllRooms(t *testing.T) {
	h := NewHub()
	c := testClient("alice", 4)
	c.ctx, c.cancel = context.WithCancel(context.Background())

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.Join(c, "conv-1")
	h.Join(c, "conv-2")
	h.Detach(c)

	if h.RoomSize("conv-1") != 0 || h.RoomSize("conv-2") != 0 {
		t.Error("detached client still present in rooms")
	}
}
