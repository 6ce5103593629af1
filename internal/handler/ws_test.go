package handler_test

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"mentorhub-api/internal/apperr"
	"mentorhub-api/internal/auth"
	"mentorhub-api/internal/chat"
	"mentorhub-api/internal/handler"
	"mentorhub-api/internal/model"
	"mentorhub-api/internal/ws"
)

const wsSecret = "ws-test-secret"

// memChatStore backs the chat engine in memory so the socket endpoint can
// be exercised without a database.
type memChatStore struct {
	mu    sync.Mutex
	convs map[string]*model.Conversation
	msgs  []model.Message
	next  int64
}

func newMemChatStore() *memChatStore {
	return &memChatStore{convs: make(map[string]*model.Conversation)}
}

func (f *memChatStore) addConversation(id, a, b string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.convs[id] = &model.Conversation{ID: id, UserA: a, UserB: b, CreatedAt: time.Now()}
}

func (f *memChatStore) messageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func (f *memChatStore) UserExists(_ context.Context, id string) (bool, error) {
	return true, nil
}

func (f *memChatStore) FindOrCreateConversation(_ context.Context, a, b string) (*model.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.convs {
		if c.UserA == a && c.UserB == b {
			cp := *c
			return &cp, nil
		}
	}
	c := &model.Conversation{ID: a + "|" + b, UserA: a, UserB: b, CreatedAt: time.Now()}
	f.convs[c.ID] = c
	cp := *c
	return &cp, nil
}

func (f *memChatStore) GetConversation(_ context.Context, id string) (*model.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.convs[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *memChatStore) ConversationsForUser(_ context.Context, userID string) ([]model.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Conversation
	for _, c := range f.convs {
		if c.HasMember(userID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *memChatStore) CreateMessage(_ context.Context, m *model.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	m.ID = f.next
	m.CreatedAt = time.Now()
	f.msgs = append(f.msgs, *m)
	return nil
}

func (f *memChatStore) MessagesByConversation(_ context.Context, convID string) ([]model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Message
	for _, m := range f.msgs {
		if m.ConversationID == convID {
			out = append(out, m)
		}
	}
	return out, nil
}

// wsSetup starts an HTTP server whose chat engine runs on the in-memory
// store, with a conversation between alice and bob already present.
func wsSetup(t *testing.T) (*gin.Engine, *httptest.Server, *memChatStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := newMemChatStore()
	st.addConversation("conv-1", "alice", "bob")

	hub := ws.NewHub()
	h := handler.New(nil, nil, chat.New(st, hub), hub, wsSecret, t.TempDir())
	r := h.Router()
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return r, srv, st
}

func dialWS(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	tok, err := auth.MakeToken(userID, model.RoleMember, wsSecret)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, srv.URL+"/ws?token="+tok, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

type rxEvent struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

func writeFrame(t *testing.T, conn *websocket.Conn, frame map[string]any) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wsjson.Write(ctx, conn, frame); err != nil {
		t.Fatalf("write frame: %v", err)
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) rxEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var ev rxEvent
	if err := wsjson.Read(ctx, conn, &ev); err != nil {
		t.Fatalf("read event: %v", err)
	}
	return ev
}

func TestSocketSendSharesWritePath(t *testing.T) {
	r, srv, _ := wsSetup(t)
	conn := dialWS(t, srv, "alice")

	writeFrame(t, conn, map[string]any{"type": "join", "conversation_id": "conv-1"})
	writeFrame(t, conn, map[string]any{"type": "send", "conversation_id": "conv-1", "body": "first"})
	writeFrame(t, conn, map[string]any{"type": "send", "conversation_id": "conv-1", "body": "second"})

	for i, want := range []string{"first", "second"} {
		ev := readEvent(t, conn)
		if ev.Type != "message" {
			t.Fatalf("event %d: type %q, data %v", i, ev.Type, ev.Data)
		}
		if ev.Data["body"] != want {
			t.Errorf("event %d: body %v, want %q", i, ev.Data["body"], want)
		}
		if ev.Data["sender_id"] != "alice" {
			t.Errorf("event %d: sender %v taken from payload, not token", i, ev.Data["sender_id"])
		}
	}

	// the REST read path sees exactly what the socket persisted, same order
	tok, _ := auth.MakeToken("bob", model.RoleMember, wsSecret)
	rec := doJSON(r, "GET", "/api/chat/conversations/conv-1/messages", tok, nil)
	msgs := decode(t, rec)["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 persisted messages, got %d", len(msgs))
	}
	for i, want := range []string{"first", "second"} {
		if body := msgs[i].(map[string]any)["body"]; body != want {
			t.Errorf("rest position %d: got %v", i, body)
		}
	}
}

func TestSocketRejectsInvalidSend(t *testing.T) {
	_, srv, st := wsSetup(t)

	// non-members can neither join the room nor post into it
	mallory := dialWS(t, srv, "mallory")
	writeFrame(t, mallory, map[string]any{"type": "join", "conversation_id": "conv-1"})
	if ev := readEvent(t, mallory); ev.Type != "error" {
		t.Errorf("non-member join: expected error event, got %q", ev.Type)
	}
	writeFrame(t, mallory, map[string]any{"type": "send", "conversation_id": "conv-1", "body": "let me in"})
	if ev := readEvent(t, mallory); ev.Type != "error" {
		t.Errorf("non-member send: expected error event, got %q", ev.Type)
	}
	if n := st.messageCount(); n != 0 {
		t.Errorf("rejected sends were persisted: %d messages", n)
	}

	// members still can't post blank bodies or unknown frame types
	alice := dialWS(t, srv, "alice")
	writeFrame(t, alice, map[string]any{"type": "send", "conversation_id": "conv-1", "body": "   "})
	if ev := readEvent(t, alice); ev.Type != "error" {
		t.Errorf("blank body: expected error event, got %q", ev.Type)
	}
	writeFrame(t, alice, map[string]any{"type": "shout", "conversation_id": "conv-1"})
	if ev := readEvent(t, alice); ev.Type != "error" {
		t.Errorf("unknown type: expected error event, got %q", ev.Type)
	}
	if n := st.messageCount(); n != 0 {
		t.Errorf("invalid frames were persisted: %d messages", n)
	}
}
