// Package chat owns conversation identity, membership checks and message
// ordering. Both the REST handlers and the websocket inbound path submit
// messages through Engine.Post, so the two entry points share one set of
// invariants.
package chat

import (
	"context"
	"fmt"
	"strings"

	"mentorhub-api/internal/apperr"
	"mentorhub-api/internal/model"
)

// Store is the persistence contract. FindOrCreateConversation must be safe
// under concurrent first contact from both sides of a pair: any interleaving
// yields exactly one conversation row.
type Store interface {
	UserExists(ctx context.Context, id string) (bool, error)
	FindOrCreateConversation(ctx context.Context, userA, userB string) (*model.Conversation, error)
	GetConversation(ctx context.Context, id string) (*model.Conversation, error)
	ConversationsForUser(ctx context.Context, userID string) ([]model.Conversation, error)
	CreateMessage(ctx context.Context, m *model.Message) error
	MessagesByConversation(ctx context.Context, convID string) ([]model.Message, error)
}

// Broadcaster pushes a persisted message to the conversation's live
// listeners. Best-effort: delivery failures are the transport's problem,
// disconnected clients reconcile over REST.
type Broadcaster interface {
	BroadcastMessage(conversationID string, msg *model.Message)
}

type Engine struct {
	store Store
	bc    Broadcaster
}

func New(store Store, bc Broadcaster) *Engine {
	return &Engine{store: store, bc: bc}
}

// FindOrCreate returns the single conversation for the unordered pair
// (userID, otherID), creating it on first contact.
func (e *Engine) FindOrCreate(ctx context.Context, userID, otherID string) (*model.Conversation, error) {
	if otherID == "" {
		return nil, fmt.Errorf("%w: otherUserId required", apperr.ErrValidation)
	}
	if otherID == userID {
		return nil, fmt.Errorf("%w: cannot start a conversation with yourself", apperr.ErrValidation)
	}
	ok, err := e.store.UserExists(ctx, otherID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: user", apperr.ErrNotFound)
	}

	a, b := userID, otherID
	if b < a {
		a, b = b, a
	}
	return e.store.FindOrCreateConversation(ctx, a, b)
}

func (e *Engine) ListForUser(ctx context.Context, userID string) ([]model.Conversation, error) {
	return e.store.ConversationsForUser(ctx, userID)
}

// Authorize returns nil iff the user is a member of the conversation.
func (e *Engine) Authorize(ctx context.Context, convID, userID string) error {
	conv, err := e.store.GetConversation(ctx, convID)
	if err != nil {
		return err
	}
	if !conv.HasMember(userID) {
		return fmt.Errorf("%w: not a conversation member", apperr.ErrForbidden)
	}
	return nil
}

// Messages returns the conversation history in persistence order.
func (e *Engine) Messages(ctx context.Context, convID, requesterID string) ([]model.Message, error) {
	if err := e.Authorize(ctx, convID, requesterID); err != nil {
		return nil, err
	}
	return e.store.MessagesByConversation(ctx, convID)
}

// Post validates, persists, then broadcasts. The broadcast happens strictly
// after a successful write, so listeners never see a message that REST
// reads won't also return.
func (e *Engine) Post(ctx context.Context, convID, senderID, body string) (*model.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: body required", apperr.ErrValidation)
	}
	if err := e.Authorize(ctx, convID, senderID); err != nil {
		return nil, err
	}

	m := &model.Message{
		ConversationID: convID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := e.store.CreateMessage(ctx, m); err != nil {
		return nil, err
	}
	e.bc.BroadcastMessage(convID, m)
	return m, nil
}
