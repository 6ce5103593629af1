package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mentorhub-api/internal/model"
)

// FindOrCreateConversation returns the one conversation for an unordered
// user pair, creating it if absent. The pair arrives normalized (a < b);
// the unique index on (user_a, user_b) makes concurrent first contact from
// both sides converge on a single row — the losing INSERT is a no-op and
// the follow-up SELECT sees the winner's row.
func (s *Store) FindOrCreateConversation(ctx context.Context, a, b string) (*model.Conversation, error) {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO conversations (id, user_a, user_b) VALUES ($1,$2,$3)
		 ON CONFLICT (user_a, user_b) DO NOTHING`,
		uuid.New().String(), a, b)
	if err != nil {
		return nil, translate(err)
	}

	c := &model.Conversation{}
	err = s.pool.QueryRow(ctx,
		`SELECT id, user_a, user_b, created_at FROM conversations
		 WHERE user_a = $1 AND user_b = $2`, a, b,
	).Scan(&c.ID, &c.UserA, &c.UserB, &c.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

func (s *Store) GetConversation(ctx context.Context, id string) (*model.Conversation, error) {
	c := &model.Conversation{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_a, user_b, created_at FROM conversations WHERE id = $1`, id,
	).Scan(&c.ID, &c.UserA, &c.UserB, &c.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// ConversationsForUser lists the user's conversations, newest activity
// first, each with its latest message as preview.
func (s *Store) ConversationsForUser(ctx context.Context, userID string) ([]model.Conversation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT c.id, c.user_a, c.user_b, c.created_at,
		        m.id, m.sender_id, m.body, m.created_at
		 FROM conversations c
		 LEFT JOIN LATERAL (
		     SELECT id, sender_id, body, created_at FROM messages
		     WHERE conversation_id = c.id ORDER BY id DESC LIMIT 1
		 ) m ON true
		 WHERE c.user_a = $1 OR c.user_b = $1
		 ORDER BY COALESCE(m.created_at, c.created_at) DESC`, userID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.Conversation
	for rows.Next() {
		var c model.Conversation
		var mID *int64
		var mSender, mBody *string
		var mCreated *time.Time
		if err := rows.Scan(&c.ID, &c.UserA, &c.UserB, &c.CreatedAt,
			&mID, &mSender, &mBody, &mCreated); err != nil {
			return nil, translate(err)
		}
		if mID != nil {
			c.LastMessage = &model.Message{
				ID:             *mID,
				ConversationID: c.ID,
				SenderID:       *mSender,
				Body:           *mBody,
				CreatedAt:      *mCreated,
			}
		}
		out = append(out, c)
	}
	return out, translate(rows.Err())
}

func (s *Store) CreateMessage(ctx context.Context, m *model.Message) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO messages (conversation_id, sender_id, body) VALUES ($1,$2,$3)
		 RETURNING id, created_at`,
		m.ConversationID, m.SenderID, m.Body,
	).Scan(&m.ID, &m.CreatedAt)
	return translate(err)
}

func (s *Store) MessagesByConversation(ctx context.Context, convID string) ([]model.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, conversation_id, sender_id, body, created_at
		 FROM messages WHERE conversation_id = $1 ORDER BY id`, convID)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var out []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, translate(err)
		}
		out = append(out, m)
	}
	return out, translate(rows.Err())
}
