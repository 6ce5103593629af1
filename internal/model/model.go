package model

import "time"

const (
	RoleMember = "MEMBER"
	RoleMentor = "MENTOR"
	RoleAdmin  = "ADMIN"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Bio          string    `json:"bio"`
	ProfileImage string    `json:"profile_image"`
	Skills       string    `json:"skills"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Post struct {
	ID           string    `json:"id"`
	AuthorID     string    `json:"author_id"`
	AuthorName   string    `json:"author_name,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Image        string    `json:"image,omitempty"`
	Tags         []string  `json:"tags"`
	LikeCount    int       `json:"like_count"`
	CommentCount int       `json:"comment_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Event struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	StartsAt      time.Time `json:"starts_at"`
	AttendeeCount int       `json:"attendee_count"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	MentorshipPending  = "pending"
	MentorshipAccepted = "accepted"
)

type Mentorship struct {
	ID            string     `json:"id"`
	MentorID      string     `json:"mentor_id"`
	MenteeID      string     `json:"mentee_id"`
	Topic         string     `json:"topic"`
	Status        string     `json:"status"`
	PreferredSlot *time.Time `json:"preferred_slot,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Conversation members are stored normalized: UserA < UserB. One row per
// unordered pair, whichever side initiated.
type Conversation struct {
	ID        string    `json:"id"`
	UserA     string    `json:"user_a"`
	UserB     string    `json:"user_b"`
	CreatedAt time.Time `json:"created_at"`
	// latest message, when loaded for a conversation list
	LastMessage *Message `json:"last_message,omitempty"`
}

func (c *Conversation) HasMember(userID string) bool {
	return c.UserA == userID || c.UserB == userID
}

// Message ids come from a bigserial sequence; ascending id is the ordering
// both the REST read path and the realtime broadcast agree on.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

const (
	SlotOpen   = "OPEN"
	SlotBooked = "BOOKED"
)

type Slot struct {
	ID        string    `json:"id"`
	MentorID  string    `json:"mentor_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Booking struct {
	ID        string    `json:"id"`
	SlotID    string    `json:"slot_id"`
	MenteeID  string    `json:"mentee_id"`
	CreatedAt time.Time `json:"created_at"`
}
