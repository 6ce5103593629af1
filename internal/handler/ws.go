package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"mentorhub-api/internal/auth"
	"mentorhub-api/internal/ws"
)

// inbound frames from the socket client
type wsFrame struct {
	Type           string `json:"type"` // join | leave | send
	ConversationID string `json:"conversation_id"`
	Body           string `json:"body,omitempty"`
}

// serveWS upgrades the connection and runs the read loop. Browser websocket
// clients cannot set an Authorization header, so the token rides in the
// query string. The sender identity always comes from the token.
func (h *Handler) serveWS(c *gin.Context) {
	raw := c.Query("token")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	claims, err := auth.ParseToken(raw, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		return // Accept already wrote the error response
	}

	client := h.hub.Attach(claims.UserID, conn)
	defer h.hub.Detach(client)

	ctx := c.Request.Context()
	for {
		var frame wsFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			return // closed or malformed stream
		}
		h.handleFrame(ctx, client, frame)
	}
}

func (h *Handler) handleFrame(ctx context.Context, client *ws.Client, frame wsFrame) {
	switch frame.Type {
	case "join":
		// only members of the conversation may listen to its room
		if err := h.chat.Authorize(ctx, frame.ConversationID, client.UserID); err != nil {
			sendErr(client, err)
			return
		}
		h.hub.Join(client, frame.ConversationID)

	case "leave":
		h.hub.Leave(client, frame.ConversationID)

	case "send":
		// same path as the REST write: persist first, broadcast after
		if _, err := h.chat.Post(ctx, frame.ConversationID, client.UserID, frame.Body); err != nil {
			sendErr(client, err)
		}

	default:
		sendErr(client, errors.New("unknown frame type"))
	}
}

// sendErr reports a failure to the offending client only; the room never
// sees another member's errors.
func sendErr(client *ws.Client, err error) {
	client.Send(ws.Event{Type: "error", Data: gin.H{"error": err.Error()}})
}
