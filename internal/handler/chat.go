package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mentorhub-api/internal/middleware"
)

type startConversationReq struct {
	OtherUserID string `json:"other_user_id" binding:"required"`
}

func (h *Handler) startConversation(c *gin.Context) {
	var req startConversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv, err := h.chat.FindOrCreate(c.Request.Context(), middleware.MustUserID(c), req.OtherUserID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (h *Handler) listConversations(c *gin.Context) {
	convs, err := h.chat.ListForUser(c.Request.Context(), middleware.MustUserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

func (h *Handler) listMessages(c *gin.Context) {
	msgs, err := h.chat.Messages(c.Request.Context(), c.Param("id"), middleware.MustUserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type postMessageReq struct {
	Body string `json:"body" binding:"required"`
}

// postMessage is the REST write path into a conversation; it shares
// Engine.Post with the websocket path, so both produce identical ordering
// and broadcasts.
func (h *Handler) postMessage(c *gin.Context) {
	var req postMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chat.Post(c.Request.Context(), c.Param("id"), middleware.MustUserID(c), req.Body)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
