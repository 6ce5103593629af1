package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mentorhub-api/internal/middleware"
	"mentorhub-api/internal/model"
)

type commentReq struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) createComment(c *gin.Context) {
	var req commentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
		return
	}
	ctx := c.Request.Context()

	cm := &model.Comment{
		ID:       uuid.New().String(),
		PostID:   c.Param("id"),
		AuthorID: middleware.MustUserID(c),
		Content:  content,
	}
	if err := h.store.CreateComment(ctx, cm); err != nil {
		writeErr(c, err)
		return
	}

	full, err := h.store.GetComment(ctx, cm.ID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, full)
}

func (h *Handler) listComments(c *gin.Context) {
	limit, offset := pagination(c)
	comments, total, err := h.store.CommentsByPost(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments, "total": total})
}

func (h *Handler) updateComment(c *gin.Context) {
	var req commentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
		return
	}
	ctx := c.Request.Context()

	cm, err := h.store.GetComment(ctx, c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	if cm.AuthorID != middleware.MustUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the author"})
		return
	}

	updated, err := h.store.UpdateComment(ctx, cm.ID, content)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteComment(c *gin.Context) {
	ctx := c.Request.Context()
	cm, err := h.store.GetComment(ctx, c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	if cm.AuthorID != middleware.MustUserID(c) && middleware.Role(c) != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the author"})
		return
	}
	if err := h.store.DeleteComment(ctx, cm.ID); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
