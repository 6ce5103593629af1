package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mentorhub-api/internal/middleware"
	"mentorhub-api/internal/model"
)

type postReq struct {
	Title   string   `json:"title" binding:"required,min=5"`
	Content string   `json:"content" binding:"required,min=10"`
	Image   string   `json:"image"`
	Tags    []string `json:"tags"`
}

func (h *Handler) createPost(c *gin.Context) {
	var req postReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := &model.Post{
		ID:       uuid.New().String(),
		AuthorID: middleware.MustUserID(c),
		Title:    req.Title,
		Content:  req.Content,
		Image:    req.Image,
		Tags:     req.Tags,
	}
	if err := h.store.CreatePost(c.Request.Context(), p); err != nil {
		writeErr(c, err)
		return
	}

	// re-read for the joined author name
	full, err := h.store.GetPost(c.Request.Context(), p.ID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, full)
}

func (h *Handler) getPost(c *gin.Context) {
	p, err := h.store.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) listPosts(c *gin.Context) {
	limit, offset := pagination(c)
	posts, total, err := h.store.ListPosts(c.Request.Context(), c.Query("authorId"), limit, offset)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": total})
}

func (h *Handler) searchPosts(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query required"})
		return
	}
	limit, offset := pagination(c)
	posts, total, err := h.store.SearchPosts(c.Request.Context(), term, limit, offset)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": total})
}

func (h *Handler) updatePost(c *gin.Context) {
	var req postReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	p, err := h.store.GetPost(ctx, c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	if p.AuthorID != middleware.MustUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the author"})
		return
	}

	p.Title = req.Title
	p.Content = req.Content
	p.Tags = req.Tags
	if err := h.store.UpdatePost(ctx, p); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) deletePost(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.store.GetPost(ctx, c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	me := middleware.MustUserID(c)
	if p.AuthorID != me && middleware.Role(c) != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the author"})
		return
	}
	if err := h.store.DeletePost(ctx, p.ID); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *Handler) toggleLike(c *gin.Context) {
	ctx := c.Request.Context()
	postID := c.Param("id")

	// surface 404 for unknown posts instead of a dangling like
	if _, err := h.store.GetPost(ctx, postID); err != nil {
		writeErr(c, err)
		return
	}

	liked, err := h.store.ToggleLike(ctx, middleware.MustUserID(c), postID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
