package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mentorhub-api/internal/middleware"
)

func (h *Handler) me(c *gin.Context) {
	u, err := h.store.UserByID(c.Request.Context(), middleware.MustUserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type updateProfileReq struct {
	Name         string `json:"name" binding:"required,min=2"`
	Bio          string `json:"bio" binding:"max=500"`
	ProfileImage string `json:"profile_image"`
	Skills       string `json:"skills"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.store.UpdateProfile(c.Request.Context(), middleware.MustUserID(c),
		req.Name, req.Bio, req.ProfileImage, req.Skills)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) userProfile(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	u, err := h.store.UserByID(ctx, id)
	if err != nil {
		writeErr(c, err)
		return
	}
	counts, err := h.store.CountsForUser(ctx, id)
	if err != nil {
		writeErr(c, err)
		return
	}
	isFollowing, err := h.store.IsFollowing(ctx, middleware.MustUserID(c), id)
	if err != nil {
		writeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":            u,
		"post_count":      counts.Posts,
		"follower_count":  counts.Followers,
		"following_count": counts.Following,
		"is_following":    isFollowing,
	})
}

func (h *Handler) userPosts(c *gin.Context) {
	limit, offset := pagination(c)
	posts, total, err := h.store.ListPosts(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": total})
}

func (h *Handler) toggleFollow(c *gin.Context) {
	me := middleware.MustUserID(c)
	target := c.Param("id")
	if target == me {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
		return
	}

	following, err := h.store.ToggleFollow(c.Request.Context(), me, target)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

func (h *Handler) followers(c *gin.Context) {
	limit, offset := pagination(c)
	users, total, err := h.store.Followers(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

func (h *Handler) following(c *gin.Context) {
	limit, offset := pagination(c)
	users, total, err := h.store.Following(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

func (h *Handler) searchUsers(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query must be at least 2 characters"})
		return
	}
	limit, offset := pagination(c)
	users, total, err := h.store.SearchUsers(c.Request.Context(), q, limit, offset)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}
