package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mentorhub-api/internal/middleware"
	"mentorhub-api/internal/model"
)

type createEventReq struct {
	Title       string    `json:"title" binding:"required,min=3"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
}

// createEvent is admin-only (route-gated); members only list and join.
func (h *Handler) createEvent(c *gin.Context) {
	var req createEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev := &model.Event{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
	}
	if err := h.store.CreateEvent(c.Request.Context(), ev); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (h *Handler) listEvents(c *gin.Context) {
	events, err := h.store.ListEvents(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *Handler) getEvent(c *gin.Context) {
	ev, err := h.store.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

// joinEvent is idempotent: joining twice is one attendance.
func (h *Handler) joinEvent(c *gin.Context) {
	ctx := c.Request.Context()
	ev, err := h.store.GetEvent(ctx, c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	if err := h.store.JoinEvent(ctx, ev.ID, middleware.MustUserID(c)); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "joined"})
}
