package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mentorhub-api/internal/middleware"
)

type createSlotReq struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

func (h *Handler) createSlot(c *gin.Context) {
	var req createSlotReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.booking.CreateSlot(c.Request.Context(), middleware.MustUserID(c),
		req.StartTime, req.EndTime)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

func (h *Handler) listSlots(c *gin.Context) {
	slots, err := h.booking.ListOpen(c.Request.Context(), c.Query("mentorId"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

type bookSlotReq struct {
	SlotID string `json:"slot_id" binding:"required"`
}

func (h *Handler) bookSlot(c *gin.Context) {
	var req bookSlotReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.booking.Book(c.Request.Context(), middleware.MustUserID(c), req.SlotID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}
