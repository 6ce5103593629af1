package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mentorhub-api/internal/apperr"
	"mentorhub-api/internal/middleware"
	"mentorhub-api/internal/model"
)

type mentorshipReq struct {
	MentorID      string     `json:"mentor_id" binding:"required"`
	Topic         string     `json:"topic" binding:"required"`
	PreferredSlot *time.Time `json:"preferred_slot"`
}

func (h *Handler) requestMentorship(c *gin.Context) {
	var req mentorshipReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	me := middleware.MustUserID(c)

	if req.MentorID == me {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot request yourself as mentor"})
		return
	}
	mentor, err := h.store.UserByID(ctx, req.MentorID)
	if err != nil {
		writeErr(c, err)
		return
	}
	if mentor.Role != model.RoleMentor {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user is not a mentor"})
		return
	}

	m := &model.Mentorship{
		ID:            uuid.New().String(),
		MentorID:      mentor.ID,
		MenteeID:      me,
		Topic:         req.Topic,
		Status:        model.MentorshipPending,
		PreferredSlot: req.PreferredSlot,
	}
	// unique (mentor, mentee) turns a duplicate request into a 409
	if err := h.store.CreateMentorship(ctx, m); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *Handler) pendingMentorships(c *gin.Context) {
	h.mentorshipsByStatus(c, model.MentorshipPending)
}

func (h *Handler) acceptedMentorships(c *gin.Context) {
	h.mentorshipsByStatus(c, model.MentorshipAccepted)
}

func (h *Handler) mentorshipsByStatus(c *gin.Context, status string) {
	limit, offset := pagination(c)
	ms, total, err := h.store.MentorshipsForMentor(c.Request.Context(),
		middleware.MustUserID(c), status, limit, offset)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentorships": ms, "total": total})
}

func (h *Handler) acceptMentorship(c *gin.Context) {
	ctx := c.Request.Context()
	m, err := h.pendingForMentor(c)
	if err != nil {
		return
	}
	accepted, err := h.store.AcceptMentorship(ctx, m.ID)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, accepted)
}

func (h *Handler) rejectMentorship(c *gin.Context) {
	ctx := c.Request.Context()
	m, err := h.pendingForMentor(c)
	if err != nil {
		return
	}
	if err := h.store.DeleteMentorship(ctx, m.ID); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "rejected"})
}

// pendingForMentor loads the mentorship and checks the caller is its mentor
// and the request is still pending. Writes the response on failure.
func (h *Handler) pendingForMentor(c *gin.Context) (*model.Mentorship, error) {
	m, err := h.store.GetMentorship(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return nil, err
	}
	if m.MentorID != middleware.MustUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your mentorship request"})
		return nil, apperr.ErrForbidden
	}
	if m.Status != model.MentorshipPending {
		c.JSON(http.StatusConflict, gin.H{"error": "request already handled"})
		return nil, apperr.ErrConflict
	}
	return m, nil
}

func (h *Handler) mentees(c *gin.Context) {
	users, err := h.store.MenteesForMentor(c.Request.Context(), middleware.MustUserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentees": users})
}

func (h *Handler) myMentors(c *gin.Context) {
	users, err := h.store.MentorsForMentee(c.Request.Context(), middleware.MustUserID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": users})
}

// findMentors is mentor discovery: mentor-role users matched by topic
// against name and skills.
func (h *Handler) findMentors(c *gin.Context) {
	limit, offset := pagination(c)
	users, total, err := h.store.SearchMentors(c.Request.Context(), c.Query("topic"), limit, offset)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mentors": users, "total": total})
}

// endMentorship removes the mentorship; either side may end it, whether
// still pending or already accepted.
func (h *Handler) endMentorship(c *gin.Context) {
	ctx := c.Request.Context()
	m, err := h.store.GetMentorship(ctx, c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	me := middleware.MustUserID(c)
	if m.MentorID != me && m.MenteeID != me {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your mentorship"})
		return
	}
	if err := h.store.DeleteMentorship(ctx, m.ID); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ended"})
}
