// Package handler wires the HTTP surface: route registration, request
// decoding, and translation of engine/store errors into status codes.
package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mentorhub-api/internal/apperr"
	"mentorhub-api/internal/booking"
	"mentorhub-api/internal/chat"
	"mentorhub-api/internal/middleware"
	"mentorhub-api/internal/model"
	"mentorhub-api/internal/store"
	"mentorhub-api/internal/ws"
)

type Handler struct {
	store     *store.Store
	booking   *booking.Engine
	chat      *chat.Engine
	hub       *ws.Hub
	jwtSecret string
	uploadDir string
}

func New(st *store.Store, be *booking.Engine, ce *chat.Engine, hub *ws.Hub, jwtSecret, uploadDir string) *Handler {
	return &Handler{
		store:     st,
		booking:   be,
		chat:      ce,
		hub:       hub,
		jwtSecret: jwtSecret,
		uploadDir: uploadDir,
	}
}

func (h *Handler) Router() *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.Static("/uploads", h.uploadDir)

	limiter := middleware.NewRateLimiter(5, 10)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", middleware.RateLimit(limiter), h.signup)
	authGroup.POST("/login", middleware.RateLimit(limiter), h.login)
	authGroup.POST("/refresh", h.refresh)

	authed := api.Group("")
	authed.Use(middleware.Auth(h.jwtSecret))
	{
		authed.POST("/auth/logout", h.logout)

		authed.GET("/users/me", h.me)
		authed.PUT("/users/me", h.updateProfile)
		authed.GET("/users/search", h.searchUsers)
		authed.GET("/users/:id", h.userProfile)
		authed.GET("/users/:id/posts", h.userPosts)
		authed.POST("/users/:id/follow", h.toggleFollow)
		authed.GET("/users/:id/followers", h.followers)
		authed.GET("/users/:id/following", h.following)

		authed.POST("/posts", h.createPost)
		authed.GET("/posts", h.listPosts)
		authed.GET("/posts/search", h.searchPosts)
		authed.GET("/posts/:id", h.getPost)
		authed.PUT("/posts/:id", h.updatePost)
		authed.DELETE("/posts/:id", h.deletePost)
		authed.POST("/posts/:id/like", h.toggleLike)
		authed.POST("/posts/:id/comments", h.createComment)
		authed.GET("/posts/:id/comments", h.listComments)
		authed.PUT("/comments/:id", h.updateComment)
		authed.DELETE("/comments/:id", h.deleteComment)

		authed.POST("/events", middleware.RequireRole(model.RoleAdmin), h.createEvent)
		authed.GET("/events", h.listEvents)
		authed.GET("/events/:id", h.getEvent)
		authed.POST("/events/:id/join", h.joinEvent)

		authed.POST("/mentorships", h.requestMentorship)
		authed.GET("/mentorships/pending", h.pendingMentorships)
		authed.GET("/mentorships/accepted", h.acceptedMentorships)
		authed.POST("/mentorships/:id/accept", h.acceptMentorship)
		authed.POST("/mentorships/:id/reject", h.rejectMentorship)
		authed.DELETE("/mentorships/:id", h.endMentorship)
		authed.GET("/mentorships/mentees", h.mentees)
		authed.GET("/mentorships/my-mentors", h.myMentors)
		authed.GET("/mentorships/find", h.findMentors)

		authed.POST("/slots", middleware.RequireRole(model.RoleMentor, model.RoleAdmin), h.createSlot)
		authed.GET("/slots", h.listSlots)
		authed.POST("/slots/book", h.bookSlot)

		authed.POST("/chat/conversations", h.startConversation)
		authed.GET("/chat/conversations", h.listConversations)
		authed.GET("/chat/conversations/:id/messages", h.listMessages)
		authed.POST("/chat/conversations/:id/messages", h.postMessage)

		authed.POST("/uploads", h.upload)

		admin := authed.Group("/admin", middleware.RequireRole(model.RoleAdmin))
		admin.GET("/stats", h.adminStats)
		admin.GET("/users", h.adminUsers)
	}

	// websocket does its own token handshake (query param)
	r.GET("/ws", h.serveWS)

	return r
}

// writeErr maps the error taxonomy to status codes. Internal errors get a
// generic body; the detail goes to the log, not the client.
func writeErr(c *gin.Context, err error) {
	code := apperr.Status(err)
	if code == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		c.JSON(code, gin.H{"error": "internal error"})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// pagination reads ?page= and ?limit= with sane bounds.
func pagination(c *gin.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return limit, (page - 1) * limit
}
