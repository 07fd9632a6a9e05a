// Package http wires the presentation layer to the domain services.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"xelar/internal/domain"
	"xelar/internal/notify"
	"xelar/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth          service.AuthService
	feed          service.FeedService
	chat          service.ChatService
	search        service.SearchService
	notifications *notify.Registry
	jwtSecret     []byte
	tokenTTL      time.Duration
}

func NewHandler(
	auth service.AuthService,
	feed service.FeedService,
	chat service.ChatService,
	search service.SearchService,
	notifications *notify.Registry,
	jwtSecret string,
	tokenTTL time.Duration,
) *Handler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Handler{
		auth:          auth,
		feed:          feed,
		chat:          chat,
		search:        search,
		notifications: notifications,
		jwtSecret:     []byte(jwtSecret),
		tokenTTL:      tokenTTL,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.POST("/auth/signup", h.signup)
		api.POST("/auth/login", h.login)
	}

	authed := api.Group("", h.authRequired())
	{
		authed.POST("/auth/logout", h.logout)
		authed.GET("/auth/me", h.me)
		authed.PUT("/profile", h.updateProfile)

		authed.GET("/feed/posts", h.listPosts)
		authed.POST("/feed/posts", h.createPost)
		authed.PUT("/feed/posts/:id", h.updatePost)
		authed.DELETE("/feed/posts/:id", h.deletePost)
		authed.POST("/feed/posts/:id/like", h.toggleLike)
		authed.POST("/feed/suggestion", h.suggestPost)
		authed.GET("/feed/stories", h.listStories)

		authed.GET("/chat/contacts", h.listContacts)
		authed.GET("/chat/contacts/:id/messages", h.chatHistory)
		authed.POST("/chat/contacts/:id/messages", h.sendMessage)

		authed.GET("/search", h.searchHandler)
		authed.GET("/notifications", h.listNotifications)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// --- feed ---

type createPostRequest struct {
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

func (h *Handler) listPosts(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.ListPosts(c.Request.Context()))
}

func (h *Handler) listStories(c *gin.Context) {
	c.JSON(http.StatusOK, h.feed.ListStories(c.Request.Context()))
}

func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author := currentUser(c)
	post, err := h.feed.CreatePost(c.Request.Context(), author, req.Content, req.ImageURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.notifications.Add("Post created successfully!", domain.NotifySuccess)
	c.JSON(http.StatusCreated, post)
}

type updatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) updatePost(c *gin.Context) {
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	author := currentUser(c)
	post, err := h.feed.UpdatePost(c.Request.Context(), author.ID, c.Param("id"), req.Content)
	if err != nil {
		h.feedError(c, err)
		return
	}

	h.notifications.Add("Post updated!", domain.NotifySuccess)
	c.JSON(http.StatusOK, post)
}

func (h *Handler) deletePost(c *gin.Context) {
	author := currentUser(c)
	if err := h.feed.DeletePost(c.Request.Context(), author.ID, c.Param("id")); err != nil {
		h.feedError(c, err)
		return
	}

	h.notifications.Add("Post deleted.", domain.NotifyInfo)
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *Handler) toggleLike(c *gin.Context) {
	post, err := h.feed.ToggleLike(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.feedError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

type suggestPostRequest struct {
	Topic string `json:"topic" binding:"required"`
}

func (h *Handler) suggestPost(c *gin.Context) {
	var req suggestPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	suggestion := h.feed.SuggestPost(c.Request.Context(), req.Topic)
	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}

func (h *Handler) feedError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotPostAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// --- chat ---

func (h *Handler) listContacts(c *gin.Context) {
	c.JSON(http.StatusOK, h.chat.Contacts(c.Request.Context()))
}

func (h *Handler) chatHistory(c *gin.Context) {
	history, err := h.chat.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}

type sendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.chat.Send(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// --- search / notifications ---

func (h *Handler) searchHandler(c *gin.Context) {
	results := h.search.Search(c.Request.Context(), c.Query("q"))
	c.JSON(http.StatusOK, results)
}

func (h *Handler) listNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.notifications.List())
}
