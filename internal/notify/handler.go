package notify

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type pushReq struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

var validTypes = map[string]bool{
	TypeSuccess: true, TypeInfo: true, TypeWarning: true, TypeError: true,
}

func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"notifications": h.store.List(c.Request.Context()),
		"unread":        h.store.UnreadCount(),
	})
}

func (h *Handler) push(c *gin.Context) {
	var req pushReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if !validTypes[req.Type] {
		req.Type = TypeInfo
	}
	n := h.store.Push(c.Request.Context(), req.Type, req.Title, req.Message)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "notification": n})
}

func (h *Handler) readAll(c *gin.Context) {
	h.store.MarkAllRead(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) delete(c *gin.Context) {
	if !h.store.Delete(c.Request.Context(), c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) clear(c *gin.Context) {
	h.store.Clear(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Register attaches the notification routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.push)
	rg.POST("/read-all", h.readAll)
	rg.DELETE("/clear", h.clear)
	rg.DELETE("/:id", h.delete)
}
