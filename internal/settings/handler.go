package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": h.svc.Get()})
}

func (h *Handler) update(c *gin.Context) {
	var req AppSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if req.Theme != "light" && req.Theme != "auto" {
		req.Theme = "auto"
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": h.svc.Update(c.Request.Context(), req)})
}

// Register attaches the settings routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.get)
	rg.PUT("", h.update)
}
