package genimage

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the generation proxy and the key-status probe.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

type renderReq struct {
	Prompt string `json:"prompt"`
}

func (h *Handler) render(c *gin.Context) {
	var req renderReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	result := h.client.Generate(c.Request.Context(), req.Prompt)
	status := http.StatusOK
	if result.Error != "" {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}

func (h *Handler) aiStatus(c *gin.Context) {
	status, message := h.client.Status()
	c.JSON(http.StatusOK, gin.H{"status": status, "message": message})
}

// Register attaches the render routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/render", h.render)
	rg.GET("/ai-status", h.aiStatus)
}
