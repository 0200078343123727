package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// reconcile pulls the remote snapshots and replaces the local collections
// wholesale. Used at session start once an identity is available, or on an
// explicit user refresh.
func (h *Handler) reconcile(c *gin.Context) {
	if h.client == nil {
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "remote sync not configured"})
		return
	}

	ctx := c.Request.Context()
	projects, err := h.client.FetchAllProjects(ctx)
	if err != nil {
		log.Printf("[warn] reconcile projects fetch failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "remote fetch failed"})
		return
	}
	prompts, err := h.client.FetchAllPrompts(ctx)
	if err != nil {
		log.Printf("[warn] reconcile prompts fetch failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "remote fetch failed"})
		return
	}

	h.svc.ReconcileFromRemote(ctx, projects)
	h.svc.ReconcilePrompts(ctx, prompts)
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": len(projects), "prompts": len(prompts)})
}

// syncStatus exposes the outbox health for the "last synced" indicator.
func (h *Handler) syncStatus(c *gin.Context) {
	resp := gin.H{"ok": true, "health": h.outbox.Health()}
	if h.client != nil {
		resp["identity"] = h.client.Identity()
	}
	c.JSON(http.StatusOK, resp)
}
