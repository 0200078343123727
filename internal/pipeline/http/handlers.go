package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inte-real/inte-real-backend/internal/pipeline/domain"
	"github.com/inte-real/inte-real-backend/internal/pipeline/service"
	"github.com/inte-real/inte-real-backend/internal/remote"
	"github.com/inte-real/inte-real-backend/internal/report"
)

// Handler serves the project, prompt, stats, and sync routes.
type Handler struct {
	svc    *service.ProjectService
	client *remote.Client // nil when remote sync is disabled
	outbox *remote.Outbox
}

func New(svc *service.ProjectService, client *remote.Client, outbox *remote.Outbox) *Handler {
	return &Handler{svc: svc, client: client, outbox: outbox}
}

func (h *Handler) createProject(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Usage) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "name and usage are required"})
		return
	}

	p, err := h.svc.CreateProject(c.Request.Context(), req.Name, req.Usage, req.Client, req.Location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) listProjects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": h.svc.Projects()})
}

func (h *Handler) getProject(c *gin.Context) {
	p, err := h.svc.GetProject(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":              true,
		"project":         p,
		"completedStages": domain.CompletedStageCount(p),
		"progressPercent": domain.ProgressPercent(p),
	})
}

func (h *Handler) updateProject(c *gin.Context) {
	var patch service.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.UpdateProject(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, domain.ErrInvalidStage) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) deleteProject(c *gin.Context) {
	if err := h.svc.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) completeStage(c *gin.Context) {
	stage := domain.StageKey(c.Param("stage"))
	var req completeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.CompleteStage(c.Request.Context(), c.Param("id"), stage, req.toResult())
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, domain.ErrInvalidStage) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) projectReport(c *gin.Context) {
	p, err := h.svc.GetProject(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	html, err := report.GenerateHTML(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) listPrompts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "prompts": h.svc.Prompts()})
}

func (h *Handler) savePrompt(c *gin.Context) {
	var req savePromptReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	rec, err := h.svc.SavePrompt(c.Request.Context(), req.ProjectID, req.ProjectName, domain.StageKey(req.Stage), req.Prompt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "prompt": rec})
}

func (h *Handler) deletePrompt(c *gin.Context) {
	if err := h.svc.DeletePrompt(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "prompt record not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// promptArchive lists the durable prompt history, optionally filtered by
// project. 404 when the archive backend is not configured.
func (h *Handler) promptArchive(c *gin.Context) {
	archive := h.svc.Archive()
	if archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "prompt archive not configured"})
		return
	}

	ctx := c.Request.Context()
	if projectID := c.Query("project_id"); projectID != "" {
		records, err := archive.ListByProject(ctx, projectID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "prompts": records})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := archive.ListRecent(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "prompts": records})
}

func (h *Handler) stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "stats": h.svc.Stats()})
}
