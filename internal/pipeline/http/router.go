package http

import "github.com/gin-gonic/gin"

// Register attaches the pipeline routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.POST("", h.createProject)
	projects.GET("", h.listProjects)
	projects.GET("/:id", h.getProject)
	projects.PATCH("/:id", h.updateProject)
	projects.DELETE("/:id", h.deleteProject)
	projects.POST("/:id/stages/:stage/complete", h.completeStage)
	projects.GET("/:id/report", h.projectReport)

	prompts := rg.Group("/prompts")
	prompts.GET("", h.listPrompts)
	prompts.POST("", h.savePrompt)
	prompts.GET("/archive", h.promptArchive)
	prompts.POST("/build/:stage", h.buildPrompt)
	prompts.DELETE("/:id", h.deletePrompt)

	rg.GET("/stats", h.stats)

	sync := rg.Group("/sync")
	sync.POST("/reconcile", h.reconcile)
	sync.GET("/status", h.syncStatus)
}
