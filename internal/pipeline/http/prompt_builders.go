package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inte-real/inte-real-backend/internal/prompt"
)

// buildPrompt runs the stage's template builder over the posted form state.
// An empty prompt in the response means a required input is missing; the
// dashboard disables its copy/generate actions on that signal rather than
// treating it as an error.
func (h *Handler) buildPrompt(c *gin.Context) {
	var built string

	switch c.Param("stage") {
	case "flow":
		var in prompt.FlowInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
		built = prompt.BuildFlow(in)
	case "tone":
		var in prompt.ToneInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
		built = prompt.BuildTone(in)
	case "rise":
		var in prompt.RiseInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
		built = prompt.BuildRise(in)
	case "fuse":
		var in prompt.FuseInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
		built = prompt.BuildFuse(in)
	case "lens":
		var in prompt.LensInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
		built = prompt.BuildLens(in)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid stage key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "prompt": built})
}
