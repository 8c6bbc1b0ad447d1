package handlers

import (
	"net/http"

	"github.com/arnavshah/day-planner-go/pkg/models"
	"github.com/arnavshah/day-planner-go/pkg/scheduler"
	"github.com/gin-gonic/gin"
)

// ValidateInput checks a roster request without generating anything
func (h *Handler) ValidateInput(c *gin.Context) {
	var req models.RosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}

	if _, err := scheduler.ValidateParams(req.RunParams()); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	tpl, _, err := h.loadTemplate(req.Template)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	names := make(map[string]bool)
	for _, w := range req.Workers {
		if w.Name == "" {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Worker without a name"})
			return
		}
		if names[w.Name] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate worker name: " + w.Name})
			return
		}
		names[w.Name] = true
	}

	var unknown []string
	for _, role := range tpl.Roles() {
		if h.Engine.Config().CategoryOf(role) == "" {
			unknown = append(unknown, role)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"worker_count":  len(req.Workers),
			"role_count":    len(tpl.Columns),
			"unknown_roles": unknown,
		},
	})
}
