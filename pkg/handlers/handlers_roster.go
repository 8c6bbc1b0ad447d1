package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/arnavshah/day-planner-go/pkg/database"
	"github.com/arnavshah/day-planner-go/pkg/models"
	"github.com/arnavshah/day-planner-go/pkg/scheduler"
	"github.com/arnavshah/day-planner-go/pkg/sheets"
	"github.com/arnavshah/day-planner-go/pkg/templates"
	"github.com/gin-gonic/gin"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GenerateRoster builds a roster for the requested date and template. Workers
// come from the request body when given, otherwise from the worker store.
func (h *Handler) GenerateRoster(c *gin.Context) {
	var req models.RosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl, status, err := h.loadTemplate(req.Template)
	if err != nil {
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	workers := req.Workers
	if workers == nil {
		workers, err = database.ListWorkers(h.DB)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch workers"})
			return
		}
	}

	roster, err := h.Engine.Generate(workers, tpl, req.RunParams())
	if err != nil {
		h.Metrics.Failed()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.Metrics.Observe(roster)

	id, err := database.SaveRun(h.DB, req.Template, roster)
	if err != nil {
		log.Printf("save roster for %s: %v", req.Date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store roster"})
		return
	}

	h.RecordUsage(c, 1, len(workers))
	c.JSON(http.StatusOK, models.RosterResponse{ID: id, Roster: roster})
}

// GetRoster returns a stored roster
func (h *Handler) GetRoster(c *gin.Context) {
	roster, _, err := database.GetRun(h.DB, c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Roster not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load roster"})
		return
	}
	c.JSON(http.StatusOK, models.RosterResponse{ID: c.Param("id"), Roster: roster})
}

// RosterXLSX downloads a stored roster as a spreadsheet laid out like its template
func (h *Handler) RosterXLSX(c *gin.Context) {
	roster, name, err := database.GetRun(h.DB, c.Param("id"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Roster not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load roster"})
		return
	}

	tpl, err := h.Catalog.Template(name)
	if err != nil {
		// the template may have been replaced or removed since the run
		tpl = models.RoleTemplate{Name: name, Columns: make(map[string]int, len(roster.Roles))}
		for i, role := range roster.Roles {
			tpl.Columns[role] = i + 1
		}
	}

	var buf bytes.Buffer
	if err := sheets.WriteRoster(&buf, roster, tpl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not render roster"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=roster-%s.xlsx", roster.Date))
	c.Data(http.StatusOK, xlsxMime, buf.Bytes())
}

func (h *Handler) loadTemplate(name string) (models.RoleTemplate, int, error) {
	tpl, err := h.Catalog.Template(name)
	switch {
	case err == nil:
		return tpl, http.StatusOK, nil
	case errors.Is(err, templates.ErrNotFound):
		return tpl, http.StatusNotFound, err
	case errors.Is(err, templates.ErrInvalidName):
		return tpl, http.StatusBadRequest, err
	default:
		return tpl, http.StatusBadRequest, fmt.Errorf("%w: %v", scheduler.ErrMissingTemplate, err)
	}
}
