package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/arnavshah/day-planner-go/pkg/sheets"
	"github.com/arnavshah/day-planner-go/pkg/templates"
	"github.com/gin-gonic/gin"
)

// ListTemplates returns the stored role templates
func (h *Handler) ListTemplates(c *gin.Context) {
	entries, err := h.Catalog.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": entries})
}

// UploadTemplate stores a role template after checking its header row parses
func (h *Handler) UploadTemplate(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = fh.Filename
	}
	tpl, err := sheets.ParseTemplate(bytes.NewReader(data), name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, err := h.Catalog.Save(name, bytes.NewReader(data))
	if errors.Is(err, templates.ErrInvalidName) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store template"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": stored, "roles": tpl.Roles()})
}
