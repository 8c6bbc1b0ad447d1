package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/arnavshah/day-planner-go/pkg/database"
	"github.com/arnavshah/day-planner-go/pkg/models"
	"github.com/arnavshah/day-planner-go/pkg/sheets"
	"github.com/gin-gonic/gin"
)

// ListWorkers returns every stored worker
func (h *Handler) ListWorkers(c *gin.Context) {
	workers, err := database.ListWorkers(h.DB)
	if err != nil {
		log.Printf("list workers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch workers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

// CreateWorker stores a worker sent as JSON
func (h *Handler) CreateWorker(c *gin.Context) {
	var w models.Worker
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if w.Name == "" || w.Qualifications == nil || w.Availability == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, qualifications, or availability"})
		return
	}

	created, err := database.CreateWorker(h.DB, w)
	if err != nil {
		log.Printf("create worker %s: %v", w.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create worker"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Worker created successfully", "worker": created})
}

// UpdateWorker changes the fields present in the request body
func (h *Handler) UpdateWorker(c *gin.Context) {
	id, ok := workerID(c)
	if !ok {
		return
	}
	var w models.Worker
	if err := c.ShouldBindJSON(&w); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := database.UpdateWorker(h.DB, id, w)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No worker found with ID " + c.Param("id")})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update worker"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Worker updated successfully", "worker": updated})
}

// DeleteWorker removes a worker
func (h *Handler) DeleteWorker(c *gin.Context) {
	id, ok := workerID(c)
	if !ok {
		return
	}
	err := database.DeleteWorker(h.DB, id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worker with ID " + c.Param("id") + " not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete worker"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Worker deleted successfully"})
}

// ImportWorkers loads an availability spreadsheet into the worker store
func (h *Handler) ImportWorkers(c *gin.Context) {
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

	workers, skipped, err := sheets.ParseAvailability(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, s := range skipped {
		log.Printf("import %s: skipped row %d: %s", fh.Filename, s.Row, s.Reason)
	}

	n, err := database.CreateWorkers(h.DB, workers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store workers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": n, "skipped": skipped})
}

func workerID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid worker id"})
		return 0, false
	}
	return uint(id), true
}
