package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"lead-distribution-backend/internal/parser"
	"lead-distribution-backend/internal/services/distribution"
	"lead-distribution-backend/internal/services/ingestion"
	"lead-distribution-backend/internal/services/matching"
	"lead-distribution-backend/internal/services/reporting"
	"lead-distribution-backend/internal/services/tasks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeadHandler struct {
	ingestion    *ingestion.Service
	distribution *distribution.Service
	matching     *matching.Service
	tasks        *tasks.Service
	reporting    *reporting.Service
	extractor    Extractor
}

func NewLeadHandler(
	ingestionSvc *ingestion.Service,
	distributionSvc *distribution.Service,
	matchingSvc *matching.Service,
	tasksSvc *tasks.Service,
	reportingSvc *reporting.Service,
	extractor Extractor,
) *LeadHandler {
	return &LeadHandler{
		ingestion:    ingestionSvc,
		distribution: distributionSvc,
		matching:     matchingSvc,
		tasks:        tasksSvc,
		reporting:    reportingSvc,
		extractor:    extractor,
	}
}

// UploadDocument ingests one lead document: extract text, parse,
// persist batch + tasks.
func (h *LeadHandler) UploadDocument(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	uploadedBy, err := uuid.Parse(c.PostForm("uploaded_by"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uploaded_by"})
		return
	}

	text, err := h.extractor.ExtractText(file)
	if err != nil {
		log.Println("ERROR extracting document text:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.ingestion.IngestDocument(text, header.Filename, uploadedBy)
	if err != nil {
		switch {
		case errors.Is(err, parser.ErrNoModeMarker), errors.Is(err, parser.ErrNoAssignments):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"batch":         batch,
		"total_numbers": batch.TotalNumbers,
	})
}

func (h *LeadHandler) GetBatch(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}

	batch, err := h.ingestion.GetBatch(batchID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"batch": batch})
}

func (h *LeadHandler) DeleteBatch(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}

	if err := h.ingestion.DeleteBatch(batchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "batch deleted"})
}

func (h *LeadHandler) ListTasks(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}

	status := c.Query("status")
	cursor := c.Query("cursor")
	limit := 50

	items, nextCursor, hasMore, err := h.ingestion.ListTasks(batchID, status, cursor, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"next_cursor": nextCursor,
		"has_more":    hasMore,
	})
}

type distributeOptions struct {
	DueInDays int    `json:"due_in_days"`
	Priority  string `json:"priority"`
}

func (o distributeOptions) toOptions() distribution.Options {
	return distribution.Options{DueInDays: o.DueInDays, Priority: o.Priority}
}

// DistributeRandom round-robins unassigned tasks over the given
// employees.
func (h *LeadHandler) DistributeRandom(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}

	var payload struct {
		EmployeeIDs []uuid.UUID `json:"employee_ids"`
		PerformedBy uuid.UUID   `json:"performed_by"`
		distributeOptions
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := h.distribution.DistributeRandom(batchID, payload.EmployeeIDs, payload.toOptions(), payload.PerformedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// DistributeTargeted applies explicit task-to-employee pairs.
func (h *LeadHandler) DistributeTargeted(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}

	var payload struct {
		Pairs       []distribution.Pair `json:"pairs"`
		PerformedBy uuid.UUID           `json:"performed_by"`
		distributeOptions
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := h.distribution.DistributeTargeted(batchID, payload.Pairs, payload.toOptions(), payload.PerformedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// AutoMatch resolves name hints and assigns the matches.
func (h *LeadHandler) AutoMatch(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("batchId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}

	var payload struct {
		PerformedBy uuid.UUID `json:"performed_by"`
		distributeOptions
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := h.matching.AutoMatchBatch(batchID, payload.toOptions(), payload.PerformedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateTask advances one task's lifecycle.
func (h *LeadHandler) UpdateTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	var input tasks.UpdateInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	task, err := h.tasks.UpdateTask(taskID, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// Calendar groups an employee's tasks by due date.
func (h *LeadHandler) Calendar(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee ID"})
		return
	}

	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected YYYY-MM-DD"})
		return
	}
	// include the whole end day
	end = end.Add(24*time.Hour - time.Nanosecond)

	days, err := h.reporting.Calendar(employeeID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// Stats aggregates task counts, optionally for one employee.
func (h *LeadHandler) Stats(c *gin.Context) {
	var employeeID *uuid.UUID
	if raw := c.Query("employee_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee ID"})
			return
		}
		employeeID = &id
	}

	stats, err := h.reporting.ComputeStats(employeeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ValidatePhoneNumber exposes the strict validator on its own; the
// parser deliberately does not apply it.
func (h *LeadHandler) ValidatePhoneNumber(c *gin.Context) {
	number := c.Query("number")
	c.JSON(http.StatusOK, gin.H{
		"number": number,
		"valid":  parser.IsValidPhoneNumber(number),
	})
}
