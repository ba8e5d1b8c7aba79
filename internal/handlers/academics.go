package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
)

// AcademicHandler handles academic history endpoints.
type AcademicHandler struct {
	academicService *services.AcademicService
}

// NewAcademicHandler creates a new AcademicHandler instance.
func NewAcademicHandler(academicService *services.AcademicService) *AcademicHandler {
	return &AcademicHandler{academicService: academicService}
}

// AcademicRequest represents a request to create or update an academic
// record. An absent end_date marks the entry as in progress.
type AcademicRequest struct {
	Institution string     `json:"institution" binding:"required,max=200"`
	Degree      string     `json:"degree" binding:"required,max=200"`
	Field       string     `json:"field" binding:"max=200"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
	GPA         float64    `json:"gpa" binding:"min=0,max=5"`
	Notes       string     `json:"notes"`
}

func (r *AcademicRequest) input() services.AcademicInput {
	return services.AcademicInput{
		Institution: r.Institution,
		Degree:      r.Degree,
		Field:       r.Field,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		GPA:         r.GPA,
		Notes:       r.Notes,
	}
}

// List returns all academic records, most recent first.
func (h *AcademicHandler) List(c *gin.Context) {
	academics, err := h.academicService.List()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"academics": academics})
}

// Get returns a single academic record.
func (h *AcademicHandler) Get(c *gin.Context) {
	academic, err := h.academicService.GetByID(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, academic)
}

// Create adds a new academic record.
func (h *AcademicHandler) Create(c *gin.Context) {
	var req AcademicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	academic, err := h.academicService.Create(req.input())
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, academic)
}

// Update replaces an academic record's fields.
func (h *AcademicHandler) Update(c *gin.Context) {
	var req AcademicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	academic, err := h.academicService.Update(c.Param("id"), req.input())
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, academic)
}

// Delete removes an academic record.
func (h *AcademicHandler) Delete(c *gin.Context) {
	if err := h.academicService.Delete(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "academic record deleted"})
}
