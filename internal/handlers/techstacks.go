package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
)

// TechStackHandler handles tech stack catalog endpoints.
type TechStackHandler struct {
	techStackService *services.TechStackService
}

// NewTechStackHandler creates a new TechStackHandler instance.
func NewTechStackHandler(techStackService *services.TechStackService) *TechStackHandler {
	return &TechStackHandler{techStackService: techStackService}
}

// TechStackRequest represents a request to create or update a tech
// stack entry.
type TechStackRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Category     string `json:"category" binding:"required,max=100"`
	IconURL      string `json:"icon_url" binding:"omitempty,url"`
	Proficiency  int    `json:"proficiency" binding:"min=0,max=100"`
	DisplayOrder int    `json:"display_order"`
}

func (r *TechStackRequest) input() services.TechStackInput {
	return services.TechStackInput{
		Name:         r.Name,
		Category:     r.Category,
		IconURL:      r.IconURL,
		Proficiency:  r.Proficiency,
		DisplayOrder: r.DisplayOrder,
	}
}

// List returns tech stacks, optionally filtered by category.
func (h *TechStackHandler) List(c *gin.Context) {
	stacks, err := h.techStackService.List(c.Query("category"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tech_stacks": stacks})
}

// Get returns a single tech stack entry.
func (h *TechStackHandler) Get(c *gin.Context) {
	stack, err := h.techStackService.GetByID(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stack)
}

// Create adds a new tech stack entry. Names are unique.
func (h *TechStackHandler) Create(c *gin.Context) {
	var req TechStackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	stack, err := h.techStackService.Create(req.input())
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stack)
}

// Update replaces a tech stack entry's fields.
func (h *TechStackHandler) Update(c *gin.Context) {
	var req TechStackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	stack, err := h.techStackService.Update(c.Param("id"), req.input())
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stack)
}

// Delete removes a tech stack entry.
func (h *TechStackHandler) Delete(c *gin.Context) {
	if err := h.techStackService.Delete(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tech stack deleted"})
}
