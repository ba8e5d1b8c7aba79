package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/middleware"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
)

// ProjectHandler handles portfolio project endpoints.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler instance.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ProjectRequest represents a request to create or update a project.
type ProjectRequest struct {
	Title        string `json:"title" binding:"required,max=200"`
	Summary      string `json:"summary" binding:"max=500"`
	Description  string `json:"description"`
	TechStacks   string `json:"tech_stacks"`
	RepoURL      string `json:"repo_url" binding:"omitempty,url"`
	DemoURL      string `json:"demo_url" binding:"omitempty,url"`
	Status       string `json:"status" binding:"omitempty,oneof=draft published"`
	Featured     bool   `json:"featured"`
	DisplayOrder int    `json:"display_order"`
}

func (r *ProjectRequest) input() services.ProjectInput {
	return services.ProjectInput{
		Title:        r.Title,
		Summary:      r.Summary,
		Description:  r.Description,
		TechStacks:   r.TechStacks,
		RepoURL:      r.RepoURL,
		DemoURL:      r.DemoURL,
		Status:       r.Status,
		Featured:     r.Featured,
		DisplayOrder: r.DisplayOrder,
	}
}

// List returns a page of projects. Anonymous callers and plain viewers
// only ever see published projects; drafts require content authority.
func (h *ProjectHandler) List(c *gin.Context) {
	limit, offset := pagination(c)

	filter := services.ProjectFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	if raw := c.Query("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err == nil {
			filter.Featured = &v
		}
	}

	if !canSeeDrafts(c) {
		filter.Status = models.ProjectStatusPublished
	}

	projects, total, err := h.projectService.List(filter, limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// Get returns a single project. Drafts are hidden from callers without
// content authority.
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projectService.GetByID(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}

	if project.Status != models.ProjectStatusPublished && !canSeeDrafts(c) {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "project not found")
		return
	}

	c.JSON(http.StatusOK, project)
}

// Create adds a new project.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(req.input())
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// Update replaces a project's fields.
func (h *ProjectHandler) Update(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(c.Param("id"), req.input())
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// Delete removes a project.
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectService.Delete(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

func canSeeDrafts(c *gin.Context) bool {
	identity, ok := middleware.IdentityFrom(c)
	return ok && identity.Role.CanManageProjects()
}
