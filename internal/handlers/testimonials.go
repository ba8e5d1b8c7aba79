package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/middleware"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
)

// TestimonialHandler handles testimonial endpoints.
type TestimonialHandler struct {
	testimonialService *services.TestimonialService
}

// NewTestimonialHandler creates a new TestimonialHandler instance.
func NewTestimonialHandler(testimonialService *services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{testimonialService: testimonialService}
}

// TestimonialRequest represents a request to create or update a
// testimonial.
type TestimonialRequest struct {
	Author    string `json:"author" binding:"required,max=120"`
	Position  string `json:"position" binding:"max=120"`
	Company   string `json:"company" binding:"max=120"`
	Quote     string `json:"quote" binding:"required,max=2000"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
	Approved  bool   `json:"approved"`
}

// ApproveRequest flips a testimonial's approval flag.
type ApproveRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

func (r *TestimonialRequest) input() services.TestimonialInput {
	return services.TestimonialInput{
		Author:    r.Author,
		Position:  r.Position,
		Company:   r.Company,
		Quote:     r.Quote,
		AvatarURL: r.AvatarURL,
		Approved:  r.Approved,
	}
}

// List returns testimonials. Callers without content authority only
// see approved entries.
func (h *TestimonialHandler) List(c *gin.Context) {
	approvedOnly := true
	if identity, ok := middleware.IdentityFrom(c); ok && identity.Role.CanManageProjects() {
		approvedOnly = c.Query("approved") == "true"
	}

	testimonials, err := h.testimonialService.List(approvedOnly)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": testimonials})
}

// Get returns a single testimonial.
func (h *TestimonialHandler) Get(c *gin.Context) {
	testimonial, err := h.testimonialService.GetByID(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, testimonial)
}

// Create adds a new testimonial.
func (h *TestimonialHandler) Create(c *gin.Context) {
	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	testimonial, err := h.testimonialService.Create(req.input())
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, testimonial)
}

// Update replaces a testimonial's fields.
func (h *TestimonialHandler) Update(c *gin.Context) {
	var req TestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	testimonial, err := h.testimonialService.Update(c.Param("id"), req.input())
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, testimonial)
}

// SetApproved approves or unapproves a testimonial.
func (h *TestimonialHandler) SetApproved(c *gin.Context) {
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.testimonialService.SetApproved(c.Param("id"), *req.Approved); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "testimonial updated"})
}

// Delete removes a testimonial.
func (h *TestimonialHandler) Delete(c *gin.Context) {
	if err := h.testimonialService.Delete(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "testimonial deleted"})
}
