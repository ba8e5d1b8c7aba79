package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/validation"
)

// ContactHandler handles the public contact form and the admin inbox.
type ContactHandler struct {
	contactService *services.ContactService
}

// NewContactHandler creates a new ContactHandler instance.
func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest represents a contact form submission. The website
// field is a honeypot: humans never see it, bots fill it in.
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=200"`
	Body    string `json:"body" binding:"required,max=5000"`
	Website string `json:"website"`
}

// Submit accepts a contact form submission. The response is identical
// whether or not the honeypot was tripped.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	_, err := h.contactService.Submit(services.ContactInput{
		Name:     validation.SanitizeString(req.Name),
		Email:    validation.SanitizeString(req.Email),
		Subject:  validation.SanitizeString(req.Subject),
		Body:     validation.SanitizeStringPreserveNewlines(req.Body),
		Honeypot: req.Website,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "message received"})
}

// List returns the admin inbox, newest first.
func (h *ContactHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	includeSpam := c.Query("include_spam") == "true"

	messages, total, err := h.contactService.List(includeSpam, limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

// Get returns a single message.
func (h *ContactHandler) Get(c *gin.Context) {
	message, err := h.contactService.GetByID(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, message)
}

// MarkRead marks a message as read.
func (h *ContactHandler) MarkRead(c *gin.Context) {
	if err := h.contactService.MarkRead(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked read"})
}

// Delete removes a message.
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contactService.Delete(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message deleted"})
}

// UnreadCount returns the count of unread non-spam messages.
func (h *ContactHandler) UnreadCount(c *gin.Context) {
	count, err := h.contactService.UnreadCount()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}
