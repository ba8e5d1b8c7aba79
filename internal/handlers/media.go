package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
)

// MediaHandler handles media upload and library endpoints.
type MediaHandler struct {
	mediaService *services.MediaService
}

// NewMediaHandler creates a new MediaHandler instance.
func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload stores a multipart file from the "file" form field.
func (h *MediaHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "multipart field 'file' is required")
		return
	}

	media, err := h.mediaService.Save(header)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, media)
}

// List returns a page of the media library, newest first.
func (h *MediaHandler) List(c *gin.Context) {
	limit, offset := pagination(c)

	media, total, err := h.mediaService.List(limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"media":  media,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// Get returns a single media record.
func (h *MediaHandler) Get(c *gin.Context) {
	media, err := h.mediaService.GetByID(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

// Delete removes a media record and its file from disk.
func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.mediaService.Delete(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "media deleted"})
}
