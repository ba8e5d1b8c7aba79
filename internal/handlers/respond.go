// Package handlers implements the HTTP endpoints of the portfolio API.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/auth"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/oauth"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/validation"
)

// errorBody is the uniform error envelope: {"error": {"code", "message"}}.
func errorBody(code, message string) gin.H {
	return gin.H{"error": gin.H{"code": code, "message": message}}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorBody(code, message))
}

func badRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, "VALIDATION", message)
}

// serviceError maps service-layer sentinel errors onto HTTP responses.
// Unknown errors become an opaque 500; the real cause stays in the log.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrAcademicNotFound),
		errors.Is(err, services.ErrTechStackNotFound),
		errors.Is(err, services.ErrTestimonialNotFound),
		errors.Is(err, services.ErrMediaNotFound),
		errors.Is(err, services.ErrMessageNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())

	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrTechStackExists):
		respondError(c, http.StatusConflict, "DUPLICATE", err.Error())

	case errors.Is(err, services.ErrLastSuperAdmin):
		respondError(c, http.StatusConflict, "INVARIANT_VIOLATION", err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())

	case errors.Is(err, services.ErrAccountDisabled):
		respondError(c, http.StatusForbidden, "ACCOUNT_DISABLED", err.Error())

	case errors.Is(err, services.ErrTwoFactorInvalid):
		respondError(c, http.StatusUnauthorized, "TWO_FACTOR_INVALID", err.Error())

	case errors.Is(err, services.ErrTwoFactorNotSetup),
		errors.Is(err, services.ErrTwoFactorDisabled):
		respondError(c, http.StatusBadRequest, "TWO_FACTOR_STATE", err.Error())

	case errors.Is(err, auth.ErrPendingNotFound),
		errors.Is(err, auth.ErrPendingExpired):
		respondError(c, http.StatusUnauthorized, "SESSION_INVALID", err.Error())

	case errors.Is(err, auth.ErrTooManyAttempts):
		respondError(c, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS", err.Error())

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, oauth.ErrInvalidToken):
		respondError(c, http.StatusUnauthorized, "INVALID_TOKEN", err.Error())

	case errors.Is(err, oauth.ErrUnsupportedProvider):
		respondError(c, http.StatusBadRequest, "UNSUPPORTED_PROVIDER", err.Error())

	case errors.Is(err, services.ErrMediaTypeNotAllowed):
		respondError(c, http.StatusUnsupportedMediaType, "MEDIA_TYPE_NOT_ALLOWED", err.Error())

	case errors.Is(err, services.ErrMediaTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, "MEDIA_TOO_LARGE", err.Error())

	case errors.Is(err, validation.ErrStartDateRequired),
		errors.Is(err, validation.ErrEndBeforeStart),
		errors.Is(err, validation.ErrInputTooLong),
		errors.Is(err, validation.ErrInputInvalid),
		errors.Is(err, validation.ErrPasswordTooShort):
		badRequest(c, err.Error())

	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

// pagination reads limit/offset query parameters with sane bounds.
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
