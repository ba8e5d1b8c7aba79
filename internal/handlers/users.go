package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/middleware"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/validation"
)

// UserHandler handles the admin user directory endpoints.
type UserHandler struct {
	userService  *services.UserService
	auditService *services.AuditService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(userService *services.UserService, auditService *services.AuditService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		auditService: auditService,
	}
}

// CreateUserRequest represents a request to create a user. Username,
// full name and password rules live in the validation package.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required,oneof=SUPER_ADMIN ADMIN CONTENT_MANAGER VIEWER"`
}

// UpdateProfileRequest represents a request to update a user's profile.
type UpdateProfileRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name"`
}

// ChangeRoleRequest represents a request to change a user's role.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=SUPER_ADMIN ADMIN CONTENT_MANAGER VIEWER"`
}

// SetEnabledRequest represents a request to enable or disable a user.
type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// ChangePasswordRequest represents a request to reset a user's password.
type ChangePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// List returns users matching the optional role/enabled/search filters.
func (h *UserHandler) List(c *gin.Context) {
	limit, offset := pagination(c)

	filter := services.UserFilter{Search: c.Query("search")}
	if role := c.Query("role"); role != "" {
		filter.Role = models.ParseRole(role)
	}
	if enabled := c.Query("enabled"); enabled != "" {
		v := enabled == "true"
		filter.Enabled = &v
	}

	users, total, err := h.userService.List(filter, limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":  users,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// Get returns a single user by ID.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetByID(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Create creates a new user. Password may be empty for OAuth-only
// accounts.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.FullName != "" {
		if err := validation.ValidateName(req.FullName, 120); err != nil {
			badRequest(c, "invalid full name")
			return
		}
	}
	if req.Password != "" {
		if err := validation.ValidatePassword(req.Password); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	user, err := h.userService.Create(req.Username, req.Email, req.FullName, req.Password, models.ParseRole(req.Role))
	if err != nil {
		serviceError(c, err)
		return
	}

	h.audit(c, "user.create", user.ID)
	c.JSON(http.StatusCreated, user)
}

// UpdateProfile updates a user's email and full name.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.FullName != "" {
		if err := validation.ValidateName(req.FullName, 120); err != nil {
			badRequest(c, "invalid full name")
			return
		}
	}

	user, err := h.userService.UpdateProfile(c.Param("id"), req.Email, req.FullName)
	if err != nil {
		serviceError(c, err)
		return
	}

	h.audit(c, "user.update", user.ID)
	c.JSON(http.StatusOK, user)
}

// ChangeRole assigns a new role. Demoting the last super admin is
// refused by the service layer.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.userService.ChangeRole(c.Param("id"), models.ParseRole(req.Role))
	if err != nil {
		serviceError(c, err)
		return
	}

	h.audit(c, "user.change_role", user.ID)
	c.JSON(http.StatusOK, user)
}

// ChangePassword resets a user's password without the old one; the
// route is gated to super admins.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		badRequest(c, err.Error())
		return
	}

	id := c.Param("id")
	if err := h.userService.ResetPassword(id, req.Password); err != nil {
		serviceError(c, err)
		return
	}

	h.audit(c, "user.change_password", id)
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// SetEnabled enables or disables an account. A caller cannot disable
// itself.
func (h *UserHandler) SetEnabled(c *gin.Context) {
	var req SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	id := c.Param("id")
	if identity, ok := middleware.IdentityFrom(c); ok && identity.UserID == id && !*req.Enabled {
		respondError(c, http.StatusConflict, "INVARIANT_VIOLATION", "cannot disable your own account")
		return
	}

	if err := h.userService.SetEnabled(id, *req.Enabled); err != nil {
		serviceError(c, err)
		return
	}

	action := "user.enable"
	if !*req.Enabled {
		action = "user.disable"
	}
	h.audit(c, action, id)
	c.JSON(http.StatusOK, gin.H{"message": "user updated"})
}

// Delete removes a user. The last super admin cannot be deleted, and a
// caller cannot delete itself.
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if identity, ok := middleware.IdentityFrom(c); ok && identity.UserID == id {
		respondError(c, http.StatusConflict, "INVARIANT_VIOLATION", "cannot delete your own account")
		return
	}

	if err := h.userService.Delete(id); err != nil {
		serviceError(c, err)
		return
	}

	h.audit(c, "user.delete", id)
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// Stats returns directory totals for the admin dashboard.
func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.userService.Stats()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) audit(c *gin.Context, action, resourceID string) {
	var userID, username string
	if identity, ok := middleware.IdentityFrom(c); ok {
		userID = identity.UserID
		if user, err := h.userService.GetByID(identity.UserID); err == nil {
			username = user.Username
		}
	}
	_ = h.auditService.Log(services.AuditLog{
		UserID:       userID,
		Username:     username,
		Action:       action,
		ResourceType: "user",
		ResourceID:   resourceID,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
}
