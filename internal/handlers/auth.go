package handlers

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pquerna/otp"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/middleware"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/services"
)

// AuthHandler handles login, token refresh and two-factor endpoints.
type AuthHandler struct {
	authService  *services.AuthService
	userService  *services.UserService
	auditService *services.AuditService
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, auditService *services.AuditService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		userService:  userService,
		auditService: auditService,
	}
}

// LoginRequest carries an OAuth result from the frontend. Either the
// provider access token or the authorization code must be present.
type LoginRequest struct {
	AccessToken string `json:"access_token"`
	Code        string `json:"code"`
}

// VerifyTwoFactorRequest completes a login that required a TOTP code.
type VerifyTwoFactorRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Code      string `json:"code" binding:"required,len=6"`
}

// RefreshRequest exchanges a refresh token for a new access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TwoFactorCodeRequest carries a bare TOTP code.
type TwoFactorCodeRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}

// LoginGoogle authenticates via a Google OAuth token or code.
func (h *AuthHandler) LoginGoogle(c *gin.Context) {
	h.login(c, "google")
}

// LoginGitHub authenticates via a GitHub OAuth token or code.
func (h *AuthHandler) LoginGitHub(c *gin.Context) {
	h.login(c, "github")
}

func (h *AuthHandler) login(c *gin.Context, provider string) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.AccessToken == "" && req.Code == "" {
		badRequest(c, "access_token or code is required")
		return
	}

	fingerprint := services.DeviceFingerprint(c.Request.UserAgent(), c.ClientIP())
	result, err := h.authService.LoginWithProvider(c.Request.Context(), provider, req.AccessToken, req.Code, fingerprint)
	if err != nil {
		h.auditService.LogLogin(nil, provider, c.ClientIP(), c.Request.UserAgent(), false)
		serviceError(c, err)
		return
	}

	if result.TwoFactorRequired {
		c.JSON(http.StatusOK, gin.H{
			"two_factor_required": true,
			"pending_session_id":  result.PendingSessionID,
		})
		return
	}

	h.auditService.LogLogin(result.User, provider, c.ClientIP(), c.Request.UserAgent(), true)
	c.JSON(http.StatusOK, gin.H{
		"two_factor_required": false,
		"tokens":              result.Tokens,
		"user":                result.User,
	})
}

// VerifyTwoFactor finishes a pending login with a TOTP code.
func (h *AuthHandler) VerifyTwoFactor(c *gin.Context) {
	var req VerifyTwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	fingerprint := services.DeviceFingerprint(c.Request.UserAgent(), c.ClientIP())
	result, err := h.authService.VerifyTwoFactor(req.SessionID, req.Code, fingerprint)
	if err != nil {
		serviceError(c, err)
		return
	}

	h.auditService.LogLogin(result.User, "totp", c.ClientIP(), c.Request.UserAgent(), true)
	c.JSON(http.StatusOK, gin.H{
		"two_factor_required": false,
		"tokens":              result.Tokens,
		"user":                result.User,
	})
}

// Refresh issues a fresh access token from a refresh token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	accessToken, err := h.authService.Refresh(req.RefreshToken)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// Logout clears the caller's server-side session marker.
func (h *AuthHandler) Logout(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	if err := h.authService.Logout(identity.UserID); err != nil {
		serviceError(c, err)
		return
	}

	if user, err := h.userService.GetByID(identity.UserID); err == nil {
		h.auditService.LogLogout(user, c.ClientIP(), c.Request.UserAgent())
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's current profile.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	user, err := h.userService.GetByID(identity.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}

	h.userService.TouchActivity(user.ID)
	c.JSON(http.StatusOK, user)
}

// SetupTwoFactor starts TOTP enrollment. The secret is not persisted
// until the user confirms a valid code via EnableTwoFactor.
func (h *AuthHandler) SetupTwoFactor(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	key, err := h.authService.SetupTwoFactor(identity.UserID)
	if err != nil {
		serviceError(c, err)
		return
	}

	resp := gin.H{
		"secret":           key.Secret,
		"provisioning_uri": key.ProvisioningURI,
	}
	if qr, err := qrPNG(key.ProvisioningURI); err == nil {
		resp["qr_code"] = qr
	}
	c.JSON(http.StatusOK, resp)
}

// EnableTwoFactor confirms enrollment with a code from the
// authenticator app and turns 2FA on.
func (h *AuthHandler) EnableTwoFactor(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	var req TwoFactorCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.authService.EnableTwoFactor(identity.UserID, req.Code); err != nil {
		serviceError(c, err)
		return
	}

	h.audit(c, identity.UserID, "2fa.enable", "user", identity.UserID)
	c.JSON(http.StatusOK, gin.H{"message": "two-factor authentication enabled"})
}

// DisableTwoFactor turns 2FA off after verifying a current code.
func (h *AuthHandler) DisableTwoFactor(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
		return
	}

	var req TwoFactorCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.authService.DisableTwoFactor(identity.UserID, req.Code); err != nil {
		serviceError(c, err)
		return
	}

	h.audit(c, identity.UserID, "2fa.disable", "user", identity.UserID)
	c.JSON(http.StatusOK, gin.H{"message": "two-factor authentication disabled"})
}

func (h *AuthHandler) audit(c *gin.Context, userID, action, resourceType, resourceID string) {
	_ = h.auditService.Log(services.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
}

// qrPNG renders a provisioning URI as a base64-encoded PNG data URL.
func qrPNG(uri string) (string, error) {
	key, err := otp.NewKeyFromURL(uri)
	if err != nil {
		return "", err
	}
	img, err := key.Image(200, 200)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
