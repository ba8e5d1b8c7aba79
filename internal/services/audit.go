package services

import (
	"encoding/json"

	"github.com/salieri009/MyTechPortFolio-sub001/internal/database"
	"github.com/salieri009/MyTechPortFolio-sub001/internal/models"
)

// AuditService records admin and authentication actions.
type AuditService struct {
	db *database.DB
}

// NewAuditService creates a new AuditService instance.
func NewAuditService(db *database.DB) *AuditService {
	return &AuditService{db: db}
}

// AuditLog represents an entry to be recorded.
type AuditLog struct {
	Details      map[string]interface{}
	UserID       string
	Username     string
	Action       string
	ResourceType string
	ResourceID   string
	IPAddress    string
	UserAgent    string
}

// Log records an audit entry. Failures never propagate to the request.
func (s *AuditService) Log(entry AuditLog) error {
	var detailsJSON string
	if entry.Details != nil {
		if bytes, err := json.Marshal(entry.Details); err == nil {
			detailsJSON = string(bytes)
		}
	}

	_, err := s.db.Exec(`
		INSERT INTO audit_logs (user_id, username, action, resource_type, resource_id, ip_address, user_agent, details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.UserID, entry.Username, entry.Action, entry.ResourceType, entry.ResourceID, entry.IPAddress, entry.UserAgent, detailsJSON)

	return err
}

// LogLogin records a login outcome. user may be nil when the attempt
// never resolved to an account.
func (s *AuditService) LogLogin(user *models.User, provider, ip, userAgent string, success bool) {
	action := "login_success"
	if !success {
		action = "login_failed"
	}
	var userID, username string
	if user != nil {
		userID = user.ID
		username = user.Username
	}
	_ = s.Log(AuditLog{
		UserID:       userID,
		Username:     username,
		Action:       action,
		ResourceType: "auth",
		IPAddress:    ip,
		UserAgent:    userAgent,
		Details:      map[string]interface{}{"provider": provider},
	})
}

// LogLogout records a logout event.
func (s *AuditService) LogLogout(user *models.User, ip, userAgent string) {
	_ = s.Log(AuditLog{
		UserID:       user.ID,
		Username:     user.Username,
		Action:       "logout",
		ResourceType: "auth",
		IPAddress:    ip,
		UserAgent:    userAgent,
	})
}

// AuditLogEntry is an audit record read back from the database.
type AuditLogEntry struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Action       string `json:"action"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	UserAgent    string `json:"user_agent"`
	Details      string `json:"details"`
	CreatedAt    string `json:"created_at"`
	ID           int64  `json:"id"`
}

// GetLogs retrieves audit logs with pagination, newest first.
func (s *AuditService) GetLogs(limit, offset int) ([]AuditLogEntry, error) {
	if limit == 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, user_id, username, action, resource_type, resource_id, ip_address, user_agent, details, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	logs := make([]AuditLogEntry, 0)
	for rows.Next() {
		var entry AuditLogEntry
		var userID, resourceID, ipAddress, userAgent, details *string

		if err := rows.Scan(
			&entry.ID,
			&userID,
			&entry.Username,
			&entry.Action,
			&entry.ResourceType,
			&resourceID,
			&ipAddress,
			&userAgent,
			&details,
			&entry.CreatedAt,
		); err != nil {
			continue
		}

		if userID != nil {
			entry.UserID = *userID
		}
		if resourceID != nil {
			entry.ResourceID = *resourceID
		}
		if ipAddress != nil {
			entry.IPAddress = *ipAddress
		}
		if userAgent != nil {
			entry.UserAgent = *userAgent
		}
		if details != nil {
			entry.Details = *details
		}

		logs = append(logs, entry)
	}

	return logs, nil
}
